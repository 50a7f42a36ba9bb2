package collect

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/bspgen/lang"
	"github.com/ardnew/bspgen/substrate"
)

func expand(t *testing.T, files map[string]string) []*substrate.Substrate {
	t.Helper()

	fs := afero.NewMemMapFs()

	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}

	subs, err := substrate.NewWalker(fs).Walk(t.Context(), "/t", "/o")
	require.NoError(t, err)

	return subs
}

const confTemplate = `{{ input type:"boolean" name:"b" prio:"20" msg:"B?" default:"y" }}
{{ if b == "y": }}
{{ input type:"edit" name:"e" prio:"10" msg:"E" default:"x" }}
line
{{ input type:"choicelist" name:"c" msg:"C" default:"1" depends-on:"b" depends-on-val:"y" }}
{{ input type:"choice" val:"one" msg:"One" }}
`

// describe flattens entries into comparable strings.
func describe(entries []Entry) []string {
	var out []string

	for _, e := range entries {
		switch {
		case e.Group != nil:
			out = append(out, "group "+e.Group.Guard.Text)
			for _, s := range describe(e.Group.Entries) {
				out = append(out, "  "+s)
			}

		case e.Line.Kind == lang.KindInput:
			out = append(out, "input "+e.Line.Input.Name())

		default:
			out = append(out, "stmt "+e.Line.Text)
		}
	}

	return out
}

func TestGather(t *testing.T) {
	subs := expand(t, map[string]string{
		"/t/a.conf":             confTemplate,
		"/t/{{ if x: }} g.conf": `{{ input type:"edit" name:"g" msg:"G" prio:"15" }}` + "\n",
		"/t/{{ if y: }} h.conf": "no inputs here\n",
	})

	entries := New().Gather(t.Context(), subs)

	want := []string{
		`stmt if b == "y":`,
		"input e",
		"group if x:",
		"  input g",
		"input b",
		`stmt if b == "y":`,
		"input c",
	}

	if diff := cmp.Diff(want, describe(entries)); diff != "" {
		t.Errorf("prompt sequence mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 10, entries[0].Prio())
	assert.Equal(t, 15, entries[2].Prio())
	assert.Equal(t, lang.NoPrio, entries[5].Prio())

	// the carried statement is removed from the artifact
	lines := subs[0].Lines
	require.Equal(t, lang.KindStatement, lines[2].Kind)
	assert.True(t, lines[2].Discard)
	assert.False(t, lines[4].Discard)
}

func TestGather_DiscardBlank(t *testing.T) {
	subs := expand(t, map[string]string{
		"/t/f": "{{ if a: }}\ntext\n\n{{ if b: }}\n\nmore\n",
	})

	New().Gather(t.Context(), subs)

	discard := make([]bool, 0, len(subs[0].Lines))
	for _, line := range subs[0].Lines {
		discard = append(discard, line.Discard)
	}

	// name, if a, text, blank, if b, blank, more
	assert.Equal(t,
		[]bool{false, false, false, false, false, true, false},
		discard,
	)
}

func TestGather_Stable(t *testing.T) {
	subs := expand(t, map[string]string{
		"/t/f": `{{ input type:"edit" name:"z" msg:"Z" }}
{{ input type:"edit" name:"y" msg:"Y" prio:"5" }}
{{ input type:"edit" name:"x" msg:"X" }}
{{ input type:"edit" name:"w" msg:"W" prio:"5" }}
`,
	})

	entries := New().Gather(t.Context(), subs)

	assert.Equal(t,
		[]string{"input y", "input w", "input z", "input x"},
		describe(entries),
	)
}

func TestGather_Priorities(t *testing.T) {
	subs := expand(t, map[string]string{
		"/t/f": `{{ input type:"edit" name:"p0" msg:"P0" prio:"5" }}
{{ input type:"edit" name:"p1" msg:"P1" prio:"1" }}
{{ input type:"edit" name:"p2" msg:"P2" prio:"1" }}
{{ input type:"edit" name:"p3" msg:"P3" prio:"3" }}
`,
	})

	entries := New().Gather(t.Context(), subs)

	assert.Equal(t,
		[]string{"input p1", "input p2", "input p3", "input p0"},
		describe(entries),
	)
}

func TestSchemaAndLookup(t *testing.T) {
	subs := expand(t, map[string]string{
		"/t/a.conf": confTemplate,
		`/t/{{ if xserver == "y": }} g.conf`: `{{ input type:"edit" name:"drv" msg:"Driver" nameappend:"intel" }}` + "\n",
	})

	entries := New().Gather(t.Context(), subs)

	schema := Schema(entries)

	require.Contains(t, schema, "e")
	assert.Equal(t, "edit", schema["e"].(map[string]string)["type"])
	assert.NotContains(t, schema["e"].(map[string]string), "name")

	nested, ok := schema[`if xserver == "y":`].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, nested, "drv")

	in, group := Lookup(entries, "xserver.drv")
	require.NotNil(t, in)
	require.NotNil(t, group)
	assert.Equal(t, "drv", in.Name())

	in, group = Lookup(entries, "drv_intel")
	require.NotNil(t, in)
	assert.Nil(t, group)

	in, _ = Lookup(entries, "missing")
	assert.Nil(t, in)

	assert.Contains(t, Suggest(entries, "dv", 3), "drv")
}

func TestSplitNested(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"plain", nil},
		{"a.b", []string{"a", "b"}},
		{`"x.y".z`, []string{`"x.y"`, "z"}},
		{"a.b.c", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitNested(tt.in))
		})
	}
}
