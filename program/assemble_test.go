package program

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/bspgen/choice"
	"github.com/ardnew/bspgen/collect"
	"github.com/ardnew/bspgen/lang"
	"github.com/ardnew/bspgen/log"
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

func lines(t *testing.T, path string, raw ...string) []*lang.Line {
	t.Helper()

	s := &substrate.Substrate{Kind: substrate.KindFile, Path: path, Base: "/t", Raw: raw}
	require.NoError(t, s.Expand(t.Context(), afero.NewMemMapFs(), log.Logger{}))

	return s.Lines
}

func TestFileDepths(t *testing.T) {
	got := fileDepths(lines(t, "/t/{{ if x: }} f.conf",
		"a",
		"{{ if y: }}",
		"b",
		"",
		"c",
	))

	// if x, name, a, if y, b, blank, c
	assert.Equal(t, []int{0, 1, 1, 1, 2, 1, 1}, got)

	got = fileDepths(lines(t, "/t/g.conf",
		"{{ if y: }}",
		"b",
		"{{ else: }}",
		"c",
		"",
		"d",
	))

	// name, if y, b, else, c, blank, d
	assert.Equal(t, []int{0, 0, 1, 0, 1, 0, 0}, got)
}

func TestDirDepths(t *testing.T) {
	s := &substrate.Substrate{Kind: substrate.KindDir, Path: "/t/{{ if x: }} d", Base: "/t"}
	require.NoError(t, s.Expand(t.Context(), nil, log.Logger{}))

	assert.Equal(t, []int{0, 1}, dirDepths(s.Lines))
}

func TestArtifacts(t *testing.T) {
	subs := expand(t, map[string]string{
		"/t/conf/{{=machine}}.conf": "{{ input type:\"edit\" name:\"tune\" msg:\"Tune\" }}\n" +
			"TUNE = \"{{=tune}}\"\n",
		"/t/prompts.noinstall": "{{ input type:\"edit\" name:\"x\" msg:\"X\" }}\n",
	})

	got := make([]string, 0)
	for _, op := range Artifacts(subs) {
		got = append(got, strings.Repeat(Indent, op.Depth)+op.String())
	}

	want := []string{
		`mkdir "/o/conf"`,
		`open "/o/conf/{{=machine}}.conf"`,
		`write "TUNE = \"{{=tune}}\""`,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("artifact ops mismatch (-want +got):\n%s", diff)
	}
}

func TestPrompts(t *testing.T) {
	subs := expand(t, map[string]string{
		"/t/a.conf": `{{ input type:"boolean" name:"b" prio:"20" msg:"B?" default:"y" }}
{{ if b == "y": }}
{{ input type:"edit" name:"e" prio:"10" msg:"E" default:"x" }}

{{ input type:"choicelist" name:"c" msg:"C" default:"one" depends-on:"b" depends-on-val:"y" }}
{{ input type:"choice" val:"one" msg:"One" }}
`,
		"/t/{{ if x: }} g.conf": `{{ if e == "z": }}
{{ input type:"edit" name:"g" msg:"G" prio:"15" }}
`,
	})

	entries := collect.New().Gather(t.Context(), subs)
	resolver := choice.NewResolver(nil)

	a := NewAssembler(
		WithResolver(resolver),
		WithContext(choice.Context{Machine: "qemu"}),
	)

	prog := a.Assemble(t.Context(), entries, subs, nil)

	want := `bind e = "x"
bind g = ""
bind b = "y"
bind c = "one"
bind machine = "qemu"
if b == "y":
    prompt edit e "E"
if x:
    if e == "z":
        prompt edit g "G"
prompt boolean b "B?"
if b == "y":
    prompt choicelist c "C" from "c_/t/a_"
open "/o/a.conf"
if x:
    open "/o/g.conf"
`

	if diff := cmp.Diff(want, prog.String()); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}

	options, err := resolver.Resolve(t.Context(), "c_/t/a_")
	require.NoError(t, err)
	assert.Equal(t, []choice.Option{{Value: "one", Desc: "One"}}, options)
}

func TestSupplied(t *testing.T) {
	ops := Supplied(map[string]any{
		"flag":               true,
		"features":           []any{"smp", 2},
		`if xserver == "y":`: map[string]any{"xserver_choice": "vesa"},
		"count":              3,
	})

	got := make([]string, len(ops))
	for i, op := range ops {
		got[i] = op.String()
	}

	assert.Equal(t, []string{
		`bind count = "3"`,
		`bind features = ["smp", "2"]`,
		`bind flag = "y"`,
		`bind xserver_choice = "vesa"`,
	}, got)
}

func TestPrompts_SharedKey(t *testing.T) {
	list := `{{ input type:"choicelist" name:"kfeat" msg:"Feature" default:"A" }}
{{ input type:"choice" val:"A" msg:"Feature A" }}
`
	subs := expand(t, map[string]string{
		"/t/a/{{=machine}}.conf": list,
		"/t/b/{{=machine}}.conf": list,
	})

	entries := collect.New().Gather(t.Context(), subs)

	var buf bytes.Buffer

	ops := NewAssembler(
		WithResolver(choice.NewResolver(nil)),
		WithLogger(log.Make(&buf, log.WithPretty(false))),
	).Prompts(entries)

	require.Len(t, ops, 2)
	assert.Equal(t, "kfeat_.conf_", ops[0].Key)
	assert.Equal(t, ops[0].Key, ops[1].Key)
	assert.Contains(t, buf.String(), "list prompt shares the options of an earlier prompt")
}
