package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/bspgen/lang"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		text   string
		kind   stmtKind
		name   string
		source string
	}{
		{`if xserver == "y":`, stmtIf, "", `xserver == "y"`},
		{`elif a and not b:`, stmtElif, "", "a and not b"},
		{"else:", stmtElse, "", ""},
		{"else :", stmtElse, "", ""},
		{"for f in features:", stmtFor, "f", "features"},
		{`tune = "cortexa8"`, stmtAssign, "tune", `"cortexa8"`},
		{`n=len(features)`, stmtAssign, "n", "len(features)"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			st, err := compile(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, st.kind)
			assert.Equal(t, tt.name, st.name)
			assert.Equal(t, tt.source, st.source)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		text string
		want *lang.Error
	}{
		{"while x:", ErrStatement},
		{"pass", ErrStatement},
		{"x == y", ErrStatement},
		{"for 1x in y:", ErrStatement},
		{"if x ==:", ErrEval},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := compile(tt.text)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStatementRun(t *testing.T) {
	st, err := compile(`if xserver == "y" and "smp" in features:`)
	require.NoError(t, err)

	v, err := st.run(map[string]any{
		"xserver":  "y",
		"features": []string{"smp", "debug"},
	})
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = st.run(map[string]any{})
	require.NoError(t, err)
	assert.False(t, truthy(v))
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"true", true, true},
		{"false", false, false},
		{"empty string", "", false},
		{"string", "n", true},
		{"empty list", []string{}, false},
		{"list", []any{"a"}, true},
		{"zero", 0, false},
		{"int", 3, true},
		{"float", 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truthy(tt.v))
		})
	}
}

func TestItems(t *testing.T) {
	got, ok := items("a b  c")
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b", "c"}, got)

	got, ok = items([]string{"x"})
	require.True(t, ok)
	assert.Equal(t, []any{"x"}, got)

	_, ok = items(42)
	assert.False(t, ok)
}
