package bsp

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveProperties(t *testing.T) {
	fs := afero.NewMemMapFs()

	props := map[string]any{
		"tune":   "armv7a",
		"if_smp": map[string]any{"cpus": "4"},
	}

	require.NoError(t, SaveProperties(fs, "/p.json", props))
	require.NoError(t, SaveProperties(fs, "/p.yaml", props))

	data, err := afero.ReadFile(fs, "/p.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tune": "armv7a"`)

	data, err = afero.ReadFile(fs, "/p.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "tune: armv7a")

	for _, path := range []string{"/p.json", "/p.yaml"} {
		got, err := LoadProperties(fs, path)
		require.NoError(t, err, path)
		assert.Equal(t, props, got, path)
	}
}

func TestLoadProperties_Malformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p.yaml", []byte("- a\n- b\n"), 0o644))

	_, err := LoadProperties(fs, "/p.yaml")
	require.ErrorIs(t, err, ErrReadProperties)
}
