package bsp

import (
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"

	"github.com/ardnew/bspgen/lang"
)

// Predefined errors (sentinel values).
var (
	ErrReadProperties  = lang.NewError("failed to read properties file")
	ErrWriteProperties = lang.NewError("failed to write properties file")
)

// LoadProperties reads the input values supplied in the YAML or JSON file
// at path. Values are keyed by input name; the values of a conditional
// file's inputs are nested under the text of its condition.
func LoadProperties(fs afero.Fs, path string) (map[string]any, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, ErrReadProperties.With(slog.String("path", path)).Wrap(err)
	}

	props := make(map[string]any)

	if err := yaml.Unmarshal(data, &props); err != nil {
		return nil, ErrReadProperties.With(slog.String("path", path)).Wrap(err)
	}

	return props, nil
}

// SaveProperties writes v to path, as JSON when the file extension is
// ".json" and as YAML otherwise.
func SaveProperties(fs afero.Fs, path string, v any) error {
	data, err := Marshal(path, v)
	if err != nil {
		return ErrWriteProperties.With(slog.String("path", path)).Wrap(err)
	}

	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return ErrWriteProperties.With(slog.String("path", path)).Wrap(err)
	}

	return nil
}

// Marshal encodes v in the format selected by the extension of path.
func Marshal(path string, v any) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}

		return append(data, '\n'), nil
	}

	return yaml.MarshalWithOptions(v, yaml.Indent(2))
}
