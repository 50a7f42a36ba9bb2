package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that parses YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// The file is a mapping of flag names to values. Nested mappings are joined
// to their parent key with a hyphen, so these are equivalent:
//
//	log-level: debug
//
//	log:
//	  level: debug
//
// Underscores may stand in for hyphens (log_level). Command-line flags
// override config file values. A file that is not a YAML mapping is ignored.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc map[string]any

	if err := yaml.Unmarshal(data, &doc); err != nil {
		// Parse error - return empty config
		return config{}, nil //nolint:nilerr
	}

	c := make(config)
	c.flatten("", doc)

	return c, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flatten stores the leaves of m under their hyphen-joined key paths.
func (r config) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "-" + k
		}

		switch v := v.(type) {
		case map[string]any:
			r.flatten(key, v)

		case int, int64, uint64, float64:
			// Kong requires numbers as strings for parsing
			r[key] = fmt.Sprint(v)

		default:
			r[key] = v
		}
	}
}
