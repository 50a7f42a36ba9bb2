package choice

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"

	"github.com/ardnew/bspgen/builtin"
)

// ManifestRel is the location of the provider manifest below the scripts
// root.
const ManifestRel = "lib/bsp/providers.yaml"

// LoadManifest registers the providers declared in the YAML file at path.
//
// The manifest maps provider names to expressions. Each expression sees the
// fields of [Context] (machine, arch, scripts_path, filename, nameappend,
// name) and the built-in environment, and must produce a list:
//
//	kernel.branches: '["standard/base", "standard/" + arch]'
//	machine.tunes: 'split(env("BSP_TUNES"), ",")'
//
// A missing file registers nothing.
func (r *Registry) LoadManifest(fs afero.Fs, path string) error {
	if exists, err := afero.Exists(fs, path); err != nil || !exists {
		return err
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return ErrManifest.With(slog.String("path", path)).Wrap(err)
	}

	var decls map[string]string

	if err := yaml.Unmarshal(data, &decls); err != nil {
		return ErrManifest.With(slog.String("path", path)).Wrap(err)
	}

	for name, source := range decls {
		program, err := expr.Compile(source, expr.Env(manifestEnv(Context{})))
		if err != nil {
			return ErrManifest.With(
				slog.String("path", path),
				slog.String("provider", name),
			).Wrap(err)
		}

		r.Register(name, exprProvider(name, program))
	}

	return nil
}

func manifestEnv(c Context) map[string]any {
	env := builtin.Env()
	maps.Copy(env, c.Env())

	return env
}

func exprProvider(name string, program *vm.Program) Provider {
	return func(_ context.Context, c Context) ([]string, error) {
		out, err := expr.Run(program, manifestEnv(c))
		if err != nil {
			return nil, ErrProvider.With(slog.String("provider", name)).Wrap(err)
		}

		switch v := out.(type) {
		case []string:
			return v, nil

		case []any:
			values := make([]string, len(v))
			for i, e := range v {
				values[i] = fmt.Sprint(e)
			}

			return values, nil

		case nil:
			return nil, nil

		default:
			return nil, ErrProvider.With(
				slog.String("provider", name),
				slog.String("type", fmt.Sprintf("%T", out)),
			)
		}
	}
}
