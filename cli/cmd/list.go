package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/ardnew/bspgen/bsp"
)

// List describes the template layout.
type List struct {
	Karch      ListKarch      `cmd:"" help:"List the available kernel architectures."`
	Properties ListProperties `cmd:"" help:"List the properties accepted by an architecture."`
	Property   ListProperty   `cmd:"" help:"List the values accepted by one property."`
}

// ListKarch lists the architectures with a template tree.
type ListKarch struct{}

// Run executes the list karch command.
func (ListKarch) Run(ctx context.Context) error {
	archs, err := generator(ctx).Archs()
	if err != nil {
		return ErrList.With(slog.String("what", "karch")).Wrap(err)
	}

	w := stdout(ctx)

	for _, arch := range archs {
		fmt.Fprintln(w, arch)
	}

	return nil
}

// ListProperties prints the property schema of an architecture.
type ListProperties struct {
	Arch    string `arg:"" help:"Kernel architecture."`
	Outfile string `help:"Write the schema to FILE; JSON if it ends in .json, else YAML." placeholder:"FILE" short:"o" type:"path"`
}

// Run executes the list properties command.
func (l *ListProperties) Run(ctx context.Context) error {
	schema, err := generator(ctx).Properties(ctx, l.Arch)
	if err != nil {
		return ErrList.With(slog.String("arch", l.Arch)).Wrap(err)
	}

	return emit(ctx, l.Outfile, schema)
}

// ListProperty prints the [value, description] pairs accepted by one
// property. A property of a conditional file is named "condition.name".
type ListProperty struct {
	Arch     string `arg:"" help:"Kernel architecture."`
	Property string `arg:"" help:"Property name, optionally qualified by its condition."`
	Machine  string `help:"Machine name made available to options providers." short:"m"`
	Outfile  string `help:"Write the values to FILE; JSON if it ends in .json, else YAML." placeholder:"FILE" short:"o" type:"path"`
}

// Run executes the list property command.
func (l *ListProperty) Run(ctx context.Context) error {
	values, err := generator(ctx).PropertyValues(ctx, l.Machine, l.Arch, l.Property)
	if err != nil {
		return ErrList.
			With(slog.String("arch", l.Arch), slog.String("property", l.Property)).
			Wrap(err)
	}

	if l.Outfile != "" {
		return emit(ctx, l.Outfile, values)
	}

	w := stdout(ctx)

	for _, pair := range values {
		fmt.Fprintf(w, "%s\t%s\n", pair[0], pair[1])
	}

	return nil
}

// emit writes v to path, or as YAML to standard output when path is empty.
func emit(ctx context.Context, path string, v any) error {
	if path != "" {
		return bsp.SaveProperties(afero.NewOsFs(), path, v)
	}

	data, err := bsp.Marshal("", v)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	_, err = stdout(ctx).Write(data)

	return err
}
