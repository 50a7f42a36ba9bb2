package bsp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/bspgen/choice"
	"github.com/ardnew/bspgen/collect"
	"github.com/ardnew/bspgen/lang"
	"github.com/ardnew/bspgen/substrate"
)

// suggestions is the number of alternatives offered for an unknown
// property.
const suggestions = 3

// Archs returns the architectures available below the scripts root.
func (g *Generator) Archs() ([]string, error) {
	return substrate.Archs(g.fs, g.scriptsPath)
}

// Properties returns the schema of every input of arch: each input name
// mapped to its remaining properties, with the inputs of a conditional
// file nested under the text of its condition.
func (g *Generator) Properties(
	ctx context.Context,
	arch string,
) (map[string]any, error) {
	entries, err := g.entries(ctx, arch)
	if err != nil {
		return nil, err
	}

	return collect.Schema(entries), nil
}

// PropertyValues returns the [value, description] pairs accepted by the
// input property of arch. A property of the form "group.name" names an
// input of the conditional file whose condition contains group; double
// quotes protect dots from splitting.
//
// A boolean accepts y and n. A list accepts the options of its provider or
// its items. Other inputs have no enumerable values.
func (g *Generator) PropertyValues(
	ctx context.Context,
	machine, arch, property string,
) ([][]string, error) {
	entries, err := g.entries(ctx, arch)
	if err != nil {
		return nil, err
	}

	in, _ := collect.Lookup(entries, property)
	if in == nil {
		err := ErrUnknownProperty.With(slog.String("property", property))

		if alts := collect.Suggest(entries, property, suggestions); len(alts) > 0 {
			err = err.Wrap(fmt.Errorf("did you mean %s?", strings.Join(alts, ", ")))
		}

		return nil, err
	}

	switch {
	case in.Type == lang.InputBoolean:
		return [][]string{{"y", "yes"}, {"n", "no"}}, nil

	case in.IsList():
		cctx, resolver, err := g.prepare(machine, arch)
		if err != nil {
			return nil, err
		}

		c := cctx.For(in)
		c.Name = choice.KeyOf(in)

		options, err := resolver.Options(ctx, c, in)
		if err != nil {
			return nil, err
		}

		values := make([][]string, len(options))
		for i, o := range options {
			values[i] = o.Pair()
		}

		return values, nil
	}

	return nil, nil
}

// entries collects the inputs of arch without producing output.
func (g *Generator) entries(
	ctx context.Context,
	arch string,
) ([]collect.Entry, error) {
	if err := substrate.ValidateArch(g.fs, g.scriptsPath, arch); err != nil {
		return nil, err
	}

	entries, _, err := g.gather(ctx, arch, "")
	if err != nil {
		return nil, err
	}

	return entries, nil
}
