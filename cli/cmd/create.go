package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/bspgen/bsp"
	"github.com/ardnew/bspgen/log"
)

// Create generates a new BSP layer.
type Create struct {
	Machine string `arg:"" help:"Name of the machine the layer supports."`
	Arch    string `arg:"" help:"Kernel architecture of the machine (see 'list karch')."`

	Outdir     string `help:"Output directory (default: meta-<machine>)." short:"o" type:"path"`
	Codedump   bool   `help:"Write the generation program to ${codedump}."  short:"c"`
	Properties string `help:"Supply input values from a YAML or JSON file." short:"i" type:"existingfile"`
}

// Run executes the create command.
func (c *Create) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	out := c.Outdir
	if out == "" {
		out = "meta-" + c.Machine
	}

	var opts bsp.CreateOptions

	opts.Properties = c.Properties

	if c.Codedump {
		opts.Codedump = bsp.DefaultCodedump
	}

	if err := generator(ctx).Create(ctx, c.Machine, c.Arch, out, opts); err != nil {
		return ErrCreate.
			With(slog.String("machine", c.Machine), slog.String("arch", c.Arch)).
			Wrap(err)
	}

	log.InfoContext(ctx, "new layer created",
		slog.String("machine", c.Machine),
		slog.String("path", out),
	)

	return nil
}
