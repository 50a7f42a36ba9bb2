package bsp

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/ardnew/bspgen/choice"
	"github.com/ardnew/bspgen/collect"
	"github.com/ardnew/bspgen/lang"
	"github.com/ardnew/bspgen/log"
	"github.com/ardnew/bspgen/program"
	"github.com/ardnew/bspgen/prompt"
	"github.com/ardnew/bspgen/substrate"
)

// DefaultCodedump is the file name used for the program dump when none is
// given.
const DefaultCodedump = "bspgen.out"

// Predefined errors (sentinel values).
var (
	ErrExists          = lang.NewError("output directory already exists")
	ErrCodedump        = lang.NewError("failed to write program dump")
	ErrUnknownProperty = lang.NewError("no such property")
)

// Generator creates BSP layers from the template trees below a scripts
// root.
type Generator struct {
	fs          afero.Fs
	scriptsPath string
	prompter    prompt.Prompter
	registry    *choice.Registry
	logger      log.Logger
}

// Option configures a [Generator].
type Option func(*Generator)

// WithFS sets the filesystem holding both templates and output.
func WithFS(fs afero.Fs) Option {
	return func(g *Generator) { g.fs = fs }
}

// WithScriptsPath sets the root of the template layout.
func WithScriptsPath(path string) Option {
	return func(g *Generator) { g.scriptsPath = path }
}

// WithPrompter sets the front end answering interactive prompts.
func WithPrompter(p prompt.Prompter) Option {
	return func(g *Generator) { g.prompter = p }
}

// WithLogger sets the logger passed down to every stage.
func WithLogger(logger log.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// New returns a Generator. By default it uses the host filesystem, the
// current directory as scripts root, and line prompts on the standard
// streams.
func New(opts ...Option) *Generator {
	g := &Generator{
		fs:          afero.NewOsFs(),
		scriptsPath: ".",
		prompter:    prompt.NewLine(os.Stdin, os.Stdout),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.registry = choice.DefaultRegistry(g.fs)

	return g
}

// CreateOptions holds the optional inputs of [Generator.Create].
type CreateOptions struct {
	// Codedump is the path of the program dump. No dump is written when
	// empty.
	Codedump string

	// Properties is the path of a YAML or JSON file supplying input values.
	// When set, nothing is prompted for and the file must supply every
	// variable the templates reference.
	Properties string
}

// Create generates the layer of machine for arch into out.
//
// The arch, the absence of out, the properties file and the provider
// manifest are all checked before anything is written.
func (g *Generator) Create(
	ctx context.Context,
	machine, arch, out string,
	opts CreateOptions,
) error {
	if err := substrate.ValidateArch(g.fs, g.scriptsPath, arch); err != nil {
		return err
	}

	exists, err := afero.Exists(g.fs, out)
	if err != nil {
		return ErrExists.With(slog.String("path", out)).Wrap(err)
	}

	if exists {
		return ErrExists.With(slog.String("path", out))
	}

	var supplied map[string]any

	if opts.Properties != "" {
		if supplied, err = LoadProperties(g.fs, opts.Properties); err != nil {
			return err
		}
	}

	cctx, resolver, err := g.prepare(machine, arch)
	if err != nil {
		return err
	}

	entries, subs, err := g.gather(ctx, arch, out)
	if err != nil {
		return err
	}

	prog := program.NewAssembler(
		program.WithResolver(resolver),
		program.WithContext(cctx),
		program.WithLogger(g.logger),
	).Assemble(ctx, entries, subs, supplied)

	exec := program.NewExecutor(
		program.WithFS(g.fs),
		program.WithPrompter(g.prompter),
		program.WithResolver(resolver),
		program.WithContext(cctx),
		program.WithLogger(g.logger),
	)

	plan, err := exec.Prepare(prog)
	if err != nil {
		return err
	}

	if opts.Codedump != "" {
		if err := g.dump(ctx, opts.Codedump, prog); err != nil {
			return err
		}
	}

	if err := g.fs.MkdirAll(out, 0o755); err != nil {
		return program.ErrMkdir.With(slog.String("path", out)).Wrap(err)
	}

	g.logger.InfoContext(ctx, "generating layer",
		slog.String("machine", machine),
		slog.String("arch", arch),
		slog.String("out", out),
	)

	return exec.Execute(ctx, plan)
}

// prepare loads the provider manifest and returns the context and resolver
// of one run.
func (g *Generator) prepare(
	machine, arch string,
) (choice.Context, *choice.Resolver, error) {
	manifest := filepath.Join(g.scriptsPath, choice.ManifestRel)

	if err := g.registry.LoadManifest(g.fs, manifest); err != nil {
		return choice.Context{}, nil, err
	}

	cctx := choice.Context{
		Machine:     machine,
		Arch:        arch,
		ScriptsPath: g.scriptsPath,
	}

	return cctx, choice.NewResolver(g.registry, choice.WithLogger(g.logger)), nil
}

// gather expands the common tree then the tree of arch and collects their
// inputs.
func (g *Generator) gather(
	ctx context.Context,
	arch, out string,
) ([]collect.Entry, []*substrate.Substrate, error) {
	walker := substrate.NewWalker(g.fs, substrate.WithLogger(g.logger))

	var subs []*substrate.Substrate

	for _, root := range substrate.Trees(g.scriptsPath, arch) {
		tree, err := walker.Walk(ctx, root, out)
		if err != nil {
			return nil, nil, err
		}

		subs = append(subs, tree...)
	}

	entries := collect.New(collect.WithLogger(g.logger)).Gather(ctx, subs)

	return entries, subs, nil
}

func (g *Generator) dump(
	ctx context.Context,
	path string,
	prog *program.Program,
) error {
	f, err := g.fs.Create(path)
	if err != nil {
		return ErrCodedump.With(slog.String("path", path)).Wrap(err)
	}
	defer f.Close()

	if _, err := prog.WriteTo(f); err != nil {
		return ErrCodedump.With(slog.String("path", path)).Wrap(err)
	}

	g.logger.DebugContext(ctx, "wrote program dump",
		slog.String("path", path),
		slog.Int("ops", len(prog.Ops)),
	)

	return nil
}
