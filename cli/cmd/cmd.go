package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/ardnew/bspgen/bsp"
	"github.com/ardnew/bspgen/log"
	"github.com/ardnew/bspgen/prompt"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type scriptsPathKey struct{}

// WithScriptsPath returns a new context.Context carrying the root of the
// template layout used by the commands.
func WithScriptsPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, scriptsPathKey{}, path)
}

func scriptsPathFrom(ctx context.Context) string {
	if path, ok := ctx.Value(scriptsPathKey{}).(string); ok && path != "" {
		return path
	}

	return "."
}

// stdout returns the writer for command output: the kong application's
// when one is stored in ctx, otherwise os.Stdout.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// generator returns a [bsp.Generator] rooted at the scripts path of ctx.
func generator(ctx context.Context, opts ...bsp.Option) *bsp.Generator {
	return bsp.New(append([]bsp.Option{
		bsp.WithScriptsPath(scriptsPathFrom(ctx)),
		bsp.WithPrompter(newPrompter(os.Stdin, os.Stdout)),
		bsp.WithLogger(log.Default()),
	}, opts...)...)
}

// newPrompter returns the interactive terminal front end when both streams
// are terminals, and plain line prompts otherwise.
func newPrompter(in, out *os.File) prompt.Prompter {
	if isTerminal(in) && isTerminal(out) {
		return prompt.NewTerminal(in, out)
	}

	return prompt.NewLine(in, out)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
