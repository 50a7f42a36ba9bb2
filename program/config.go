package program

import (
	"github.com/spf13/afero"

	"github.com/ardnew/bspgen/choice"
	"github.com/ardnew/bspgen/log"
	"github.com/ardnew/bspgen/prompt"
)

type config struct {
	fs       afero.Fs
	prompter prompt.Prompter
	resolver *choice.Resolver
	context  choice.Context
	logger   log.Logger
}

// Option configures an [Assembler] or an [Executor].
type Option func(*config)

func makeConfig(opts ...Option) config {
	c := config{fs: afero.NewOsFs()}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// WithFS sets the filesystem receiving the output tree.
func WithFS(fs afero.Fs) Option {
	return func(c *config) { c.fs = fs }
}

// WithPrompter sets the front end answering prompts.
func WithPrompter(p prompt.Prompter) Option {
	return func(c *config) { c.prompter = p }
}

// WithResolver sets the table of list prompts.
func WithResolver(r *choice.Resolver) Option {
	return func(c *config) { c.resolver = r }
}

// WithContext sets the context captured for list prompts. Its machine name
// is bound to the machine variable.
func WithContext(ctx choice.Context) Option {
	return func(c *config) { c.context = ctx }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}
