package substrate

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/ardnew/bspgen/lang"
	"github.com/ardnew/bspgen/log"
)

// Predefined errors (sentinel values).
var (
	ErrRead = lang.NewError("failed to read template")
	ErrWalk = lang.NewError("failed to walk template tree")
)

// Walker expands template trees.
type Walker struct {
	fs     afero.Fs
	logger log.Logger
}

// Option configures a [Walker].
type Option func(*Walker)

// WithLogger sets the logger used for trace-level diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(w *Walker) { w.logger = logger }
}

// NewWalker returns a Walker reading templates from fs.
func NewWalker(fs afero.Fs, opts ...Option) *Walker {
	w := &Walker{fs: fs}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Walk expands every file and directory below root and returns them in
// generation order: for each directory, its files, then its subdirectories,
// then the contents of each subdirectory in turn. Entries are visited in
// lexical order. Editor backups (names ending in "~" or "#") are skipped.
// Output paths are formed relative to root under out.
func (w *Walker) Walk(
	ctx context.Context,
	root, out string,
) ([]*Substrate, error) {
	var subs []*Substrate

	if err := w.walk(ctx, root, root, out, &subs); err != nil {
		return nil, err
	}

	w.logger.DebugContext(ctx, "walked template tree",
		slog.String("root", root),
		slog.Int("count", len(subs)),
	)

	return subs, nil
}

func (w *Walker) walk(
	ctx context.Context,
	dir, root, out string,
	subs *[]*Substrate,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		return ErrWalk.With(slog.String("dir", dir)).Wrap(err)
	}

	var dirs []string

	for _, pass := range []Kind{KindFile, KindDir} {
		for _, entry := range entries {
			if entry.IsDir() != (pass == KindDir) {
				continue
			}

			name := entry.Name()
			if pass == KindFile && isBackup(name) {
				continue
			}

			s := &Substrate{
				Kind:    pass,
				Path:    filepath.Join(dir, name),
				Base:    root,
				OutRoot: out,
			}

			if err := s.Expand(ctx, w.fs, w.logger); err != nil {
				return err
			}

			*subs = append(*subs, s)

			if pass == KindDir {
				dirs = append(dirs, s.Path)
			}
		}
	}

	for _, d := range dirs {
		if err := w.walk(ctx, d, root, out, subs); err != nil {
			return err
		}
	}

	return nil
}

func isBackup(name string) bool {
	return strings.HasSuffix(name, "~") || strings.HasSuffix(name, "#")
}
