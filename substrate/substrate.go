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

// Kind distinguishes template files from template directories.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

// String returns "file" or "dir".
func (k Kind) String() string {
	if k == KindDir {
		return "dir"
	}

	return "file"
}

// NoInstallSuffix marks template files that only declare inputs and produce
// no output.
const NoInstallSuffix = "noinstall"

// Substrate is one template file or directory together with its expansion.
type Substrate struct {
	Kind Kind

	// Path is the template's location in the source filesystem.
	Path string

	// Base is the root of the template tree containing Path. The output
	// path is Path relative to Base, joined onto OutRoot.
	Base    string
	OutRoot string

	// Raw holds the unparsed lines of a file.
	Raw []string

	// Lines is the expansion: an optional conditional taken from the path,
	// the line naming the output, then (for files) one line per source line.
	Lines []*lang.Line
}

// Rel returns Path relative to Base, using forward slashes.
func (s *Substrate) Rel() string {
	rel, err := filepath.Rel(s.Base, s.Path)
	if err != nil {
		rel = strings.TrimPrefix(s.Path, s.Base)
	}

	return strings.TrimPrefix(filepath.ToSlash(rel), "/")
}

// Basename returns the final element of Path.
func (s *Substrate) Basename() string {
	return filepath.Base(s.Path)
}

// NoInstall reports whether s is a file that produces no output.
func (s *Substrate) NoInstall() bool {
	return s.Kind == KindFile && strings.HasSuffix(s.Path, NoInstallSuffix)
}

// Inputs returns the input descriptors declared in s, items included.
func (s *Substrate) Inputs() []*lang.Input {
	var ins []*lang.Input

	for _, line := range s.Lines {
		if line.Kind == lang.KindInput {
			ins = append(ins, line.Input)
		}
	}

	return ins
}

// Expand parses the path of s and, for files, every line of its content
// read from fs. Expand replaces any previous expansion.
func (s *Substrate) Expand(
	ctx context.Context,
	fs afero.Fs,
	logger log.Logger,
) error {
	role := lang.RoleFile
	if s.Kind == KindDir {
		role = lang.RoleDir
	}

	lines, err := lang.ParseName(s.Rel(), role)
	if err != nil {
		return lang.WrapError(err).With(slog.String("path", s.Path))
	}

	s.Lines = lines

	if s.Kind == KindDir {
		return nil
	}

	if s.Raw == nil {
		data, err := afero.ReadFile(fs, s.Path)
		if err != nil {
			return ErrRead.With(slog.String("path", s.Path)).Wrap(err)
		}

		s.Raw = splitLines(string(data))
	}

	p := lang.NewParser(s.Path, lang.WithLogger(logger))

	for i, raw := range s.Raw {
		line, err := p.Line(ctx, raw, i+1)
		if err != nil {
			return err
		}

		s.Lines = append(s.Lines, line)
	}

	logger.TraceContext(ctx, "expanded template",
		slog.String("kind", s.Kind.String()),
		slog.String("path", s.Rel()),
		slog.Int("lines", len(s.Lines)),
	)

	return nil
}

// splitLines splits text into lines without their terminators. A final
// terminator does not begin an additional empty line.
func splitLines(text string) []string {
	if text == "" {
		return []string{}
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
