package lang

import (
	"log/slog"
	"strings"
)

// Lookup returns the text bound to a variable name.
type Lookup func(name string) (string, bool)

// Render returns the text of l with every assignment tag replaced by the
// value lookup returns for its name. Replacement proceeds over the original
// offsets, so a substituted value is never rescanned for tags.
//
// Lines other than [KindLiteral] and [KindInterpolated] render as their
// source text.
func (l *Line) Render(lookup Lookup) (string, error) {
	if l.Kind != KindInterpolated || len(l.Spans) == 0 {
		return l.Text, nil
	}

	var b strings.Builder

	b.Grow(len(l.Text))

	prev := 0

	for _, span := range l.Spans {
		val, ok := lookup(span.Name)
		if !ok {
			return "", ErrUndefined.With(slog.String("name", span.Name))
		}

		b.WriteString(l.Text[prev:span.Start])
		b.WriteString(val)

		prev = span.End
	}

	b.WriteString(l.Text[prev:])

	return b.String(), nil
}

// Names returns the variable names referenced by l in order of appearance.
func (l *Line) Names() []string {
	names := make([]string, len(l.Spans))
	for i, span := range l.Spans {
		names[i] = span.Name
	}

	return names
}
