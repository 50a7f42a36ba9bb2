package lang

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/shlex"

	"github.com/ardnew/bspgen/log"
)

// Parser expands the lines of one template file. It holds the most recent
// list descriptor so that subsequent item descriptors attach to it; a new
// Parser is required for each file.
type Parser struct {
	file   string
	list   *Input
	logger log.Logger
}

// Option configures a [Parser].
type Option func(*Parser)

// WithLogger sets the logger used for trace-level diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// NewParser returns a Parser for the template file at path. The path is
// recorded in every descriptor as its filename property and in every error.
func NewParser(path string, opts ...Option) *Parser {
	p := &Parser{file: path}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// File returns the path given to [NewParser].
func (p *Parser) File() string { return p.file }

// Line parses the raw text of source line num (1-based).
//
// A line containing assignment tags becomes [KindInterpolated]; any other
// text on such a line is literal. Otherwise a line without tags becomes
// [KindLiteral]. A line with a free tag must consist of that tag alone and
// becomes [KindInput] when the tag begins with the input keyword, or
// [KindStatement] otherwise. Trailing whitespace is removed from emitted
// text.
func (p *Parser) Line(ctx context.Context, raw string, num int) (*Line, error) {
	text := strings.TrimRight(raw, " \t\r\n")

	if strings.Contains(text, AssignTag) {
		line, err := interpolated(text, RoleContent)
		if err != nil {
			return nil, WrapError(err).WithPosition(p.file, num)
		}

		line.Num = num
		p.trace(ctx, line)

		return line, nil
	}

	start := strings.Index(text, OpenTag)
	if start < 0 {
		line := Literal(text, RoleContent)
		line.Num = num

		return line, nil
	}

	end := strings.Index(text[start:], CloseTag)
	if end < 0 {
		return nil, ErrUnterminated.WithPosition(p.file, num).
			With(slog.String("text", text))
	}

	end += start

	if strings.TrimSpace(text[:start]) != "" ||
		strings.TrimSpace(text[end+len(CloseTag):]) != "" {
		return nil, ErrStrayText.WithPosition(p.file, num).
			With(slog.String("text", text))
	}

	tag := strings.TrimSpace(text[start+len(OpenTag) : end])
	if tag == "" {
		return nil, ErrEmptyTag.WithPosition(p.file, num)
	}

	var line *Line

	if keyword(tag, InputTag) {
		in, err := p.input(tag[len(InputTag):], num)
		if err != nil {
			return nil, err
		}

		line = &Line{Kind: KindInput, Text: tag, Input: in, Prio: in.Prio}
	} else {
		line = Statement(tag)
	}

	line.Num = num
	p.trace(ctx, line)

	return line, nil
}

// input builds the descriptor of an input tag payload, a sequence of
// shell-quoted key:value pairs.
func (p *Parser) input(payload string, num int) (*Input, error) {
	fields, err := shlex.Split(payload)
	if err != nil {
		return nil, ErrProperty.WithPosition(p.file, num).Wrap(err)
	}

	props := make(map[string]string, len(fields)+1)

	for _, field := range fields {
		key, val, ok := strings.Cut(field, ":")
		if !ok {
			return nil, ErrProperty.WithPosition(p.file, num).
				With(slog.String("property", field))
		}

		props[key] = val
	}

	props[PropFilename] = p.file

	in, err := NewInput(props, p.file, num)
	if err != nil {
		return nil, err
	}

	switch {
	case in.IsList():
		p.list = in

	case in.IsItem():
		if p.list == nil {
			return nil, ErrOrphanItem.WithPosition(p.file, num).
				With(slog.String("type", in.Type.String()))
		}

		if err := p.list.Attach(in); err != nil {
			return nil, err
		}
	}

	return in, nil
}

func (p *Parser) trace(ctx context.Context, line *Line) {
	p.logger.TraceContext(ctx, "parsed line",
		slog.String("file", p.file),
		slog.Int("num", line.Num),
		slog.String("kind", line.Kind.String()),
	)
}

// ParseName expands a template path, relative to its tree root, into the
// lines that create it.
//
// The path may contain assignment tags and at most one free tag, which must
// be an if statement. The statement, if any, is returned first; the
// remaining path (with the tag and the whitespace following it removed)
// follows as a line with the given role.
func ParseName(rel string, role Role) ([]*Line, error) {
	rel = strings.TrimPrefix(rel, "/")

	var lines []*Line

	if start := freeTag(rel, 0); start >= 0 {
		end := strings.Index(rel[start:], CloseTag)
		if end < 0 {
			return nil, ErrUnterminated.WithPosition(rel, 0)
		}

		end += start

		tag := strings.TrimSpace(rel[start+len(OpenTag) : end])
		if !keyword(tag, IfTag) {
			return nil, ErrPathTag.WithPosition(rel, 0).With(slog.String("tag", tag))
		}

		lines = append(lines, Statement(tag))
		rel = rel[:start] + strings.TrimSpace(rel[end+len(CloseTag):])

		if freeTag(rel, 0) >= 0 {
			return nil, ErrPathTag.WithPosition(rel, 0)
		}
	}

	if rel == "" || strings.HasSuffix(rel, "/") {
		return nil, ErrPathName.WithPosition(rel, 0)
	}

	name := Literal(rel, role)

	if strings.Contains(rel, AssignTag) {
		var err error

		name, err = interpolated(rel, role)
		if err != nil {
			return nil, WrapError(err).WithPosition(rel, 0)
		}
	}

	return append(lines, name), nil
}

// freeTag returns the offset of the first open delimiter at or after from
// that does not begin an assignment tag, or -1.
func freeTag(s string, from int) int {
	for from < len(s) {
		i := strings.Index(s[from:], OpenTag)
		if i < 0 {
			return -1
		}

		i += from
		if !strings.HasPrefix(s[i:], AssignTag) {
			return i
		}

		from = i + len(AssignTag)
	}

	return -1
}

// interpolated records the assignment tags of text, in ascending order.
func interpolated(text string, role Role) (*Line, error) {
	line := &Line{Kind: KindInterpolated, Role: role, Text: text}

	for start := strings.Index(text, AssignTag); start >= 0; {
		end := strings.Index(text[start:], CloseTag)
		if end < 0 {
			return nil, ErrUnterminated.With(slog.String("text", text))
		}

		end += start

		name := strings.TrimSpace(text[start+len(AssignTag) : end])
		if name == "" {
			return nil, ErrEmptyTag.With(slog.String("text", text))
		}

		line.Spans = append(line.Spans, Span{
			Start: start,
			End:   end + len(CloseTag),
			Name:  name,
		})

		next := strings.Index(text[end:], AssignTag)
		if next < 0 {
			break
		}

		start = end + next
	}

	return line, nil
}

// keyword reports whether tag begins with the word kw.
func keyword(tag, kw string) bool {
	if !strings.HasPrefix(tag, kw) {
		return false
	}

	rest := tag[len(kw):]

	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '('
}
