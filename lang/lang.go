package lang

import (
	"strings"
)

// Tag delimiters and keywords of the template language.
const (
	OpenTag   = "{{"
	CloseTag  = "}}"
	AssignTag = "{{="
	InputTag  = "input"
	IfTag     = "if"
)

// Kind identifies the variant held by a [Line].
type Kind int

const (
	// KindLiteral is verbatim text.
	KindLiteral Kind = iota

	// KindInterpolated is text containing one or more assignment tags.
	KindInterpolated

	// KindStatement is a control-flow statement taken from a free tag.
	KindStatement

	// KindInput is an input descriptor taken from an input tag.
	KindInput
)

// String returns a string representation of the line kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindInterpolated:
		return "Interpolated"
	case KindStatement:
		return "Statement"
	case KindInput:
		return "Input"
	default:
		return "Unknown"
	}
}

// Role distinguishes literal and interpolated lines emitted as file content
// from those naming an output file or directory.
type Role int

const (
	// RoleContent is text written to the current output file.
	RoleContent Role = iota

	// RoleFile names an output file, taken from a template file's path.
	RoleFile

	// RoleDir names an output directory, taken from a template directory's
	// path.
	RoleDir
)

// String returns a string representation of the role.
func (r Role) String() string {
	switch r {
	case RoleContent:
		return "content"
	case RoleFile:
		return "file"
	case RoleDir:
		return "dir"
	default:
		return "unknown"
	}
}

// Span locates an assignment tag within the text of an interpolated line.
// Start is the offset of the opening delimiter and End the offset just past
// the closing delimiter.
type Span struct {
	Start int
	End   int
	Name  string
}

// Line is one element of an expanded template.
//
// Exactly the fields relevant to Kind are set: Spans for KindInterpolated,
// Input for KindInput. Text holds the literal text, the statement source, or
// the raw input tag.
type Line struct {
	Kind  Kind
	Role  Role
	Text  string
	Spans []Span
	Input *Input

	// Num is the 1-based line number in the source file, or 0 for lines
	// derived from a path name.
	Num int

	// Prio orders statements carried into the prompt sequence along with the
	// input they guard.
	Prio int

	// Discard excludes the line from artifact emission.
	Discard bool
}

// Literal returns a verbatim text line with the given role.
func Literal(text string, role Role) *Line {
	return &Line{Kind: KindLiteral, Role: role, Text: text}
}

// Statement returns a control-flow line.
func Statement(text string) *Line {
	return &Line{Kind: KindStatement, Text: text}
}

// IsBlank reports whether l is literal content with no text.
func (l *Line) IsBlank() bool {
	return l.Kind == KindLiteral && strings.TrimSpace(l.Text) == ""
}

// Opens reports whether l is a statement that opens a block, that is, one
// ending in a colon.
func (l *Line) Opens() bool {
	return l.Kind == KindStatement && strings.HasSuffix(l.Text, ":")
}

// Emits reports whether l produces output: content, a file, or a directory.
func (l *Line) Emits() bool {
	return l.Kind == KindLiteral || l.Kind == KindInterpolated
}

// Clone returns a shallow copy of l with its own span slice.
func (l *Line) Clone() *Line {
	c := *l
	c.Spans = append([]Span(nil), l.Spans...)

	return &c
}

// String returns the source text of l.
func (l *Line) String() string {
	return l.Text
}
