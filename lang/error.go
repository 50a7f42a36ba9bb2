package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrUnterminated    = NewError("no close tag found for open tag")
	ErrStrayText       = NewError("tag must occupy the entire line")
	ErrEmptyTag        = NewError("empty tag")
	ErrPathTag         = NewError("only 'if' tags are allowed in file or directory names")
	ErrPathName        = NewError("empty file or directory name")
	ErrInputType       = NewError("unknown input type")
	ErrMissingProperty = NewError("missing input property")
	ErrProperty        = NewError("malformed input property")
	ErrDependsOnVal    = NewError("no 'depends-on-val' for 'depends-on' property")
	ErrPrio            = NewError("invalid input priority")
	ErrOrphanItem      = NewError("input item has no preceding list")
	ErrItemMismatch    = NewError("input item does not match preceding list")
	ErrUndefined       = NewError("undefined variable")
)

// Error represents an error with an optional source position and structured
// logging attributes. It implements both error and slog.LogValuer.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
	file  string
	line  int
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError returns err as an *Error, wrapping it if necessary.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error formats the error as "<file>:<line>: <msg>: <cause>", omitting parts
// that are unset.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	s := strings.Join(part, ": ")

	if pos := e.Position(); pos != "" {
		return pos + ": " + s
	}

	return s
}

// Position returns "file:line", "file", or "" when no position is set.
func (e *Error) Position() string {
	switch {
	case e.file == "":
		return ""
	case e.line > 0:
		return e.file + ":" + strconv.Itoa(e.line)
	default:
		return e.file
	}
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same message, so that
// sentinels match after being refined with [Error.With] or [Error.Wrap].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.file != "" {
		attrs = append(attrs, slog.String("file", e.file))
	}

	if e.line > 0 {
		attrs = append(attrs, slog.Int("line", e.line))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = append(c.attrs, attrs...)

	return c
}

// WithPosition records the source file and 1-based line of the error. A
// line of 0 refers to the file as a whole, such as its path name.
func (e *Error) WithPosition(file string, line int) *Error {
	c := e.clone()
	c.file, c.line = file, line

	return c
}

func (e *Error) clone() *Error {
	c := *e
	c.attrs = append([]slog.Attr(nil), e.attrs...)

	return &c
}
