package program

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ardnew/bspgen/lang"
)

// Kind identifies the action performed by an [Op].
type Kind int

const (
	// OpBind assigns a constant to a variable.
	OpBind Kind = iota

	// OpPrompt asks the operator for a value and assigns it.
	OpPrompt

	// OpStatement is a control-flow statement. Statements ending in a colon
	// open a block holding the following ops of greater depth.
	OpStatement

	// OpOpen creates an output file and directs subsequent writes to it.
	OpOpen

	// OpMkdir creates an output directory.
	OpMkdir

	// OpWrite appends one line to the current output file.
	OpWrite
)

// String returns a string representation of the op kind.
func (k Kind) String() string {
	switch k {
	case OpBind:
		return "bind"
	case OpPrompt:
		return "prompt"
	case OpStatement:
		return "statement"
	case OpOpen:
		return "open"
	case OpMkdir:
		return "mkdir"
	case OpWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Op is one action of a generation program.
type Op struct {
	Kind  Kind
	Depth int

	// Name and Value are the variable and constant of OpBind.
	Name  string
	Value any

	// Line is the template line of OpStatement, OpOpen, OpMkdir and
	// OpWrite. Its assignment tags are rendered when the op executes.
	Line *lang.Line

	// Input is the descriptor of OpPrompt, and Key the deferred key of a
	// list prompt.
	Input *lang.Input
	Key   string

	// Root is the output root that the path of OpOpen and OpMkdir is
	// relative to.
	Root string
}

// Opens reports whether op begins a block.
func (op Op) Opens() bool {
	return op.Kind == OpStatement && op.Line.Opens()
}

// String returns the op in code dump notation, without indentation.
func (op Op) String() string {
	switch op.Kind {
	case OpBind:
		return "bind " + op.Name + " = " + quote(op.Value)

	case OpPrompt:
		s := "prompt " + op.Input.Type.String() + " " + op.Input.Name() +
			" " + strconv.Quote(op.Input.Msg())
		if op.Key != "" {
			s += " from " + strconv.Quote(op.Key)
		}

		return s

	case OpStatement:
		return op.Line.Text

	case OpOpen, OpMkdir:
		return op.Kind.String() + " " +
			strconv.Quote(strings.TrimSuffix(op.Root, "/")+"/"+op.Line.Text)

	case OpWrite:
		return "write " + strconv.Quote(op.Line.Text)

	default:
		return op.Kind.String()
	}
}

func quote(v any) string {
	switch v := v.(type) {
	case []string:
		q := make([]string, len(v))
		for i, s := range v {
			q[i] = strconv.Quote(s)
		}

		return "[" + strings.Join(q, ", ") + "]"

	default:
		return strconv.Quote(Format(v))
	}
}

// Indent is the code dump indentation of one block level.
const Indent = "    "

// Program is an assembled generation program.
type Program struct {
	Ops []Op
}

// Append adds ops to the end of p.
func (p *Program) Append(ops ...Op) {
	p.Ops = append(p.Ops, ops...)
}

// WriteTo writes the code dump of p to w, one op per line.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, op := range p.Ops {
		n, err := fmt.Fprintln(w, strings.Repeat(Indent, op.Depth)+op.String())

		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// String returns the code dump of p.
func (p *Program) String() string {
	var b strings.Builder

	_, _ = p.WriteTo(&b)

	return b.String()
}

// Format returns the text that a variable value interpolates as. Lists
// join their elements with a space.
func Format(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, " ")
	case []any:
		s := make([]string, len(v))
		for i, e := range v {
			s[i] = Format(e)
		}

		return strings.Join(s, " ")
	default:
		return fmt.Sprint(v)
	}
}
