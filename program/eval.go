package program

import (
	"log/slog"
	"reflect"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type stmtKind int

const (
	stmtIf stmtKind = iota
	stmtElif
	stmtElse
	stmtFor
	stmtAssign
)

// statement is a compiled control-flow statement.
type statement struct {
	kind    stmtKind
	name    string
	source  string
	program *vm.Program
}

var (
	identPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	assignPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*([^=].*)$`)
)

// compile parses the text of a statement op.
//
//	if <expr>:
//	elif <expr>:
//	else:
//	for <name> in <expr>:
//	<name> = <expr>
func compile(text string) (*statement, error) {
	text = strings.TrimSpace(text)
	body, opens := strings.CutSuffix(text, ":")
	body = strings.TrimSpace(body)

	st := &statement{}

	switch {
	case opens && body == "else":
		st.kind = stmtElse

		return st, nil

	case opens && strings.HasPrefix(body, "if "):
		st.kind, st.source = stmtIf, body[len("if "):]

	case opens && strings.HasPrefix(body, "elif "):
		st.kind, st.source = stmtElif, body[len("elif "):]

	case opens && strings.HasPrefix(body, "for "):
		name, iter, ok := strings.Cut(body[len("for "):], " in ")
		name = strings.TrimSpace(name)

		if !ok || !identPattern.MatchString(name) {
			return nil, ErrStatement.With(slog.String("statement", text))
		}

		st.kind, st.name, st.source = stmtFor, name, iter

	case !opens && assignPattern.MatchString(text):
		m := assignPattern.FindStringSubmatch(text)
		st.kind, st.name, st.source = stmtAssign, m[1], m[2]

	default:
		return nil, ErrStatement.With(slog.String("statement", text))
	}

	st.source = strings.TrimSpace(st.source)

	program, err := expr.Compile(st.source, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, ErrEval.With(slog.String("statement", text)).Wrap(err)
	}

	st.program = program

	return st, nil
}

// run evaluates the statement's expression in env.
func (st *statement) run(env map[string]any) (any, error) {
	out, err := expr.Run(st.program, env)
	if err != nil {
		return nil, ErrEval.With(slog.String("expression", st.source)).Wrap(err)
	}

	return out, nil
}

// truthy reports whether v counts as true in a condition: booleans as
// themselves, strings, lists and maps when non-empty, numbers when
// non-zero, and nil as false.
func truthy(v any) bool {
	if v == nil {
		return false
	}

	switch v := v.(type) {
	case bool:
		return v
	case string:
		return v != ""
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return !rv.IsNil()
	default:
		return true
	}
}

// items returns the elements iterated by a for statement. A string
// iterates over its whitespace-separated fields.
func items(v any) ([]any, bool) {
	switch v := v.(type) {
	case nil:
		return nil, true
	case string:
		fields := strings.Fields(v)
		out := make([]any, len(fields))

		for i, f := range fields {
			out[i] = f
		}

		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}
