package program

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/ardnew/bspgen/builtin"
	"github.com/ardnew/bspgen/choice"
	"github.com/ardnew/bspgen/lang"
)

// Predefined errors (sentinel values).
var (
	ErrStatement = lang.NewError("unsupported statement")
	ErrDangling  = lang.NewError("elif or else without preceding if")
	ErrEval      = lang.NewError("failed to evaluate expression")
	ErrIterate   = lang.NewError("value is not iterable")
	ErrNoFile    = lang.NewError("no output file open")
	ErrOpen      = lang.NewError("failed to create output file")
	ErrMkdir     = lang.NewError("failed to create output directory")
	ErrWrite     = lang.NewError("failed to write output file")
	ErrPrompt    = lang.NewError("failed to prompt")
)

// node is an op together with the block it opens.
type node struct {
	op   Op
	stmt *statement
	body []*node
}

// Plan is a program compiled for execution.
type Plan struct {
	roots []*node
}

// Executor runs generation programs. An Executor holds the variables bound
// by the programs it runs and is not safe for concurrent use.
type Executor struct {
	cfg  config
	vars map[string]any
	file afero.File
	path string
}

// NewExecutor returns an Executor.
func NewExecutor(opts ...Option) *Executor {
	return &Executor{cfg: makeConfig(opts...), vars: make(map[string]any)}
}

// Vars returns the variables bound so far.
func (e *Executor) Vars() map[string]any {
	return e.vars
}

// Prepare compiles the statements of p and arranges its ops into blocks.
// The body of a statement ending in a colon is every following op of
// greater depth.
func (e *Executor) Prepare(p *Program) (*Plan, error) {
	var (
		roots []*node
		stack []*node
	)

	for _, op := range p.Ops {
		n := &node{op: op}

		if op.Kind == OpStatement {
			st, err := compile(op.Line.Text)
			if err != nil {
				return nil, lang.WrapError(err).With(slog.Int("line", op.Line.Num))
			}

			n.stmt = st
		}

		for len(stack) > 0 && stack[len(stack)-1].op.Depth >= op.Depth {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1]
			parent.body = append(parent.body, n)
		}

		if op.Opens() {
			stack = append(stack, n)
		}
	}

	return &Plan{roots: roots}, nil
}

// Run prepares and executes p.
func (e *Executor) Run(ctx context.Context, p *Program) error {
	plan, err := e.Prepare(p)
	if err != nil {
		return err
	}

	return e.Execute(ctx, plan)
}

// Execute runs plan. The output file left open by the final write is
// closed before Execute returns.
func (e *Executor) Execute(ctx context.Context, plan *Plan) (err error) {
	defer func() {
		if cerr := e.close(); err == nil {
			err = cerr
		}
	}()

	return e.block(ctx, plan.roots)
}

func (e *Executor) block(ctx context.Context, nodes []*node) error {
	for i := 0; i < len(nodes); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := nodes[i]

		if n.stmt == nil {
			if err := e.exec(ctx, n.op); err != nil {
				return err
			}

			continue
		}

		switch n.stmt.kind {
		case stmtIf:
			j := i + 1
			for j < len(nodes) && nodes[j].stmt != nil &&
				(nodes[j].stmt.kind == stmtElif || nodes[j].stmt.kind == stmtElse) {
				j++
				if nodes[j-1].stmt.kind == stmtElse {
					break
				}
			}

			if err := e.branch(ctx, nodes[i:j]); err != nil {
				return err
			}

			i = j - 1

		case stmtElif, stmtElse:
			return ErrDangling.With(
				slog.String("statement", n.op.Line.Text),
				slog.Int("line", n.op.Line.Num),
			)

		case stmtFor:
			if err := e.loop(ctx, n); err != nil {
				return err
			}

		case stmtAssign:
			v, err := n.stmt.run(e.env())
			if err != nil {
				return err
			}

			e.vars[n.stmt.name] = v
		}
	}

	return nil
}

// branch runs the body of the first arm of an if chain whose condition
// holds.
func (e *Executor) branch(ctx context.Context, chain []*node) error {
	for _, arm := range chain {
		if arm.stmt.kind != stmtElse {
			v, err := arm.stmt.run(e.env())
			if err != nil {
				return err
			}

			if !truthy(v) {
				continue
			}
		}

		return e.block(ctx, arm.body)
	}

	return nil
}

func (e *Executor) loop(ctx context.Context, n *node) error {
	v, err := n.stmt.run(e.env())
	if err != nil {
		return err
	}

	elems, ok := items(v)
	if !ok {
		return ErrIterate.With(
			slog.String("expression", n.stmt.source),
			slog.String("type", fmt.Sprintf("%T", v)),
		)
	}

	for _, elem := range elems {
		e.vars[n.stmt.name] = elem

		if err := e.block(ctx, n.body); err != nil {
			return err
		}
	}

	return nil
}

// env returns the expression environment: the built-ins shadowed by the
// bound variables.
func (e *Executor) env() map[string]any {
	env := builtin.Env()
	maps.Copy(env, e.vars)

	return env
}

func (e *Executor) lookup(name string) (string, bool) {
	v, ok := e.vars[name]
	if !ok {
		return "", false
	}

	return Format(v), true
}

func (e *Executor) render(line *lang.Line) (string, error) {
	s, err := line.Render(e.lookup)
	if err != nil {
		return "", lang.WrapError(err).With(slog.Int("line", line.Num))
	}

	return s, nil
}

func (e *Executor) exec(ctx context.Context, op Op) error {
	switch op.Kind {
	case OpBind:
		e.vars[op.Name] = op.Value

		return nil

	case OpPrompt:
		return e.prompt(ctx, op)

	case OpOpen:
		return e.open(ctx, op)

	case OpMkdir:
		rel, err := e.render(op.Line)
		if err != nil {
			return err
		}

		path := filepath.Join(op.Root, rel)

		if err := e.cfg.fs.MkdirAll(path, 0o755); err != nil {
			return ErrMkdir.With(slog.String("path", path)).Wrap(err)
		}

		e.cfg.logger.TraceContext(ctx, "created directory", slog.String("path", path))

		return nil

	case OpWrite:
		text, err := e.render(op.Line)
		if err != nil {
			return err
		}

		if e.file == nil {
			return ErrNoFile.With(slog.String("text", text))
		}

		if _, err := io.WriteString(e.file, text+"\n"); err != nil {
			return ErrWrite.With(slog.String("path", e.path)).Wrap(err)
		}

		return nil
	}

	return nil
}

func (e *Executor) open(ctx context.Context, op Op) error {
	rel, err := e.render(op.Line)
	if err != nil {
		return err
	}

	if err := e.close(); err != nil {
		return err
	}

	path := filepath.Join(op.Root, rel)

	f, err := e.cfg.fs.Create(path)
	if err != nil {
		return ErrOpen.With(slog.String("path", path)).Wrap(err)
	}

	e.file, e.path = f, path

	e.cfg.logger.DebugContext(ctx, "created file", slog.String("path", path))

	return nil
}

func (e *Executor) close() error {
	if e.file == nil {
		return nil
	}

	f, path := e.file, e.path
	e.file, e.path = nil, ""

	if err := f.Close(); err != nil {
		return ErrWrite.With(slog.String("path", path)).Wrap(err)
	}

	return nil
}

// prompt asks for the value of op's variable and binds the normalized
// answer.
func (e *Executor) prompt(ctx context.Context, op Op) error {
	in := op.Input
	name := in.Name()
	current := Format(e.vars[name])

	if e.cfg.prompter == nil {
		return ErrPrompt.With(slog.String("name", name))
	}

	var (
		msg    string
		values []string
	)

	if in.IsList() {
		options, err := e.options(ctx, op)
		if err != nil {
			return err
		}

		var b strings.Builder

		b.WriteString(in.Label())
		b.WriteString("\n")

		for i, o := range options {
			fmt.Fprintf(&b, "\t%d) %s\n", i+1, o.Desc)

			values = append(values, o.Value)
		}

		msg = b.String()
	} else {
		msg = in.Label() + " "
	}

	answer, err := e.cfg.prompter.Prompt(ctx, msg)
	if err != nil {
		return ErrPrompt.With(slog.String("name", name)).Wrap(err)
	}

	var value any

	switch in.Type {
	case lang.InputBoolean:
		value = Boolean(answer, current)

	case lang.InputChoiceList:
		value = Default(FindChoice(answer, values), in.Default())

	case lang.InputCheckList:
		value = FindChoices(answer, values)
		if len(value.([]string)) == 0 {
			value = strings.Fields(in.Default())
		}

	default:
		value = Default(answer, current)
	}

	e.vars[name] = value

	e.cfg.logger.DebugContext(ctx, "prompted",
		slog.String("name", name),
		slog.String("value", Format(value)),
	)

	return nil
}

func (e *Executor) options(ctx context.Context, op Op) ([]choice.Option, error) {
	r := e.cfg.resolver
	if r == nil {
		r = choice.NewResolver(nil)
	}

	if op.Key == "" {
		return r.Options(ctx, e.cfg.context.For(op.Input), op.Input)
	}

	return r.Resolve(ctx, op.Key)
}
