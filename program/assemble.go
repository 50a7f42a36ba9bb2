package program

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/bspgen/choice"
	"github.com/ardnew/bspgen/collect"
	"github.com/ardnew/bspgen/lang"
	"github.com/ardnew/bspgen/substrate"
)

// MachineVar is the variable bound to the target machine name.
const MachineVar = "machine"

// Assembler builds generation programs.
type Assembler struct {
	cfg config
}

// NewAssembler returns an Assembler. List prompts are registered with the
// resolver given by [WithResolver], under the context given by
// [WithContext].
func NewAssembler(opts ...Option) *Assembler {
	return &Assembler{cfg: makeConfig(opts...)}
}

// Assemble returns the program that binds the initial variable values,
// binds the machine name, prompts for every input in entries, and emits
// the artifacts of subs.
//
// When supplied is non-nil its values are bound instead of the declared
// defaults and no prompts are assembled.
func (a *Assembler) Assemble(
	ctx context.Context,
	entries []collect.Entry,
	subs []*substrate.Substrate,
	supplied map[string]any,
) *Program {
	p := &Program{}

	if supplied != nil {
		p.Append(Supplied(supplied)...)
	} else {
		p.Append(Defaults(entries)...)
	}

	p.Append(Op{Kind: OpBind, Name: MachineVar, Value: a.cfg.context.Machine})

	if supplied == nil {
		p.Append(a.Prompts(entries)...)
	}

	p.Append(Artifacts(subs)...)

	a.cfg.logger.DebugContext(ctx, "assembled program",
		slog.Int("ops", len(p.Ops)),
		slog.Bool("supplied", supplied != nil),
	)

	return p
}

// Defaults binds every input variable in entries to its declared default,
// or to the empty string.
func Defaults(entries []collect.Entry) []Op {
	var ops []Op

	for in := range collect.Inputs(entries) {
		ops = append(ops, Op{Kind: OpBind, Name: in.Name(), Value: in.Default()})
	}

	return ops
}

// Supplied binds the values of a properties record. A nested record holds
// the values of a group, keyed by the group's guard text, and binds its
// members directly. Keys are bound in sorted order.
func Supplied(props map[string]any) []Op {
	var ops []Op

	for _, name := range slices.Sorted(maps.Keys(props)) {
		if nested, ok := props[name].(map[string]any); ok {
			ops = append(ops, Supplied(nested)...)

			continue
		}

		ops = append(ops, Op{Kind: OpBind, Name: name, Value: Value(props[name])})
	}

	return ops
}

// Value converts a decoded property value to a variable value: a list
// becomes []string, a boolean becomes "y" or "n", and anything else its
// text.
func Value(v any) any {
	switch v := v.(type) {
	case []string:
		return v
	case []any:
		s := make([]string, len(v))
		for i, e := range v {
			s[i] = Format(e)
		}

		return s
	case bool:
		if v {
			return "y"
		}

		return "n"
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Prompts returns the prompt ops of entries in order, each list prompt
// registered with the assembler's resolver.
//
// A statement ending in a colon indents the following prompts by one
// level; any other line closes one level. Within a group, which is
// introduced by its guard, the outermost level is never closed.
func (a *Assembler) Prompts(entries []collect.Entry) []Op {
	var ops []Op

	a.prompts(entries, nil, false, &ops)

	return ops
}

func (a *Assembler) prompts(
	entries []collect.Entry,
	guard *lang.Line,
	inGroup bool,
	ops *[]Op,
) {
	indent, next := 0, 0

	lines := make([]collect.Entry, 0, len(entries)+1)
	if guard != nil {
		lines = append(lines, collect.Entry{Line: guard})
	}

	for _, e := range append(lines, entries...) {
		if e.Group != nil {
			a.prompts(e.Group.Entries, e.Group.Guard, true, ops)

			continue
		}

		if e.Line.IsBlank() {
			continue
		}

		op := a.prompt(e.Line)

		switch {
		case e.Line.Opens():
			next++
		case indent > 1 || (!inGroup && indent > 0):
			next--
		}

		op.Depth = indent
		*ops = append(*ops, op)

		indent = next
	}
}

func (a *Assembler) prompt(line *lang.Line) Op {
	if line.Kind != lang.KindInput {
		return Op{Kind: OpStatement, Line: line}
	}

	op := Op{Kind: OpPrompt, Input: line.Input}

	if line.Input.IsList() && a.cfg.resolver != nil {
		op.Key = choice.KeyOf(line.Input)

		if !a.cfg.resolver.Register(op.Key, a.cfg.context.For(line.Input), line.Input) {
			if prev, _ := a.cfg.resolver.Input(op.Key); prev != line.Input {
				a.cfg.logger.Warn("list prompt shares the options of an earlier prompt",
					slog.String("key", op.Key),
					slog.String("file", line.Input.File),
					slog.Int("line", line.Input.Line),
					slog.String("first", prev.File),
				)
			}
		}
	}

	return op
}

// Artifacts returns the ops creating the output of subs, in order.
// Descriptors, discarded lines and noinstall files emit nothing.
func Artifacts(subs []*substrate.Substrate) []Op {
	var ops []Op

	for _, s := range subs {
		if s.NoInstall() {
			continue
		}

		var depths []int
		if s.Kind == substrate.KindDir {
			depths = dirDepths(s.Lines)
		} else {
			depths = fileDepths(s.Lines)
		}

		for i, line := range s.Lines {
			if line.Kind == lang.KindInput || line.Discard {
				continue
			}

			op := Op{Depth: depths[i], Line: line, Root: s.OutRoot}

			switch {
			case !line.Emits():
				op.Kind = OpStatement
			case line.Role == lang.RoleFile:
				op.Kind = OpOpen
			case line.Role == lang.RoleDir:
				op.Kind = OpMkdir
			default:
				op.Kind = OpWrite
			}

			ops = append(ops, op)
		}
	}

	return ops
}

// fileDepths computes the block depth of every line of a file.
//
// A statement ending in a colon indents the following lines by one level
// beyond the base. The base steps to 1 when a conditional taken from the
// file's name precedes the line opening it. Any other statement, and any
// blank line, returns to the base.
func fileDepths(lines []*lang.Line) []int {
	depths := make([]int, len(lines))
	base, indent, next := 0, 0, 0

	for i, line := range lines {
		if line.Kind == lang.KindInput {
			continue
		}

		if line.Role == lang.RoleFile && indent == 1 {
			base = 1
		}

		if indent != 0 && (line.IsBlank() || line.Kind == lang.KindStatement) {
			indent, next = base, base
		}

		if line.Opens() {
			next = base + 1
		}

		depths[i] = indent
		indent = next
	}

	return depths
}

// dirDepths indents the line following a statement ending in a colon.
func dirDepths(lines []*lang.Line) []int {
	depths := make([]int, len(lines))
	indent := 0

	for i, line := range lines {
		depths[i] = indent

		indent = 0
		if line.Opens() {
			indent = 1
		}
	}

	return depths
}
