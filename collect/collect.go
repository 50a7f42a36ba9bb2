package collect

import (
	"cmp"
	"context"
	"iter"
	"log/slog"
	"slices"
	"strconv"

	"github.com/ardnew/bspgen/lang"
	"github.com/ardnew/bspgen/log"
	"github.com/ardnew/bspgen/substrate"
)

// Entry is one element of the prompt sequence. Exactly one of Line and Group
// is set; Line is either an input descriptor or a statement guarding the
// entry that follows it.
type Entry struct {
	Line  *lang.Line
	Group *Group
}

// Prio returns the ordering key of e.
func (e Entry) Prio() int {
	if e.Group != nil {
		return e.Group.Prio
	}

	return e.Line.Prio
}

// Group holds the prompts of a template file whose name carries a
// conditional, so that they are presented together under that condition.
type Group struct {
	// Guard is the conditional taken from the file's base name.
	Guard *lang.Line

	// File is the template path.
	File string

	Entries []Entry

	// Prio is the minimum priority among Entries.
	Prio int
}

func (g *Group) add(line *lang.Line) {
	g.Entries = append(g.Entries, Entry{Line: line})
	g.Prio = min(g.Prio, line.Prio)
}

// Collector gathers the prompt sequence of a set of expanded templates.
type Collector struct {
	logger log.Logger
}

// Option configures a [Collector].
type Option func(*Collector)

// WithLogger sets the logger used for trace-level diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c *Collector) { c.logger = logger }
}

// New returns a Collector.
func New(opts ...Option) *Collector {
	c := &Collector{}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Gather returns the input descriptors of subs as a prompt sequence, stably
// sorted by priority, with a guard statement inserted before every
// descriptor that depends on another.
//
// Gather also marks as discarded the artifact lines that belong to the
// prompt sequence instead: a statement immediately preceding an input
// descriptor moves into the sequence, and a blank line ending such a
// conditional block is dropped.
//
// The inputs of a file whose base name holds a conditional form a [Group]
// guarded by that conditional. Choice and check items are reachable only
// through their list.
func (c *Collector) Gather(
	ctx context.Context,
	subs []*substrate.Substrate,
) []Entry {
	var entries []Entry

	for _, s := range subs {
		if s.Kind != substrate.KindFile {
			continue
		}

		var group *Group

		if guard := conditional(s.Basename()); guard != nil {
			group = &Group{Guard: guard, File: s.Path, Prio: lang.NoPrio}
		}

		add := func(line *lang.Line) {
			if group != nil {
				group.add(line)
			} else {
				entries = append(entries, Entry{Line: line})
			}
		}

		var (
			pending      *lang.Line
			hasCondition bool
		)

		for _, line := range s.Lines {
			switch {
			case line.Kind == lang.KindStatement:
				hasCondition = true
				pending = line

			case line.Kind == lang.KindInput && line.Input.IsItem():

			case line.Kind == lang.KindInput:
				if pending != nil {
					pending.Prio = line.Prio
					pending.Discard = true
					add(pending)

					pending = nil
				}

				add(line)

			default:
				pending = nil

				if hasCondition && line.IsBlank() {
					line.Discard = true
				}

				hasCondition = false
			}
		}

		if group != nil && len(group.Entries) > 0 {
			entries = append(entries, Entry{Group: group})
		}
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Prio(), b.Prio())
	})

	entries = guardDependencies(entries)

	c.logger.DebugContext(ctx, "gathered inputs",
		slog.Int("entries", len(entries)),
	)

	return entries
}

// guardDependencies inserts the statement
//
//	if <depends-on> == "<depends-on-val>":
//
// before every descriptor with a depends-on property, recursing into
// groups.
func guardDependencies(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))

	for _, e := range entries {
		if e.Group != nil {
			e.Group.Entries = guardDependencies(e.Group.Entries)
			out = append(out, e)

			continue
		}

		if e.Line.Kind == lang.KindInput {
			if name, val, ok := e.Line.Input.DependsOn(); ok {
				guard := lang.Statement("if " + name + " == " + strconv.Quote(val) + ":")
				guard.Prio = e.Line.Prio
				out = append(out, Entry{Line: guard})
			}
		}

		out = append(out, e)
	}

	return out
}

// conditional returns the if statement held by a template base name, or nil.
func conditional(basename string) *lang.Line {
	lines, err := lang.ParseName(basename, lang.RoleFile)
	if err != nil || len(lines) < 2 {
		return nil
	}

	return lang.Statement(lines[0].Text)
}

// Inputs returns an iterator over every descriptor in entries, descending
// into groups.
func Inputs(entries []Entry) iter.Seq[*lang.Input] {
	return func(yield func(*lang.Input) bool) {
		walkInputs(entries, yield)
	}
}

func walkInputs(entries []Entry, yield func(*lang.Input) bool) bool {
	for _, e := range entries {
		if e.Group != nil {
			if !walkInputs(e.Group.Entries, yield) {
				return false
			}

			continue
		}

		if e.Line.Kind == lang.KindInput && !yield(e.Line.Input) {
			return false
		}
	}

	return true
}
