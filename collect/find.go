package collect

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/bspgen/lang"
)

// Schema returns the properties of every prompt in entries, keyed by input
// name. Each value holds the remaining properties of the descriptor; the
// prompts of a group are nested under the text of the group's guard.
func Schema(entries []Entry) map[string]any {
	schema := make(map[string]any)

	for _, e := range entries {
		if e.Group != nil {
			schema[e.Group.Guard.Text] = Schema(e.Group.Entries)

			continue
		}

		if e.Line.Kind != lang.KindInput {
			continue
		}

		schema[e.Line.Input.Name()] = e.Line.Input.Properties()
	}

	return schema
}

// SplitNested splits a property path of the form outer.inner on dots outside
// double quotes. It returns nil when the path has no such dot.
func SplitNested(property string) []string {
	var (
		parts    []string
		cur      strings.Builder
		inQuotes bool
	)

	for _, r := range property {
		switch {
		case r == '.' && !inQuotes:
			parts = append(parts, cur.String())
			cur.Reset()

			continue

		case r == '"':
			inQuotes = !inQuotes
		}

		cur.WriteRune(r)
	}

	if parts == nil {
		return nil
	}

	return append(parts, cur.String())
}

// FindGroup returns the first group whose guard contains substr, or nil.
func FindGroup(entries []Entry, substr string) *Group {
	for _, e := range entries {
		if e.Group != nil && strings.Contains(e.Group.Guard.Text, substr) {
			return e.Group
		}
	}

	return nil
}

// FindInput returns the first descriptor, searching groups depth-first, whose
// name equals name or whose name joined with its nameappend property by an
// underscore equals name.
func FindInput(entries []Entry, name string) *lang.Input {
	for in := range Inputs(entries) {
		if in.Name() == name {
			return in
		}

		if suffix, ok := in.Props[lang.PropNameAppend]; ok &&
			in.Name()+"_"+suffix == name {
			return in
		}
	}

	return nil
}

// Lookup resolves a possibly nested property path. The outer element of a
// nested path selects a group by guard substring and the inner element names
// a descriptor within it. The group is nil for top-level matches.
func Lookup(entries []Entry, property string) (*lang.Input, *Group) {
	var group *Group

	if parts := SplitNested(property); parts != nil {
		if group = FindGroup(entries, parts[0]); group != nil {
			entries = group.Entries
			property = parts[1]
		}
	}

	return FindInput(entries, property), group
}

// Names returns the name of every descriptor in entries, with the
// nameappend variant when present.
func Names(entries []Entry) []string {
	var names []string

	for in := range Inputs(entries) {
		names = append(names, in.Name())

		if suffix, ok := in.Props[lang.PropNameAppend]; ok {
			names = append(names, in.Name()+"_"+suffix)
		}
	}

	return names
}

// Suggest returns up to limit descriptor names that fuzzily match name, best
// match first.
func Suggest(entries []Entry, name string, limit int) []string {
	matches := fuzzy.Find(name, Names(entries))

	out := make([]string, 0, min(limit, len(matches)))

	for _, m := range matches {
		if len(out) == limit {
			break
		}

		out = append(out, m.Str)
	}

	return out
}
