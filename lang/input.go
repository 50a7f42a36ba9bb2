package lang

import (
	"log/slog"
	"math"
	"strconv"
)

// InputType identifies the variant of an input descriptor.
type InputType int

const (
	InputBoolean InputType = iota
	InputEdit
	InputChoiceList
	InputChoice
	InputCheckList
	InputCheck
)

var inputTypeName = [...]string{
	InputBoolean:    "boolean",
	InputEdit:       "edit",
	InputChoiceList: "choicelist",
	InputChoice:     "choice",
	InputCheckList:  "checklist",
	InputCheck:      "check",
}

// String returns the name used for t in the type property.
func (t InputType) String() string {
	if t < 0 || int(t) >= len(inputTypeName) {
		return "unknown"
	}

	return inputTypeName[t]
}

// ParseInputType returns the InputType named s.
func ParseInputType(s string) (InputType, bool) {
	for i, name := range inputTypeName {
		if name == s {
			return InputType(i), true
		}
	}

	return 0, false
}

// Property keys recognized in input tags.
const (
	PropType         = "type"
	PropName         = "name"
	PropMsg          = "msg"
	PropDefault      = "default"
	PropPrio         = "prio"
	PropDependsOn    = "depends-on"
	PropDependsOnVal = "depends-on-val"
	PropGen          = "gen"
	PropVal          = "val"
	PropNameAppend   = "nameappend"
	PropFilename     = "filename"
)

// NoPrio is the priority of descriptors without a prio property.
const NoPrio = math.MaxInt

// Input is a prompt descriptor declared by an input tag.
type Input struct {
	Type  InputType
	Props map[string]string

	// File and Line locate the declaring tag.
	File string
	Line int

	// Prio is the parsed prio property, or [NoPrio].
	Prio int

	// Items holds the choice or check descriptors attached to a list, in
	// declaration order.
	Items []*Input
}

// NewInput validates props and returns the descriptor they describe. The
// position is attached to any error.
func NewInput(props map[string]string, file string, line int) (*Input, error) {
	pos := func(e *Error) *Error {
		return e.WithPosition(file, line)
	}

	name, ok := props[PropType]
	if !ok || name == "" {
		return nil, pos(ErrMissingProperty.With(slog.String("property", PropType)))
	}

	typ, ok := ParseInputType(name)
	if !ok {
		return nil, pos(ErrInputType.With(slog.String("type", name)))
	}

	in := &Input{Type: typ, Props: props, File: file, Line: line, Prio: NoPrio}

	required := []string{PropName, PropMsg}
	if in.IsItem() {
		required = []string{PropVal, PropMsg}
	}

	for _, key := range required {
		if props[key] == "" {
			return nil, pos(ErrMissingProperty.With(
				slog.String("property", key),
				slog.String("type", name),
			))
		}
	}

	if _, ok := props[PropDependsOn]; ok {
		if _, ok := props[PropDependsOnVal]; !ok {
			return nil, pos(ErrDependsOnVal.With(slog.String("name", in.Name())))
		}
	}

	if s, ok := props[PropPrio]; ok {
		p, err := strconv.Atoi(s)
		if err != nil {
			return nil, pos(ErrPrio.With(slog.String("prio", s)).Wrap(err))
		}

		in.Prio = p
	}

	return in, nil
}

// Name returns the variable bound by the descriptor.
func (in *Input) Name() string { return in.Props[PropName] }

// Msg returns the prompt message, or an item's description.
func (in *Input) Msg() string { return in.Props[PropMsg] }

// Default returns the declared default value, or "".
func (in *Input) Default() string { return in.Props[PropDefault] }

// Val returns an item's value.
func (in *Input) Val() string { return in.Props[PropVal] }

// Gen returns the name of the options provider, or "".
func (in *Input) Gen() string { return in.Props[PropGen] }

// NameAppend returns the suffix distinguishing repeated names, or "".
func (in *Input) NameAppend() string { return in.Props[PropNameAppend] }

// DependsOn returns the variable guarding the descriptor and the value it
// must equal. ok is false when the descriptor is unconditional.
func (in *Input) DependsOn() (name, val string, ok bool) {
	name, ok = in.Props[PropDependsOn]

	return name, in.Props[PropDependsOnVal], ok
}

// IsList reports whether in is a choicelist or checklist.
func (in *Input) IsList() bool {
	return in.Type == InputChoiceList || in.Type == InputCheckList
}

// IsItem reports whether in is a choice or check.
func (in *Input) IsItem() bool {
	return in.Type == InputChoice || in.Type == InputCheck
}

// ItemType returns the item variant accepted by a list.
func (in *Input) ItemType() InputType {
	if in.Type == InputCheckList {
		return InputCheck
	}

	return InputChoice
}

// Label returns the prompt message followed by its default.
func (in *Input) Label() string {
	return in.Msg() + " [default: " + in.Default() + "]"
}

// Attach appends item to the list in.
func (in *Input) Attach(item *Input) error {
	if !in.IsList() || item.Type != in.ItemType() {
		return ErrItemMismatch.WithPosition(item.File, item.Line).With(
			slog.String("item", item.Type.String()),
			slog.String("list", in.Type.String()),
		)
	}

	in.Items = append(in.Items, item)

	return nil
}

// Properties returns a copy of the descriptor's properties without its name.
func (in *Input) Properties() map[string]string {
	m := make(map[string]string, len(in.Props))

	for k, v := range in.Props {
		if k != PropName {
			m[k] = v
		}
	}

	return m
}
