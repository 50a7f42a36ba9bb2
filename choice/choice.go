package choice

import (
	"path/filepath"
	"strings"

	"github.com/ardnew/bspgen/lang"
)

// Predefined errors (sentinel values).
var (
	ErrUnknownKey      = lang.NewError("no deferred choice registered")
	ErrUnknownProvider = lang.NewError("unknown options provider")
	ErrProvider        = lang.NewError("options provider failed")
	ErrNoOptions       = lang.NewError("no entries available for input list")
	ErrManifest        = lang.NewError("invalid provider manifest")
)

// Context is the state captured for a list prompt when the generation
// program is assembled and handed to its options provider when the prompt
// is shown.
type Context struct {
	Machine     string `yaml:"machine"`
	Arch        string `yaml:"arch"`
	ScriptsPath string `yaml:"scripts_path"`

	// Filename is the template name the prompt was declared in, without
	// directory tags or extension.
	Filename   string `yaml:"filename"`
	NameAppend string `yaml:"nameappend"`

	// Name is the deferred key, set on resolution.
	Name string `yaml:"name"`
}

// Env returns c as expression variables.
func (c Context) Env() map[string]any {
	return map[string]any{
		"machine":      c.Machine,
		"arch":         c.Arch,
		"scripts_path": c.ScriptsPath,
		"filename":     c.Filename,
		"nameappend":   c.NameAppend,
		"name":         c.Name,
	}
}

// For returns a copy of c describing the list descriptor in.
func (c Context) For(in *lang.Input) Context {
	c.Filename = Filename(in.Props[lang.PropFilename])
	c.NameAppend = in.NameAppend()

	return c
}

// Option is one entry of a list prompt.
type Option struct {
	Value string
	Desc  string
}

// Pair returns o as a [value, description] pair.
func (o Option) Pair() []string {
	return []string{o.Value, o.Desc}
}

// Degenerate returns options whose descriptions equal their values.
func Degenerate(values []string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v, Desc: v}
	}

	return opts
}

// Items returns the options declared by the items attached to in.
func Items(in *lang.Input) []Option {
	opts := make([]Option, len(in.Items))
	for i, item := range in.Items {
		opts[i] = Option{Value: item.Val(), Desc: item.Msg()}
	}

	return opts
}

// Filename reduces a template path to the name used in deferred keys: the
// text following the first close tag, trimmed, without its extension. A
// name made only of dots and an extension, such as ".conf", is kept whole.
func Filename(path string) string {
	if i := strings.Index(path, lang.CloseTag); i >= 0 {
		path = path[i+len(lang.CloseTag):]
	}

	path = strings.TrimSpace(path)

	stem := strings.TrimSuffix(path, filepath.Ext(path))
	if strings.Trim(filepath.Base(stem+"_"), ".") == "_" {
		return path
	}

	return stem
}

// Key returns the deferred key of a list prompt.
func Key(name, filename, nameAppend string) string {
	return name + "_" + filename + "_" + nameAppend
}

// KeyOf returns the deferred key of the list descriptor in.
func KeyOf(in *lang.Input) string {
	return Key(in.Name(), Filename(in.Props[lang.PropFilename]), in.NameAppend())
}
