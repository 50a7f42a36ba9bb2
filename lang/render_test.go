package lang

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupMap(m map[string]string) Lookup {
	return func(name string) (string, bool) {
		v, ok := m[name]

		return v, ok
	}
}

func TestRender(t *testing.T) {
	vals := map[string]string{
		"machine": "mymachine",
		"a":       "{{=b}}",
		"b":       "never",
		"long":    strings.Repeat("x", 40),
	}

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"literal", "plain text", "plain text"},
		{"single", "conf/{{=machine}}.conf", "conf/mymachine.conf"},
		{"adjacent", "{{=machine}}{{=machine}}", "mymachinemymachine"},
		{"value containing a tag is not rescanned", "{{=a}} {{=b}}", "{{=b}} never"},
		{"growing value keeps later offsets", "{{=long}}|{{=machine}}|", strings.Repeat("x", 40) + "|mymachine|"},
		{"padded name", "[{{= machine }}]", "[mymachine]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := NewParser("f").Line(t.Context(), tt.raw, 1)
			require.NoError(t, err)

			got, err := line.Render(lookupMap(vals))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_Undefined(t *testing.T) {
	line, err := NewParser("f").Line(t.Context(), "{{=machine}} {{=missing}}", 1)
	require.NoError(t, err)

	_, err = line.Render(lookupMap(map[string]string{"machine": "m"}))
	require.ErrorIs(t, err, ErrUndefined)
	assert.Equal(t, []string{"machine", "missing"}, line.Names())
}

func TestError(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message", NewError("bad"), "bad"},
		{"wrapped", NewError("bad").Wrap(cause), "bad: boom"},
		{"cause only", WrapError(cause), "boom"},
		{"position", NewError("bad").WithPosition("a/b.conf", 4), "a/b.conf:4: bad"},
		{"file only", NewError("bad").WithPosition("a/b", 0), "a/b: bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	derived := ErrPrio.With(slog.String("prio", "x")).WithPosition("f", 1).Wrap(cause)
	assert.ErrorIs(t, derived, ErrPrio)
	assert.ErrorIs(t, derived, cause)
	assert.NotErrorIs(t, derived, ErrPathTag)
	assert.Empty(t, ErrPrio.attrs, "sentinel must not be mutated")

	group := derived.LogValue().Group()
	keys := make([]string, len(group))

	for i, a := range group {
		keys[i] = a.Key
	}

	assert.Equal(t, []string{"error", "cause", "file", "line", "prio"}, keys)
}
