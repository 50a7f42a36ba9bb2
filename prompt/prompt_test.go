package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	var out bytes.Buffer

	p := NewLine(strings.NewReader("yes\r\n\nlast"), &out)

	for _, want := range []string{"yes", "", "last", "", ""} {
		got, err := p.Prompt(t.Context(), "q? ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.Equal(t, strings.Repeat("q? ", 5), out.String())
}

func TestLine_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewLine(strings.NewReader("x\n"), &bytes.Buffer{}).Prompt(ctx, "q? ")
	require.ErrorIs(t, err, context.Canceled)
}

func TestFixed(t *testing.T) {
	p := &Fixed{Answers: []string{"a"}}

	got, _ := p.Prompt(t.Context(), "one")
	assert.Equal(t, "a", got)

	got, _ = p.Prompt(t.Context(), "two")
	assert.Empty(t, got)
	assert.Equal(t, []string{"one", "two"}, p.Messages)
}

func TestModel(t *testing.T) {
	m := newModel("Pick one [default: 1]\n\t1) a\n\t2) b\n")
	assert.Len(t, m.header, 3)
	assert.Equal(t, inputPrompt, m.input.Prompt)

	var next tea.Model = m
	for _, r := range "2" {
		next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	final := next.(model)
	assert.True(t, final.done)
	assert.False(t, final.aborted)
	assert.Equal(t, "2", final.input.Value())
	assert.Contains(t, final.View(), "2) b")

	next, _ = newModel("Name [default: x] ").Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, next.(model).aborted)
}

func TestRenderMessage(t *testing.T) {
	assert.Contains(t, renderMessage("Enable? [default: n] "), "Enable?")
	assert.Contains(t, renderMessage("Enable? [default: n] "), "[default: n]")
	assert.Contains(t, renderMessage("plain"), "plain")
}
