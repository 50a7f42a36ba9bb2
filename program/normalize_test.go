package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoolean(t *testing.T) {
	tests := []struct {
		answer  string
		current string
		want    string
	}{
		{"Y", "n", "y"},
		{"yes", "n", "y"},
		{"", "n", "n"},
		{"  No ", "y", "n"},
		{"maybe", "y", "y"},
		{"   ", "n", "n"},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			assert.Equal(t, tt.want, Boolean(tt.answer, tt.current))
		})
	}
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "fallback", Default("", "fallback"))
	assert.Equal(t, "value", Default("  value \t", "fallback"))
}

func TestFindChoice(t *testing.T) {
	values := []string{"a", "b", "c"}

	tests := []struct {
		answer string
		want   string
	}{
		{"1", "a"},
		{" 3 ", "c"},
		{"0", ""},
		{"4", ""},
		{"-1", ""},
		{"two", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			assert.Equal(t, tt.want, FindChoice(tt.answer, values))
		})
	}
}

func TestFindChoices(t *testing.T) {
	values := []string{"a", "b", "c"}

	assert.Equal(t, []string{"c", "a"}, FindChoices("3 1", values))
	assert.Equal(t, []string{"b"}, FindChoices("x 2 9", values))
	assert.Empty(t, FindChoices("", values))
}
