package program

import (
	"strconv"
	"strings"
)

// Boolean normalizes the answer to a boolean prompt: the lowercase first
// character when it is y or n, otherwise current.
func Boolean(answer, current string) string {
	s := strings.ToLower(strings.TrimSpace(answer))
	if s != "" && (s[0] == 'y' || s[0] == 'n') {
		return s[:1]
	}

	return current
}

// Default returns the trimmed answer, or fallback when answer is empty.
func Default(answer, fallback string) string {
	if answer == "" {
		return fallback
	}

	return strings.TrimSpace(answer)
}

// FindChoice returns the value at the 1-based position given by answer, or
// the empty string when answer is not a number in range.
func FindChoice(answer string, values []string) string {
	i, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || i < 1 || i > len(values) {
		return ""
	}

	return values[i-1]
}

// FindChoices applies [FindChoice] to each whitespace-separated selection
// in answer. A selection that is non-numeric or out of range selects
// nothing and leaves no empty value in the result, so an answer made only
// of such selections yields an empty slice and the caller falls back to the
// declared default.
func FindChoices(answer string, values []string) []string {
	var found []string

	for _, field := range strings.Fields(answer) {
		if v := FindChoice(field, values); v != "" {
			found = append(found, v)
		}
	}

	return found
}
