package prompt

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/ardnew/bspgen/lang"
)

// ErrAborted is returned when the operator cancels a prompt.
var ErrAborted = lang.NewError("prompt aborted")

// Prompter obtains one line of input from the operator. The message is
// displayed verbatim and may span several lines; the returned answer has
// no line terminator.
type Prompter interface {
	Prompt(ctx context.Context, msg string) (string, error)
}

// Line is a [Prompter] that writes messages to an [io.Writer] and reads
// answers line by line from an [io.Reader]. End of input yields empty
// answers, so every remaining prompt takes its default.
type Line struct {
	r *bufio.Reader
	w io.Writer
}

// NewLine returns a Line prompter.
func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{r: bufio.NewReader(r), w: w}
}

// Prompt writes msg and reads one line.
func (p *Line) Prompt(ctx context.Context, msg string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := io.WriteString(p.w, msg); err != nil {
		return "", err
	}

	answer, err := p.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimRight(answer, "\r\n"), nil
}

// Fixed is a [Prompter] that returns canned answers in order, then empty
// answers. It records every message it is given.
type Fixed struct {
	Answers  []string
	Messages []string
}

// Prompt returns the next canned answer.
func (p *Fixed) Prompt(_ context.Context, msg string) (string, error) {
	p.Messages = append(p.Messages, msg)

	if len(p.Answers) == 0 {
		return "", nil
	}

	answer := p.Answers[0]
	p.Answers = p.Answers[1:]

	return answer, nil
}
