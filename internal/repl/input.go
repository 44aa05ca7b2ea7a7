package repl

import (
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"
)

// ErrInterrupt is returned by a LineReader when the user aborts input, e.g. with Ctrl+C
var ErrInterrupt = errors.New("interrupted")

// LineReader reads one line of user input at a time. It returns io.EOF when input is exhausted
type LineReader interface {
	ReadLine() (string, error)
}

// ReadlineInput reads lines from the terminal with line editing and in-memory history
type ReadlineInput struct {
	rl *readline.Instance
}

// NewReadlineInput creates a terminal line reader showing prompt before each line
func NewReadlineInput(prompt string) (*ReadlineInput, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal input: %w", err)
	}
	return &ReadlineInput{rl: rl}, nil
}

func (ri *ReadlineInput) ReadLine() (string, error) {
	line, err := ri.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupt
	}
	if err != nil {
		return "", err
	}
	return line, nil
}

// ReadPassword reads a line without echoing it
func (ri *ReadlineInput) ReadPassword(prompt string) (string, error) {
	b, err := ri.rl.ReadPassword(prompt)
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupt
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Close releases the terminal. A ReadLine blocked in another goroutine returns with an error
func (ri *ReadlineInput) Close() error {
	return ri.rl.Close()
}

var _ LineReader = (*ReadlineInput)(nil)
var _ io.Closer = (*ReadlineInput)(nil)
