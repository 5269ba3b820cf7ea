package interp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Terminal is the interpreter's only channel to the outside world.
// Read returns io.EOF when no more input is available.
type Terminal interface {
	Open() error
	Close() error
	Write(text string) error
	Read() (string, error)
}

// StreamTerminal reads lines from an io.Reader and writes each value on its
// own line to an io.Writer.
type StreamTerminal struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewStreamTerminal(in io.Reader, out io.Writer) *StreamTerminal {
	return &StreamTerminal{in: bufio.NewScanner(in), out: out}
}

func (t *StreamTerminal) Open() error  { return nil }
func (t *StreamTerminal) Close() error { return nil }

func (t *StreamTerminal) Write(text string) error {
	_, err := fmt.Fprintln(t.out, text)
	return err
}

func (t *StreamTerminal) Read() (string, error) {
	if t.in.Scan() {
		return strings.TrimSuffix(t.in.Text(), "\r"), nil
	}
	if err := t.in.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// BufferTerminal serves queued input lines and records every write.
// It is used by tests and by hosts that collect output themselves.
type BufferTerminal struct {
	Input  []string
	Output []string
	Opened bool
	Closed bool
}

func NewBufferTerminal(input ...string) *BufferTerminal {
	return &BufferTerminal{Input: input}
}

func (t *BufferTerminal) Open() error {
	if t.Opened {
		return errors.New("terminal already open")
	}
	t.Opened = true
	return nil
}

func (t *BufferTerminal) Close() error {
	t.Closed = true
	return nil
}

func (t *BufferTerminal) Write(text string) error {
	t.Output = append(t.Output, text)
	return nil
}

func (t *BufferTerminal) Read() (string, error) {
	if len(t.Input) == 0 {
		return "", io.EOF
	}
	line := t.Input[0]
	t.Input = t.Input[1:]
	return line, nil
}
