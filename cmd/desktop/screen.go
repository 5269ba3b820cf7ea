package main

import (
	"io"
	"strings"
	"sync"

	"gotranslator/pkg/grid"
)

const prompt = "> "

// screenTerminal is the interpreter's terminal inside the window. The
// interpreter goroutine calls Read and Write; the game loop types into the
// pending line and submits it.
type screenTerminal struct {
	mu      sync.Mutex
	ready   *sync.Cond
	lines   []string
	pending []rune
	queued  []string
	waiting bool
	closed  bool
}

func newScreenTerminal() *screenTerminal {
	t := &screenTerminal{}
	t.ready = sync.NewCond(&t.mu)
	return t
}

func (t *screenTerminal) Open() error { return nil }

func (t *screenTerminal) Close() error { return nil }

func (t *screenTerminal) Write(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, strings.Split(text, "\n")...)
	return nil
}

// Read blocks until a line is submitted or the window goes away.
func (t *screenTerminal) Read() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.waiting = true
	defer func() { t.waiting = false }()
	for len(t.queued) == 0 && !t.closed {
		t.ready.Wait()
	}
	if len(t.queued) == 0 {
		return "", io.EOF
	}
	line := t.queued[0]
	t.queued = t.queued[1:]
	return line, nil
}

func (t *screenTerminal) Type(rs []rune) {
	if len(rs) == 0 {
		return
	}
	t.mu.Lock()
	t.pending = append(t.pending, rs...)
	t.mu.Unlock()
}

func (t *screenTerminal) Backspace() {
	t.mu.Lock()
	if n := len(t.pending); n > 0 {
		t.pending = t.pending[:n-1]
	}
	t.mu.Unlock()
}

// Submit echoes the pending line and hands it to the next Read.
func (t *screenTerminal) Submit() {
	t.mu.Lock()
	line := string(t.pending)
	t.pending = t.pending[:0]
	t.lines = append(t.lines, prompt+line)
	t.queued = append(t.queued, line)
	t.mu.Unlock()
	t.ready.Signal()
}

// Shutdown makes every blocked and future Read return io.EOF.
func (t *screenTerminal) Shutdown() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.ready.Broadcast()
}

func (t *screenTerminal) Waiting() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.waiting
}

// View wraps the scrollback plus the input line to cols and returns the last
// rows of it, along with the cursor cell within the returned rows.
func (t *screenTerminal) View(cols, rows int) (out []string, cursorX, cursorY int) {
	t.mu.Lock()
	all := make([]string, 0, len(t.lines)+1)
	all = append(all, t.lines...)
	input := prompt + string(t.pending)
	t.mu.Unlock()

	for _, line := range all {
		out = append(out, wrap(line, cols)...)
	}
	inputRows := wrap(input, cols)
	out = append(out, inputRows...)

	cursorX, cursorY = grid.GetGridCoords(len([]rune(input)), cols)
	cursorY += len(out) - len(inputRows)
	if cursorY >= len(out) {
		out = append(out, "")
	}
	if len(out) > rows {
		drop := len(out) - rows
		out = out[drop:]
		cursorY -= drop
	}
	return out, cursorX, cursorY
}

func wrap(line string, cols int) []string {
	rs := []rune(line)
	n := grid.Rows(len(rs), cols)
	rows := make([]string, n)
	for i := range rows {
		end := min((i+1)*cols, len(rs))
		rows[i] = string(rs[min(i*cols, end):end])
	}
	return rows
}
