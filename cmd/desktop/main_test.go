package main

import (
	"errors"
	"io"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gotranslator/pkg/compiler"
	"gotranslator/pkg/interp"
)

func TestScreenTerminalRunsProgram(t *testing.T) {
	_, program, err := compiler.Compile("dim n %; read(n); write(n * 2); end")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	term := newScreenTerminal()
	vm := interp.NewMachine(term)
	if err := vm.Load(program); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- vm.Run() }()

	deadline := time.Now().Add(2 * time.Second)
	for !term.Waiting() {
		if time.Now().After(deadline) {
			t.Fatal("interpreter never asked for input")
		}
		time.Sleep(time.Millisecond)
	}

	term.Type([]rune("21"))
	term.Submit()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected run error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("interpreter did not finish")
	}

	lines, _, _ := term.View(cols, rows)
	want := []string{"> 21", "42", "> "}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("expected screen %q, got %q", want, lines)
	}
}

func TestScreenTerminalShutdownEndsInput(t *testing.T) {
	_, program, err := compiler.Compile("dim s @; read(s); end")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	term := newScreenTerminal()
	vm := interp.NewMachine(term)
	if err := vm.Load(program); err != nil {
		t.Fatal(err)
	}

	term.Shutdown()
	if err := vm.Run(); !errors.Is(err, interp.ErrEndOfInput) {
		t.Errorf("expected end of input, got %v", err)
	}
	if _, err := term.Read(); err != io.EOF {
		t.Errorf("expected io.EOF after shutdown, got %v", err)
	}
}

func TestScreenTerminalEditing(t *testing.T) {
	term := newScreenTerminal()
	term.Type([]rune("abc"))
	term.Backspace()
	term.Type([]rune("d"))
	term.Submit()

	line, err := term.Read()
	if err != nil {
		t.Fatal(err)
	}
	if line != "abd" {
		t.Errorf("expected %q, got %q", "abd", line)
	}

	term.Backspace()
	lines, cx, cy := term.View(cols, rows)
	if !reflect.DeepEqual(lines, []string{"> abd", "> "}) {
		t.Errorf("unexpected screen %q", lines)
	}
	if cx != 2 || cy != 1 {
		t.Errorf("expected cursor (2, 1), got (%d, %d)", cx, cy)
	}
}

func TestScreenTerminalWrapsAndScrolls(t *testing.T) {
	term := newScreenTerminal()
	term.Write("abcdefgh")
	term.Write("one\ntwo")

	lines, cx, cy := term.View(4, 4)
	want := []string{"efgh", "one", "two", "> "}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("expected %q, got %q", want, lines)
	}
	if cx != 2 || cy != 3 {
		t.Errorf("expected cursor (2, 3), got (%d, %d)", cx, cy)
	}

	term.Type([]rune("xy"))
	lines, cx, cy = term.View(4, 3)
	want = []string{"two", "> xy", ""}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("expected %q, got %q", want, lines)
	}
	if cx != 0 || cy != 2 {
		t.Errorf("expected cursor (0, 2), got (%d, %d)", cx, cy)
	}
}

func TestWindowTitle(t *testing.T) {
	full := filepath.Join("home", "demo", "prog.as")
	got := windowTitle(full, filepath.Dir(full))
	want := "gotranslator: " + filepath.Join("demo", "prog.as")
	if got != want {
		t.Errorf("expected title %q, got %q", want, got)
	}
}
