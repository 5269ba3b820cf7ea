package interp

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"gotranslator/pkg/ir"
)

func TestHibernateResumesAfterEndOfInput(t *testing.T) {
	program, err := ir.Parse("Input(n)\nn = Integer(n)\nInput(m)\nm = Integer(m)\nOutput(n + m)\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	first := NewBufferTerminal("40")
	m := NewMachine(first)
	if err := m.Load(program); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.Run(); !errors.Is(err, ErrEndOfInput) {
		t.Fatalf("expected ErrEndOfInput, got %v", err)
	}
	if m.PC != 2 {
		t.Fatalf("expected PC to stay on the failing Input (2), got %d", m.PC)
	}

	path := filepath.Join(t.TempDir(), "state.zip")
	if err := m.HibernateToFile(path); err != nil {
		t.Fatalf("HibernateToFile: %v", err)
	}

	second := NewBufferTerminal("2")
	resumed := NewMachine(second)
	if err := resumed.RestoreFromFile(path); err != nil {
		t.Fatalf("RestoreFromFile: %v", err)
	}
	if got := resumed.Vars["n"]; got != IntValue(40) {
		t.Errorf("restored n: expected 40, got %#v", got)
	}
	if err := resumed.Run(); err != nil {
		t.Fatalf("resumed Run: %v", err)
	}
	if !reflect.DeepEqual(second.Output, []string{"42"}) {
		t.Errorf("resumed output: expected [42], got %q", second.Output)
	}
}

func TestHibernateRoundTripsAllTypes(t *testing.T) {
	program, _ := ir.Parse("a = 1\nb = 2.5\nc = \"x y\"\nd = True\n")
	m := NewMachine(NewBufferTerminal())
	_ = m.Load(program)
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := m.HibernateToBytes()
	if err != nil {
		t.Fatalf("HibernateToBytes: %v", err)
	}
	restored := NewMachine(NewBufferTerminal())
	if err := restored.RestoreFromBytes(data); err != nil {
		t.Fatalf("RestoreFromBytes: %v", err)
	}
	if !reflect.DeepEqual(restored.Vars, m.Vars) {
		t.Errorf("vars mismatch:\n got %v\nwant %v", restored.Vars, m.Vars)
	}
	if !restored.Halted {
		t.Error("restored machine should be halted at end of program")
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	if err := NewMachine(NewBufferTerminal()).RestoreFromBytes([]byte("not a zip")); err == nil {
		t.Error("expected error for non-zip data")
	}
}
