package compiler

import (
	"strings"
	"testing"

	"gotranslator/pkg/ir"
)

func TestSymbolTable(t *testing.T) {
	t.Run("DefineAndLookup", func(t *testing.T) {
		s := NewSymbolTable()
		if err := s.Define("x", Symbol{IRName: "x", Type: ir.Integer}); err != nil {
			t.Fatalf("Define: %v", err)
		}
		sym, ok := s.Lookup("x")
		if !ok {
			t.Fatal("x not found")
		}
		if sym.Type != ir.Integer || sym.IRName != "x" {
			t.Errorf("x: expected Integer x, got %s %s", sym.Type, sym.IRName)
		}
		if _, ok := s.Lookup("y"); ok {
			t.Error("y should not be found")
		}
	})

	t.Run("DuplicateInSameScope", func(t *testing.T) {
		s := NewSymbolTable()
		_ = s.Define("x", Symbol{IRName: "x", Type: ir.Integer})
		if err := s.Define("x", Symbol{IRName: "x", Type: ir.Float}); err == nil {
			t.Error("expected error redefining x in the same scope")
		}
	})

	t.Run("NestedScopes", func(t *testing.T) {
		s := NewSymbolTable()
		_ = s.Define("x", Symbol{IRName: "x", Type: ir.Integer})

		s.EnterScope()
		if s.DeclaredInCurrent("x") {
			t.Error("x should not be declared in the inner scope yet")
		}
		if err := s.Define("x", Symbol{IRName: "#t0", Type: ir.String}); err != nil {
			t.Fatalf("shadowing Define: %v", err)
		}
		sym, _ := s.Lookup("x")
		if sym.IRName != "#t0" || sym.Type != ir.String {
			t.Errorf("inner x: expected String #t0, got %s %s", sym.Type, sym.IRName)
		}
		s.ExitScope()

		sym, _ = s.Lookup("x")
		if sym.IRName != "x" || sym.Type != ir.Integer {
			t.Errorf("outer x after exit: expected Integer x, got %s %s", sym.Type, sym.IRName)
		}
	})

	t.Run("ProgramScopeIsNeverPopped", func(t *testing.T) {
		s := NewSymbolTable()
		_ = s.Define("g", Symbol{IRName: "g", Type: ir.Bool})
		s.ExitScope()
		if _, ok := s.Lookup("g"); !ok {
			t.Error("g lost after ExitScope on the program scope")
		}
	})

	t.Run("Dump", func(t *testing.T) {
		s := NewSymbolTable()
		_ = s.Define("b", Symbol{IRName: "b", Type: ir.Float})
		_ = s.Define("a", Symbol{IRName: "a", Type: ir.Integer})
		dump := s.String()
		if strings.Index(dump, "a ") > strings.Index(dump, "b ") {
			t.Errorf("dump not sorted:\n%s", dump)
		}
	})
}
