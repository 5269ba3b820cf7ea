package compiler

import (
	"fmt"
	"sort"
	"strings"

	"gotranslator/pkg/ir"
)

// Symbol is a declared source variable. IRName differs from the source
// name when the declaration shadows a variable of an enclosing scope.
type Symbol struct {
	IRName string
	Type   ir.DataType
	Pos    Pos
}

// SymbolTable maps source names to Symbols through a stack of block
// scopes. The bottom scope belongs to the program block and is never
// popped.
type SymbolTable struct {
	scopes []map[string]Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{scopes: []map[string]Symbol{make(map[string]Symbol)}}
}

func (s *SymbolTable) EnterScope() {
	s.scopes = append(s.scopes, make(map[string]Symbol))
}

func (s *SymbolTable) ExitScope() {
	if len(s.scopes) > 1 {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
}

// DeclaredInCurrent reports whether name is already declared in the
// innermost scope.
func (s *SymbolTable) DeclaredInCurrent(name string) bool {
	_, ok := s.scopes[len(s.scopes)-1][name]
	return ok
}

// Define adds name to the innermost scope. It fails if the name is
// already declared there.
func (s *SymbolTable) Define(name string, sym Symbol) error {
	if s.DeclaredInCurrent(name) {
		return fmt.Errorf("variable %q is already declared in this scope", name)
	}
	s.scopes[len(s.scopes)-1][name] = sym
	return nil
}

// Lookup returns the symbol and whether it was found.
func (s *SymbolTable) Lookup(name string) (Symbol, bool) {
	// Search from the innermost scope outwards
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if sym, ok := s.scopes[i][name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// String returns a deterministically ordered dump of the open scopes.
func (s *SymbolTable) String() string {
	var sb strings.Builder
	for i, scope := range s.scopes {
		fmt.Fprintf(&sb, "Scope %d:\n", i)
		if len(scope) == 0 {
			sb.WriteString("  (empty)\n")
			continue
		}
		names := make([]string, 0, len(scope))
		for name := range scope {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sym := scope[name]
			fmt.Fprintf(&sb, "  %-20s  %s as %s\n", name, sym.Type, sym.IRName)
		}
	}
	return sb.String()
}
