package compiler

import "fmt"

// Pos is a 1-based source position.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("line %d, col %d", p.Line, p.Col) }

// Position lets every AST node that embeds Pos satisfy Node.
func (p Pos) Position() Pos { return p }

// LexError is an illegal character, malformed literal or unterminated
// comment or string.
type LexError struct {
	Pos Pos
	Msg string
}

func (e *LexError) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

// ParseError is a grammar violation. Snippet holds the offending source
// line when it is available.
type ParseError struct {
	Pos     Pos
	Msg     string
	Snippet string
}

func (e *ParseError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: %s\n  |> %s", e.Pos, e.Msg, e.Snippet)
}

// CodeGenError is a semantic error found while lowering the AST: an
// undeclared or redeclared variable, an operator applied to the wrong
// types, an impossible assignment or a non-Bool condition.
type CodeGenError struct {
	Pos Pos
	Msg string
}

func (e *CodeGenError) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

func codeGenErrorf(pos Pos, format string, args ...any) error {
	return &CodeGenError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
