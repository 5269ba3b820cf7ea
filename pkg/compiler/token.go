package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENTIFIER // variable name
	INTEGER    // integer literal in any radix
	FLOAT      // literal with a fractional part
	STRING     // string literal "..."

	// Keywords
	DIM      // "dim"
	AS       // "as" / "ass"
	IF       // "if"
	THEN     // "then"
	ELSE     // "else"
	ENDIF    // "endif"
	FOR      // "for"
	TO       // "to"
	DO       // "do"
	ENDFOR   // "endfor"
	WHILE    // "while"
	ENDWHILE // "endwhile"
	READ     // "read"
	WRITE    // "write"
	END      // "end"
	TRUE     // "true"
	FALSE    // "false"
	AND      // "and"
	OR       // "or"
	NOT      // "not"

	// Type names
	TYPE_INT    // %
	TYPE_FLOAT  // !
	TYPE_STRING // @
	TYPE_BOOL   // $

	// Punctuation
	LPAREN    // (
	RPAREN    // )
	COMMA     // ,
	SEMICOLON // ;

	// Arithmetic operators
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /
	CARET // ^

	// Relational operators
	EQ         // =
	NOT_EQ     // <>
	LESS       // <
	LESS_EQ    // <=
	GREATER    // >
	GREATER_EQ // >=
)

// tokenNames is indexed by TokenType and used in parse errors, so the
// entries read the way the token appears in source.
var tokenNames = [...]string{
	EOF:         "end of input",
	IDENTIFIER:  "identifier",
	INTEGER:     "integer literal",
	FLOAT:       "float literal",
	STRING:      "string literal",
	DIM:         "'dim'",
	AS:          "'as'",
	IF:          "'if'",
	THEN:        "'then'",
	ELSE:        "'else'",
	ENDIF:       "'endif'",
	FOR:         "'for'",
	TO:          "'to'",
	DO:          "'do'",
	ENDFOR:      "'endfor'",
	WHILE:       "'while'",
	ENDWHILE:    "'endwhile'",
	READ:        "'read'",
	WRITE:       "'write'",
	END:         "'end'",
	TRUE:        "'true'",
	FALSE:       "'false'",
	AND:         "'and'",
	OR:          "'or'",
	NOT:         "'not'",
	TYPE_INT:    "'%'",
	TYPE_FLOAT:  "'!'",
	TYPE_STRING: "'@'",
	TYPE_BOOL:   "'$'",
	LPAREN:      "'('",
	RPAREN:      "')'",
	COMMA:       "','",
	SEMICOLON:   "';'",
	PLUS:        "'+'",
	MINUS:       "'-'",
	STAR:        "'*'",
	SLASH:       "'/'",
	CARET:       "'^'",
	EQ:          "'='",
	NOT_EQ:      "'<>'",
	LESS:        "'<'",
	LESS_EQ:     "'<='",
	GREATER:     "'>'",
	GREATER_EQ:  "'>='",
}

func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a single lexical unit. Value carries the decoded literal for
// INTEGER (int64), FLOAT (float64), STRING (string without quotes) and
// TRUE/FALSE (bool); it is nil for every other kind.
type Token struct {
	Type   TokenType
	Lexeme string
	Value  any
	Pos    Pos
}

func (t Token) String() string {
	if t.Value != nil && t.Type != TRUE && t.Type != FALSE {
		return fmt.Sprintf("%s %s %q = %v", t.Pos, t.Type, t.Lexeme, t.Value)
	}
	return fmt.Sprintf("%s %s %q", t.Pos, t.Type, t.Lexeme)
}
