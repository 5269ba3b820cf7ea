package compiler

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// keywords maps source text to its keyword TokenType. Lookup is exact, so
// keywords are case-sensitive.
var keywords = map[string]TokenType{
	"dim":      DIM,
	"as":       AS,
	"ass":      AS,
	"if":       IF,
	"then":     THEN,
	"else":     ELSE,
	"endif":    ENDIF,
	"for":      FOR,
	"to":       TO,
	"do":       DO,
	"endfor":   ENDFOR,
	"while":    WHILE,
	"endwhile": ENDWHILE,
	"read":     READ,
	"write":    WRITE,
	"end":      END,
	"true":     TRUE,
	"false":    FALSE,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
}

// twoCharSymbols is consulted before singleCharSymbols (maximal munch).
var twoCharSymbols = map[string]TokenType{
	"<>": NOT_EQ,
	"<=": LESS_EQ,
	">=": GREATER_EQ,
}

var singleCharSymbols = map[rune]TokenType{
	'=': EQ,
	'<': LESS,
	'>': GREATER,
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'^': CARET,
	'(': LPAREN,
	')': RPAREN,
	',': COMMA,
	';': SEMICOLON,
	'%': TYPE_INT,
	'!': TYPE_FLOAT,
	'@': TYPE_STRING,
	'$': TYPE_BOOL,
}

// numberFormats are tried in order against a numeric lexeme. Only the
// decimal postfix is optional.
var numberFormats = []struct {
	radix    int
	postfix  string
	optional bool
}{
	{2, "b", false},
	{8, "o", false},
	{10, "d", true},
	{16, "h", false},
}

// Lexer turns source text into tokens one at a time.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // current 1-based source line
	col  int // current 1-based column
}

// NewLexer returns a Lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0, line: 1, col: 1}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) here() Pos { return Pos{Line: l.line, Col: l.col} }

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// skipLineComment discards everything from the current position to end-of-line.
// The opening "//" must already have been consumed.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

// skipBlockComment discards everything up to and including the closing "*/".
// The opening "/*" must already have been consumed.
func (l *Lexer) skipBlockComment(start Pos) error {
	for l.pos < len(l.src) {
		if l.peek() == '*' && l.peek2() == '/' {
			l.advance() // *
			l.advance() // /
			return nil
		}
		l.advance()
	}
	return &LexError{Pos: start, Msg: "unterminated block comment"}
}

// scanIdent collects a full identifier or keyword token.
// The first letter must still be at l.peek().
func (l *Lexer) scanIdent() Token {
	pos := l.here()
	start := l.pos
	for l.pos < len(l.src) {
		r := l.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	tok := Token{Type: IDENTIFIER, Lexeme: lexeme, Pos: pos}
	if kw, ok := keywords[lexeme]; ok {
		tok.Type = kw
		switch kw {
		case TRUE:
			tok.Value = true
		case FALSE:
			tok.Value = false
		}
	}
	return tok
}

// scanNumber collects a digit-led lexeme made of hex digits, radix
// postfixes and dots, then decodes it.
//
//	1010b  -> 10     17o -> 15     42 / 42d -> 42
//	1Ah    -> 26     3.5 -> 3.5    1.1b     -> 1.5
func (l *Lexer) scanNumber() (Token, error) {
	pos := l.here()
	start := l.pos
	for l.pos < len(l.src) && isNumberRune(l.peek()) {
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])

	val, ok := decodeNumber(lexeme)
	if !ok {
		return Token{}, &LexError{Pos: pos, Msg: fmt.Sprintf("malformed number literal %q", lexeme)}
	}
	tok := Token{Type: INTEGER, Lexeme: lexeme, Value: val, Pos: pos}
	if _, isFloat := val.(float64); isFloat {
		tok.Type = FLOAT
	}
	return tok, nil
}

func isNumberRune(r rune) bool {
	switch unicode.ToLower(r) {
	case '.', 'o', 'h':
		return true
	}
	return isDigitIn(r, 16)
}

// decodeNumber returns an int64 or a float64.
func decodeNumber(lexeme string) (any, bool) {
	lower := strings.ToLower(lexeme)
	for _, f := range numberFormats {
		body, found := strings.CutSuffix(lower, f.postfix)
		if !found && !f.optional {
			continue
		}
		if body == "" {
			continue
		}
		if n, err := strconv.ParseInt(body, f.radix, 64); err == nil {
			return n, true
		}
		if v, ok := parseRadixFloat(body, f.radix); ok {
			return v, true
		}
	}
	return nil, false
}

// parseRadixFloat decodes "int.frac" where every digit belongs to radix.
// The fraction is the sum of digit * radix^-position.
func parseRadixFloat(body string, radix int) (float64, bool) {
	whole, frac, found := strings.Cut(body, ".")
	if !found || whole == "" || frac == "" {
		return 0, false
	}
	for _, r := range whole + frac {
		if !isDigitIn(r, radix) {
			return 0, false
		}
	}
	if radix == 10 {
		v, err := strconv.ParseFloat(body, 64)
		return v, err == nil
	}

	var v float64
	for _, r := range whole {
		v = v*float64(radix) + float64(digitValue(r))
	}
	for i, r := range frac {
		v += float64(digitValue(r)) * math.Pow(float64(radix), -float64(i+1))
	}
	return v, true
}

func digitValue(r rune) int {
	r = unicode.ToLower(r)
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	if r >= 'a' && r <= 'z' {
		return int(r-'a') + 10
	}
	return 99
}

func isDigitIn(r rune, radix int) bool {
	if r > unicode.MaxASCII {
		return false
	}
	return digitValue(r) < radix
}

// scanString collects a string literal "...". The content is taken verbatim;
// there are no escape sequences.
func (l *Lexer) scanString() (Token, error) {
	pos := l.here()
	start := l.pos
	l.advance() // consume opening "

	for l.pos < len(l.src) {
		r := l.peek()
		if r == '"' {
			break
		}
		if r == '\n' {
			return Token{}, &LexError{Pos: pos, Msg: "unterminated string literal"}
		}
		l.advance()
	}

	if l.pos >= len(l.src) {
		return Token{}, &LexError{Pos: pos, Msg: "unterminated string literal"}
	}
	l.advance() // consume closing "

	lexeme := string(l.src[start:l.pos])
	return Token{Type: STRING, Lexeme: lexeme, Value: lexeme[1 : len(lexeme)-1], Pos: pos}, nil
}

// Scan skips whitespace and comments and returns the next Token. At end of
// input it returns an EOF token, and keeps doing so on every later call.
func (l *Lexer) Scan() (Token, error) {
	// Skip whitespace and both comment styles in a loop so that
	// a comment followed immediately by more whitespace is handled.
	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			return Token{Type: EOF, Lexeme: "", Pos: l.here()}, nil
		}
		if l.peek() == '/' && l.peek2() == '/' {
			l.advance()
			l.advance()
			l.skipLineComment()
			continue
		}
		if l.peek() == '/' && l.peek2() == '*' {
			start := l.here()
			l.advance()
			l.advance()
			if err := l.skipBlockComment(start); err != nil {
				return Token{}, err
			}
			continue
		}
		break
	}

	ch := l.peek()
	pos := l.here()

	if unicode.IsLetter(ch) {
		return l.scanIdent(), nil
	}
	if ch >= '0' && ch <= '9' {
		return l.scanNumber()
	}
	if ch == '"' {
		return l.scanString()
	}

	if tt, ok := twoCharSymbols[string([]rune{ch, l.peek2()})]; ok {
		l.advance()
		l.advance()
		return Token{Type: tt, Lexeme: string([]rune{ch, l.src[l.pos-1]}), Pos: pos}, nil
	}
	if tt, ok := singleCharSymbols[ch]; ok {
		l.advance()
		return Token{Type: tt, Lexeme: string(ch), Pos: pos}, nil
	}

	return Token{}, &LexError{Pos: pos, Msg: fmt.Sprintf("unexpected character %q", ch)}
}

// Lex tokenises src and returns all tokens including the final EOF token.
// It returns a non-nil error on the first illegal character, malformed
// literal or unterminated comment or string.
func Lex(src string) ([]Token, error) {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok, err := l.Scan()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}
