package compiler

import (
	"fmt"
	"strings"

	"gotranslator/pkg/ir"
)

// Parser pulls tokens from a Lexer one at a time and builds an AST.
//
// Grammar:
//
//	program     = block "end" EOF
//	block       = (description | statement)*
//	description = "dim" identList type ";"
//	type        = "%" | "!" | "@" | "$"
//	statement   = assignment ";" | conditional | fixedLoop | condLoop | input | output
//	assignment  = IDENTIFIER ("as" | "ass") expression
//	conditional = "if" expression "then" block
//	              ("else" "if" expression "then" block)*
//	              ("else" block)? "endif"
//	fixedLoop   = "for" assignment "to" expression "do" block "endfor"
//	condLoop    = "while" expression "do" block "endwhile"
//	input       = "read" "(" identList ")" ";"
//	output      = "write" "(" exprList ")" ";"
//	expression  = operand (relop operand)*        relop = = <> < <= > >=
//	operand     = term (("+" | "-" | "or") term)*
//	term        = factor (("*" | "/" | "and") factor)*
//	factor      = primary ("^" factor)?
//	primary     = IDENTIFIER | INTEGER | FLOAT | STRING | "true" | "false"
//	            | "not" primary | "(" expression ")"
type Parser struct {
	lex         *Lexer
	tok         Token // current lookahead
	sourceLines []string
}

// NewParser returns a Parser reading from lex. rawSource is only used to
// quote the offending line in errors.
func NewParser(lex *Lexer, rawSource string) *Parser {
	return &Parser{lex: lex, sourceLines: strings.Split(rawSource, "\n")}
}

// fmtError builds a ParseError at tok, quoting the source line it appears on.
func (p *Parser) fmtError(tok Token, format string, args ...any) error {
	lineIdx := tok.Pos.Line - 1 // Lines are 1-based

	snippet := ""
	if lineIdx >= 0 && lineIdx < len(p.sourceLines) {
		snippet = strings.TrimSpace(p.sourceLines[lineIdx])
	}
	return &ParseError{Pos: tok.Pos, Msg: fmt.Sprintf(format, args...), Snippet: snippet}
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	return p.tok
}

// advance consumes the current token, pulls the next one from the lexer
// and returns the consumed token.
func (p *Parser) advance() (Token, error) {
	tok := p.tok
	next, err := p.lex.Scan()
	if err != nil {
		return tok, err
	}
	p.tok = next
	return tok, nil
}

// expect consumes the current token if it matches tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.tok
	if tok.Type != tt {
		return tok, p.unexpected(tok, tt.String())
	}
	return p.advance()
}

func (p *Parser) unexpected(tok Token, want string) error {
	if tok.Type == EOF {
		return p.fmtError(tok, "expected %s, got end of input", want)
	}
	return p.fmtError(tok, "expected %s, got %s (%q)", want, tok.Type, tok.Lexeme)
}

// ParseProgram parses a whole program: a block terminated by "end".
func (p *Parser) ParseProgram() (*Block, error) {
	// prime the lookahead
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(END); err != nil {
		return nil, err
	}
	if p.peek().Type != EOF {
		return nil, p.unexpected(p.peek(), "end of input after 'end'")
	}
	return block, nil
}

// startsItem reports whether tt can begin a description or statement.
func startsItem(tt TokenType) bool {
	switch tt {
	case DIM, IDENTIFIER, IF, FOR, WHILE, READ, WRITE:
		return true
	}
	return false
}

// parseBlock parses items until a token that cannot start one.
// The caller checks the terminating keyword.
func (p *Parser) parseBlock() (*Block, error) {
	block := &Block{Pos: p.peek().Pos}
	for startsItem(p.peek().Type) {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		block.Items = append(block.Items, item)
	}
	return block, nil
}

func (p *Parser) parseItem() (Stmt, error) {
	switch p.peek().Type {
	case DIM:
		return p.parseDescription()
	case IDENTIFIER:
		a, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return a, nil
	case IF:
		return p.parseConditional()
	case FOR:
		return p.parseFixedLoop()
	case WHILE:
		return p.parseConditionalLoop()
	case READ:
		return p.parseInput()
	case WRITE:
		return p.parseOutput()
	}
	return nil, p.unexpected(p.peek(), "statement")
}

// parseDescription parses dim a, b, c TYPE ;
func (p *Parser) parseDescription() (Stmt, error) {
	dim, err := p.expect(DIM)
	if err != nil {
		return nil, err
	}
	names, err := p.parseIdentList()
	if err != nil {
		return nil, err
	}
	typ, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &Description{Pos: dim.Pos, Names: names, Type: typ}, nil
}

var typeLexemes = map[TokenType]ir.DataType{
	TYPE_INT:    ir.Integer,
	TYPE_FLOAT:  ir.Float,
	TYPE_STRING: ir.String,
	TYPE_BOOL:   ir.Bool,
}

func (p *Parser) parseTypeName() (*TypeName, error) {
	tok := p.peek()
	dt, ok := typeLexemes[tok.Type]
	if !ok {
		return nil, p.unexpected(tok, "type (%, !, @ or $)")
	}
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	return &TypeName{Pos: tok.Pos, Lexeme: tok.Lexeme, Type: dt}, nil
}

func (p *Parser) parseIdentifier() (*Identifier, error) {
	tok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	return &Identifier{Pos: tok.Pos, Name: tok.Lexeme}, nil
}

// parseIdentList parses IDENTIFIER ("," IDENTIFIER)*
func (p *Parser) parseIdentList() ([]*Identifier, error) {
	var names []*Identifier
	for {
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		names = append(names, id)
		if p.peek().Type != COMMA {
			return names, nil
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}
}

// parseExprList parses expression ("," expression)*
func (p *Parser) parseExprList() ([]Expr, error) {
	var values []Expr
	for {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		values = append(values, e)
		if p.peek().Type != COMMA {
			return values, nil
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}
}

// parseAssignment parses IDENTIFIER as expression (without the ';').
func (p *Parser) parseAssignment() (*Assignment, error) {
	target, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(AS); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Assignment{Pos: target.Pos, Target: target, Value: value}, nil
}

// parseArm parses "if cond then block" starting at the IF token.
func (p *Parser) parseArm() (*ConditionalArm, error) {
	ifTok, err := p.expect(IF)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(THEN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ConditionalArm{Pos: ifTok.Pos, Condition: cond, Body: body}, nil
}

// parseConditional parses if ... (else if ...)* (else ...)? endif
func (p *Parser) parseConditional() (Stmt, error) {
	first, err := p.parseArm()
	if err != nil {
		return nil, err
	}
	c := &Conditional{Pos: first.Pos, Arms: []*ConditionalArm{first}}

	for p.peek().Type == ELSE {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		if p.peek().Type == IF {
			arm, err := p.parseArm()
			if err != nil {
				return nil, err
			}
			c.Arms = append(c.Arms, arm)
			continue
		}
		c.Else, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
		break
	}

	if _, err := p.expect(ENDIF); err != nil {
		return nil, err
	}
	return c, nil
}

// parseFixedLoop parses for i as start to bound do block endfor
func (p *Parser) parseFixedLoop() (Stmt, error) {
	forTok, err := p.expect(FOR)
	if err != nil {
		return nil, err
	}
	init, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TO); err != nil {
		return nil, err
	}
	bound, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(DO); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ENDFOR); err != nil {
		return nil, err
	}
	return &FixedLoop{Pos: forTok.Pos, Init: init, Bound: bound, Body: body}, nil
}

// parseConditionalLoop parses while cond do block endwhile
func (p *Parser) parseConditionalLoop() (Stmt, error) {
	whileTok, err := p.expect(WHILE)
	if err != nil {
		return nil, err
	}
	guard, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(DO); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ENDWHILE); err != nil {
		return nil, err
	}
	return &ConditionalLoop{Pos: whileTok.Pos, Guard: guard, Body: body}, nil
}

// parseInput parses read ( a, b ) ;
func (p *Parser) parseInput() (Stmt, error) {
	readTok, err := p.expect(READ)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	names, err := p.parseIdentList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &Input{Pos: readTok.Pos, Names: names}, nil
}

// parseOutput parses write ( e1, e2 ) ;
func (p *Parser) parseOutput() (Stmt, error) {
	writeTok, err := p.expect(WRITE)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	values, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &Output{Pos: writeTok.Pos, Values: values}, nil
}

var (
	relOps = map[TokenType]bool{EQ: true, NOT_EQ: true, LESS: true, LESS_EQ: true, GREATER: true, GREATER_EQ: true}
	addOps = map[TokenType]bool{PLUS: true, MINUS: true, OR: true}
	mulOps = map[TokenType]bool{STAR: true, SLASH: true, AND: true}
)

// parseBinaryLevel parses next (op next)* for one left-associative
// precedence level.
func (p *Parser) parseBinaryLevel(ops map[TokenType]bool, next func() (Expr, error)) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for ops[p.peek().Type] {
		opTok, err := p.advance()
		if err != nil {
			return nil, err
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryOperation{
			Pos:   left.Position(),
			Op:    &Operator{Pos: opTok.Pos, Name: opTok.Lexeme},
			Left:  left,
			Right: right,
		}
	}
	return left, nil
}

// parseExpression handles the relational level.
func (p *Parser) parseExpression() (Expr, error) {
	return p.parseBinaryLevel(relOps, p.parseOperand)
}

// parseOperand handles + - or
func (p *Parser) parseOperand() (Expr, error) {
	return p.parseBinaryLevel(addOps, p.parseTerm)
}

// parseTerm handles * / and
func (p *Parser) parseTerm() (Expr, error) {
	return p.parseBinaryLevel(mulOps, p.parseFactor)
}

// parseFactor handles ^, which is right-associative.
func (p *Parser) parseFactor() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != CARET {
		return base, nil
	}
	opTok, err := p.advance()
	if err != nil {
		return nil, err
	}
	exp, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return &BinaryOperation{
		Pos:   base.Position(),
		Op:    &Operator{Pos: opTok.Pos, Name: opTok.Lexeme},
		Left:  base,
		Right: exp,
	}, nil
}

// parsePrimary handles literals, identifiers, not and parentheses.
func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case IDENTIFIER, INTEGER, FLOAT, STRING, TRUE, FALSE:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}

	switch tok.Type {
	case IDENTIFIER:
		return &Identifier{Pos: tok.Pos, Name: tok.Lexeme}, nil
	case INTEGER:
		return &IntegerConstant{Pos: tok.Pos, Value: tok.Value.(int64)}, nil
	case FLOAT:
		return &FloatConstant{Pos: tok.Pos, Value: tok.Value.(float64)}, nil
	case STRING:
		return &StringConstant{Pos: tok.Pos, Value: tok.Value.(string)}, nil
	case TRUE, FALSE:
		return &BoolConstant{Pos: tok.Pos, Value: tok.Value.(bool)}, nil

	case NOT:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &UnaryOperation{Pos: tok.Pos, Op: &Operator{Pos: tok.Pos, Name: tok.Lexeme}, Operand: operand}, nil

	case LPAREN:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return restamp(inner, tok.Pos), nil
	}

	return nil, p.unexpected(tok, "expression")
}

// restamp moves e to pos, so a parenthesised expression starts at its '('.
func restamp(e Expr, pos Pos) Expr {
	switch n := e.(type) {
	case *Identifier:
		n.Pos = pos
	case *IntegerConstant:
		n.Pos = pos
	case *FloatConstant:
		n.Pos = pos
	case *StringConstant:
		n.Pos = pos
	case *BoolConstant:
		n.Pos = pos
	case *UnaryOperation:
		n.Pos = pos
	case *BinaryOperation:
		n.Pos = pos
	}
	return e
}

// Parse lexes and parses a complete program.
func Parse(src string) (*Block, error) {
	return NewParser(NewLexer(src), src).ParseProgram()
}
