package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports an IR line that matches none of the instruction forms.
type ParseError struct {
	Line int // 1-based; 0 when the line was parsed on its own
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s on line %d: %q", e.Msg, e.Line, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Msg, e.Text)
}

// binaryOps is searched longest-first; each operator is matched with a
// space on both sides and only outside string literals.
var binaryOps = []string{"<>", "<=", ">=", "and", "or", "=", "<", ">", "+", "-", "*", "/", "^"}

// Parse turns IR text into instructions. Blank lines are skipped.
func Parse(text string) ([]Instr, error) {
	var program []Instr
	for i, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		in, err := ParseLine(raw)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Line = i + 1
			}
			return nil, err
		}
		program = append(program, in)
	}
	return program, nil
}

// ParseLine recognises one instruction. Forms are tried in a fixed order:
// label, goto, conditional jump, input, output, assignment.
func ParseLine(raw string) (Instr, error) {
	line := strings.TrimSpace(raw)
	fail := func(msg string) (Instr, error) {
		return nil, &ParseError{Text: line, Msg: msg}
	}

	switch {
	case strings.HasPrefix(line, "@"):
		name := strings.TrimSuffix(line, ":")
		if name == line || !isLabel(name) {
			return fail("malformed label")
		}
		return Label{Name: name}, nil

	case strings.HasPrefix(line, "goto @"):
		target := strings.TrimSpace(line[len("goto "):])
		if !isLabel(target) {
			return fail("malformed goto target")
		}
		return Goto{Label: target}, nil

	case strings.HasPrefix(line, "if "):
		idx := strings.LastIndex(line, " goto ")
		if idx < len("if ") {
			return fail("conditional jump without goto")
		}
		cond, err := ParseExpr(line[len("if "):idx])
		if err != nil {
			return nil, err
		}
		target := strings.TrimSpace(line[idx+len(" goto "):])
		if !isLabel(target) {
			return fail("malformed goto target")
		}
		return CondJump{Cond: cond, Label: target}, nil

	case strings.HasPrefix(line, "Input(") && strings.HasSuffix(line, ")"):
		target := line[len("Input(") : len(line)-1]
		if !isIdentifier(target) {
			return fail("Input expects a variable")
		}
		return Input{Target: target}, nil

	case strings.HasPrefix(line, "Output(") && strings.HasSuffix(line, ")"):
		val, err := ParseExpr(line[len("Output(") : len(line)-1])
		if err != nil {
			return nil, err
		}
		return Output{Value: val}, nil
	}

	if idx := strings.Index(line, " = "); idx > 0 {
		target := line[:idx]
		if !isIdentifier(target) {
			return fail("assignment to a non-variable")
		}
		val, err := ParseExpr(line[idx+len(" = "):])
		if err != nil {
			return nil, err
		}
		return Assign{Target: target, Value: val}, nil
	}

	return fail("unrecognised instruction")
}

// ParseExpr recognises, in order: a lone operand literal, "not x",
// a binary operation, a cast, then any other operand.
func ParseExpr(s string) (Expr, error) {
	s = strings.TrimSpace(s)

	if s == "True" || s == "False" || isStringLiteral(s) {
		return ParseOperand(s)
	}

	if strings.HasPrefix(s, "not ") {
		operand, err := ParseOperand(s[len("not "):])
		if err != nil {
			return nil, err
		}
		return Unary{Op: "not", Operand: operand}, nil
	}

	for _, op := range binaryOps {
		idx := indexOutsideQuotes(s, " "+op+" ")
		if idx < 0 {
			continue
		}
		left, err := ParseOperand(s[:idx])
		if err != nil {
			return nil, err
		}
		right, err := ParseOperand(s[idx+len(op)+2:])
		if err != nil {
			return nil, err
		}
		return Binary{Op: op, Left: left, Right: right}, nil
	}

	for _, t := range DataTypes {
		prefix := t.String() + "("
		if strings.HasPrefix(s, prefix) && strings.HasSuffix(s, ")") {
			operand, err := ParseOperand(s[len(prefix) : len(s)-1])
			if err != nil {
				return nil, err
			}
			return Cast{Type: t, Operand: operand}, nil
		}
	}

	return ParseOperand(s)
}

// ParseOperand recognises a variable or a literal.
func ParseOperand(s string) (Operand, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "True":
		return BoolConst{Value: true}, nil
	case s == "False":
		return BoolConst{Value: false}, nil
	case isStringLiteral(s):
		return StringConst{Value: unquoteString(s)}, nil
	case strings.Contains(s, "."):
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &ParseError{Text: s, Msg: "malformed float literal"}
		}
		return FloatConst{Value: f}, nil
	case isIdentifier(s):
		return Var{Name: s}, nil
	case isInteger(s):
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, &ParseError{Text: s, Msg: "integer literal out of range"}
		}
		return IntConst{Value: n}, nil
	}
	return nil, &ParseError{Text: s, Msg: "unrecognised operand"}
}

// isStringLiteral reports whether s is exactly one quoted string.
// String literals never contain a double quote.
func isStringLiteral(s string) bool {
	return len(s) >= 2 && s[0] == '"' && strings.IndexByte(s[1:], '"') == len(s)-2
}

func isLabel(s string) bool {
	return len(s) > 1 && s[0] == '@' && isIdentifier(s[1:])
}

func indexOutsideQuotes(s, sub string) int {
	inQuote := false
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i] == '"' {
			inQuote = !inQuote
			continue
		}
		if !inQuote && s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
