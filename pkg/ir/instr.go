package ir

import (
	"strconv"
	"strings"
)

//  Operands

// Operand is a single value: a variable reference or a literal.
// Every Operand is also a valid Expr.
type Operand interface {
	Expr
	operandNode()
}

// Var is a read of a named variable (source variable or #t temporary).
type Var struct {
	Name string
}

func (Var) exprNode()        {}
func (Var) operandNode()     {}
func (v Var) String() string { return v.Name }

// IntConst is an Integer literal.
type IntConst struct {
	Value int64
}

func (IntConst) exprNode()        {}
func (IntConst) operandNode()     {}
func (c IntConst) String() string { return strconv.FormatInt(c.Value, 10) }

// FloatConst is a Float literal. It always renders with a decimal point and
// at least one fractional digit so the parser can tell it from an IntConst.
type FloatConst struct {
	Value float64
}

func (FloatConst) exprNode()        {}
func (FloatConst) operandNode()     {}
func (c FloatConst) String() string { return FormatFloat(c.Value) }

// StringConst is a String literal.
//
//	x = "hello\n"
//	    ^^^^^^^^^  StringConst{Value: "hello" + newline}
type StringConst struct {
	Value string
}

func (StringConst) exprNode()        {}
func (StringConst) operandNode()     {}
func (c StringConst) String() string { return QuoteString(c.Value) }

// BoolConst is a Bool literal, rendered True / False.
type BoolConst struct {
	Value bool
}

func (BoolConst) exprNode()    {}
func (BoolConst) operandNode() {}
func (c BoolConst) String() string {
	if c.Value {
		return "True"
	}
	return "False"
}

//  Expressions

// Expr is the right-hand side of an assignment, a jump condition or an
// output value.
type Expr interface {
	exprNode()
	String() string
}

// Unary is "not <operand>".
type Unary struct {
	Op      string
	Operand Operand
}

func (Unary) exprNode()        {}
func (u Unary) String() string { return u.Op + " " + u.Operand.String() }

// Binary is "<left> <op> <right>".
type Binary struct {
	Op    string
	Left  Operand
	Right Operand
}

func (Binary) exprNode() {}
func (b Binary) String() string {
	return b.Left.String() + " " + b.Op + " " + b.Right.String()
}

// Cast is "Type(<operand>)".
type Cast struct {
	Type    DataType
	Operand Operand
}

func (Cast) exprNode()        {}
func (c Cast) String() string { return c.Type.String() + "(" + c.Operand.String() + ")" }

//  Instructions

// Instr is one line of IR.
type Instr interface {
	instrNode()
	String() string
}

// Label marks a jump target.
//
//	@l0:
type Label struct {
	Name string
}

func (Label) instrNode()       {}
func (l Label) String() string { return l.Name + ":" }

// Goto is an unconditional jump.
//
//	goto @l0
type Goto struct {
	Label string
}

func (Goto) instrNode()       {}
func (g Goto) String() string { return "goto " + g.Label }

// CondJump jumps to Label when Cond evaluates to True.
//
//	if #t0 < 10 goto @l1
type CondJump struct {
	Cond  Expr
	Label string
}

func (CondJump) instrNode()       {}
func (c CondJump) String() string { return "if " + c.Cond.String() + " goto " + c.Label }

// Assign (re)binds Target to the value of Value.
//
//	#t0 = a + 1
type Assign struct {
	Target string
	Value  Expr
}

func (Assign) instrNode()       {}
func (a Assign) String() string { return a.Target + " = " + a.Value.String() }

// Input reads one line from the terminal into Target.
//
//	Input(x)
type Input struct {
	Target string
}

func (Input) instrNode()       {}
func (i Input) String() string { return "Input(" + i.Target + ")" }

// Output writes the textual form of Value to the terminal.
//
//	Output(x + 1)
type Output struct {
	Value Expr
}

func (Output) instrNode()       {}
func (o Output) String() string { return "Output(" + o.Value.String() + ")" }

// Format renders a program as newline-separated IR text.
func Format(program []Instr) string {
	var sb strings.Builder
	for _, in := range program {
		sb.WriteString(in.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
