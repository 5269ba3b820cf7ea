package compiler

import (
	"fmt"
	"strings"

	"gotranslator/pkg/ir"
)

// Node is implemented by every AST node. Each node records the position of
// the first token its production consumed.
type Node interface {
	Position() Pos
	String() string
}

//  Expression nodes

// Expr is implemented by every node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Identifier is a read of (or, as an assignment target, a write to) a
// named variable.
//
//	write(x);
//	      ^  Identifier{Name: "x"}
type Identifier struct {
	Pos
	Name string
}

func (*Identifier) exprNode()        {}
func (i *Identifier) String() string { return i.Name }

// IntegerConstant is an Integer literal in any radix.
//
//	x as 1Ah;
//	     ^^^  IntegerConstant{Value: 26}
type IntegerConstant struct {
	Pos
	Value int64
}

func (*IntegerConstant) exprNode()        {}
func (c *IntegerConstant) String() string { return fmt.Sprintf("%d", c.Value) }

// FloatConstant is a literal with a fractional part.
type FloatConstant struct {
	Pos
	Value float64
}

func (*FloatConstant) exprNode()        {}
func (c *FloatConstant) String() string { return ir.FormatFloat(c.Value) }

// StringConstant is a string literal "...".
type StringConstant struct {
	Pos
	Value string
}

func (*StringConstant) exprNode()        {}
func (c *StringConstant) String() string { return fmt.Sprintf("%q", c.Value) }

// BoolConstant is true or false.
type BoolConstant struct {
	Pos
	Value bool
}

func (*BoolConstant) exprNode()        {}
func (c *BoolConstant) String() string { return fmt.Sprintf("%t", c.Value) }

// Operator names a unary or binary operator by its source lexeme.
type Operator struct {
	Pos
	Name string
}

func (o *Operator) String() string { return o.Name }

// UnaryOperation is "not Operand".
type UnaryOperation struct {
	Pos
	Op      *Operator
	Operand Expr
}

func (*UnaryOperation) exprNode() {}
func (u *UnaryOperation) String() string {
	return fmt.Sprintf("(%s %s)", u.Op, u.Operand)
}

// BinaryOperation represents Left Op Right.
//
//	a + 1
//	^ ^ ^
//	| | |
//	| | Right
//	| Op
//	Left
type BinaryOperation struct {
	Pos
	Op    *Operator
	Left  Expr
	Right Expr
}

func (*BinaryOperation) exprNode() {}
func (b *BinaryOperation) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

//  Statement nodes

// Stmt is implemented by every item that can appear in a Block.
type Stmt interface {
	Node
	stmtNode()
}

// Block is an ordered list of declarations and statements.
type Block struct {
	Pos
	Items []Stmt
}

func (*Block) stmtNode() {}
func (b *Block) String() string {
	parts := make([]string, len(b.Items))
	for i, s := range b.Items {
		parts[i] = s.String()
	}
	return "Block[" + strings.Join(parts, "; ") + "]"
}

// TypeName is one of the type lexemes % ! @ $ resolved to its DataType.
type TypeName struct {
	Pos
	Lexeme string
	Type   ir.DataType
}

func (t *TypeName) String() string { return t.Type.String() }

// Description declares one or more variables of a single type.
//
//	dim a, b %;
type Description struct {
	Pos
	Names []*Identifier
	Type  *TypeName
}

func (*Description) stmtNode() {}
func (d *Description) String() string {
	return fmt.Sprintf("Dim(%s %s)", joinNodes(d.Names), d.Type)
}

// Assignment is "Target as Value".
type Assignment struct {
	Pos
	Target *Identifier
	Value  Expr
}

func (*Assignment) stmtNode() {}
func (a *Assignment) String() string {
	return fmt.Sprintf("Assign(%s as %s)", a.Target, a.Value)
}

// ConditionalArm is one "if Condition then Body" clause.
type ConditionalArm struct {
	Pos
	Condition Expr
	Body      *Block
}

func (a *ConditionalArm) String() string {
	return fmt.Sprintf("if %s then %s", a.Condition, a.Body)
}

// Conditional is an if / else if / else chain. Else is nil when absent.
type Conditional struct {
	Pos
	Arms []*ConditionalArm
	Else *Block
}

func (*Conditional) stmtNode() {}
func (c *Conditional) String() string {
	s := "If(" + joinNodes(c.Arms)
	if c.Else != nil {
		s += " else " + c.Else.String()
	}
	return s + ")"
}

// FixedLoop is "for Init to Bound do Body endfor". The loop variable is
// Init.Target and must be an Integer.
type FixedLoop struct {
	Pos
	Init  *Assignment
	Bound Expr
	Body  *Block
}

func (*FixedLoop) stmtNode() {}
func (f *FixedLoop) String() string {
	return fmt.Sprintf("For(%s to %s do %s)", f.Init, f.Bound, f.Body)
}

// ConditionalLoop is "while Guard do Body endwhile".
type ConditionalLoop struct {
	Pos
	Guard Expr
	Body  *Block
}

func (*ConditionalLoop) stmtNode() {}
func (w *ConditionalLoop) String() string {
	return fmt.Sprintf("While(%s do %s)", w.Guard, w.Body)
}

// Input is "read(a, b, ...)".
type Input struct {
	Pos
	Names []*Identifier
}

func (*Input) stmtNode()        {}
func (i *Input) String() string { return "Read(" + joinNodes(i.Names) + ")" }

// Output is "write(e1, e2, ...)".
type Output struct {
	Pos
	Values []Expr
}

func (*Output) stmtNode()        {}
func (o *Output) String() string { return "Write(" + joinNodes(o.Values) + ")" }

func joinNodes[T fmt.Stringer](nodes []T) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}
