package compiler

import "gotranslator/pkg/ir"

// Value is the result of lowering an expression: a Variable, a Constant,
// or an Expression that has not been bound to a temporary.
type Value interface {
	Type() ir.DataType
	Expr() ir.Expr
}

// Variable is a named IR variable: a declared source variable or a #t
// temporary.
type Variable struct {
	Name     string
	DataType ir.DataType
}

func (v Variable) Type() ir.DataType { return v.DataType }
func (v Variable) Expr() ir.Expr     { return ir.Var{Name: v.Name} }

// Constant is a literal known at compile time.
type Constant struct {
	Literal  ir.Operand
	DataType ir.DataType
}

func (c Constant) Type() ir.DataType { return c.DataType }
func (c Constant) Expr() ir.Expr     { return c.Literal }

// Expression is a single operator application kept inline. It is only
// produced where the consumer can embed it directly: a jump condition, an
// output value or the right-hand side of an assignment.
type Expression struct {
	Inline   ir.Expr
	DataType ir.DataType
}

func (e Expression) Type() ir.DataType { return e.DataType }
func (e Expression) Expr() ir.Expr     { return e.Inline }

func constantOf(lit ir.Operand) Constant {
	switch lit.(type) {
	case ir.IntConst:
		return Constant{Literal: lit, DataType: ir.Integer}
	case ir.FloatConst:
		return Constant{Literal: lit, DataType: ir.Float}
	case ir.StringConst:
		return Constant{Literal: lit, DataType: ir.String}
	}
	return Constant{Literal: lit, DataType: ir.Bool}
}
