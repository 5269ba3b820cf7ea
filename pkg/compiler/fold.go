package compiler

import (
	"math"

	"gotranslator/pkg/ir"
)

// foldUnary evaluates an operator on a constant at compile time.
func foldUnary(op string, v ir.Operand) (ir.Operand, bool) {
	if b, ok := v.(ir.BoolConst); ok && op == "not" {
		return ir.BoolConst{Value: !b.Value}, true
	}
	return nil, false
}

// foldBinary evaluates an operator on two constants of the same type.
// It declines (ok == false) whenever the runtime would fail or produce a
// value with no IR literal: integer division by zero, a negative integer
// exponent, or a non-finite float.
func foldBinary(op string, left, right ir.Operand) (ir.Operand, bool) {
	switch l := left.(type) {
	case ir.IntConst:
		r, ok := right.(ir.IntConst)
		if !ok {
			return nil, false
		}
		return foldInt(op, l.Value, r.Value)
	case ir.FloatConst:
		r, ok := right.(ir.FloatConst)
		if !ok {
			return nil, false
		}
		return foldFloat(op, l.Value, r.Value)
	case ir.StringConst:
		r, ok := right.(ir.StringConst)
		if !ok {
			return nil, false
		}
		switch op {
		case "+":
			return ir.StringConst{Value: l.Value + r.Value}, true
		case "=":
			return ir.BoolConst{Value: l.Value == r.Value}, true
		case "<>":
			return ir.BoolConst{Value: l.Value != r.Value}, true
		}
	case ir.BoolConst:
		r, ok := right.(ir.BoolConst)
		if !ok {
			return nil, false
		}
		switch op {
		case "and":
			return ir.BoolConst{Value: l.Value && r.Value}, true
		case "or":
			return ir.BoolConst{Value: l.Value || r.Value}, true
		case "=":
			return ir.BoolConst{Value: l.Value == r.Value}, true
		case "<>":
			return ir.BoolConst{Value: l.Value != r.Value}, true
		}
	}
	return nil, false
}

func foldInt(op string, a, b int64) (ir.Operand, bool) {
	switch op {
	case "+":
		return ir.IntConst{Value: a + b}, true
	case "-":
		return ir.IntConst{Value: a - b}, true
	case "*":
		return ir.IntConst{Value: a * b}, true
	case "/":
		if b == 0 {
			return nil, false
		}
		return ir.IntConst{Value: a / b}, true
	case "^":
		if b < 0 {
			return nil, false
		}
		return ir.IntConst{Value: ir.IntPow(a, b)}, true
	}
	if cmp, ok := ir.Compare(op, a, b); ok {
		return ir.BoolConst{Value: cmp}, true
	}
	return nil, false
}

func foldFloat(op string, a, b float64) (ir.Operand, bool) {
	var v float64
	switch op {
	case "+":
		v = a + b
	case "-":
		v = a - b
	case "*":
		v = a * b
	case "/":
		v = a / b
	case "^":
		v = math.Pow(a, b)
	default:
		if cmp, ok := ir.Compare(op, a, b); ok {
			return ir.BoolConst{Value: cmp}, true
		}
		return nil, false
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, false
	}
	return ir.FloatConst{Value: v}, true
}

