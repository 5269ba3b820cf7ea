package interp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gotranslator/pkg/ir"
)

// Value is a runtime value tagged with its IR type. Only the field that
// matches Type is meaningful.
type Value struct {
	Type  ir.DataType
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

func IntValue(v int64) Value     { return Value{Type: ir.Integer, Int: v} }
func FloatValue(v float64) Value { return Value{Type: ir.Float, Float: v} }
func StringValue(v string) Value { return Value{Type: ir.String, Str: v} }
func BoolValue(v bool) Value     { return Value{Type: ir.Bool, Bool: v} }

// String is the text written by Output and produced by a String cast.
func (v Value) String() string {
	switch v.Type {
	case ir.Integer:
		return strconv.FormatInt(v.Int, 10)
	case ir.Float:
		if math.Abs(v.Float) >= 1e21 {
			return strconv.FormatFloat(v.Float, 'g', -1, 64)
		}
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case ir.String:
		return v.Str
	case ir.Bool:
		if v.Bool {
			return "True"
		}
		return "False"
	}
	return fmt.Sprintf("<%s>", v.Type)
}

// constant converts an IR literal to a runtime value.
func constant(op ir.Operand) (Value, bool) {
	switch c := op.(type) {
	case ir.IntConst:
		return IntValue(c.Value), true
	case ir.FloatConst:
		return FloatValue(c.Value), true
	case ir.StringConst:
		return StringValue(c.Value), true
	case ir.BoolConst:
		return BoolValue(c.Value), true
	}
	return Value{}, false
}

func unaryOp(op string, v Value) (Value, error) {
	if op == "not" && v.Type == ir.Bool {
		return BoolValue(!v.Bool), nil
	}
	return Value{}, fmt.Errorf("operator `%s` cannot be applied to %s", op, v.Type)
}

// binaryOp applies op with the semantics of the operands' runtime types.
// A mixed Integer/Float pair is evaluated as Float.
func binaryOp(op string, l, r Value) (Value, error) {
	if l.Type != r.Type && isNumeric(l) && isNumeric(r) {
		l, r = toFloat(l), toFloat(r)
	}
	if l.Type != r.Type {
		return Value{}, fmt.Errorf("operator `%s` cannot be applied to %s and %s", op, l.Type, r.Type)
	}

	switch l.Type {
	case ir.Integer:
		return intOp(op, l.Int, r.Int)
	case ir.Float:
		return floatOp(op, l.Float, r.Float)
	case ir.String:
		switch op {
		case "+":
			return StringValue(l.Str + r.Str), nil
		case "=":
			return BoolValue(l.Str == r.Str), nil
		case "<>":
			return BoolValue(l.Str != r.Str), nil
		}
	case ir.Bool:
		switch op {
		case "and":
			return BoolValue(l.Bool && r.Bool), nil
		case "or":
			return BoolValue(l.Bool || r.Bool), nil
		case "=":
			return BoolValue(l.Bool == r.Bool), nil
		case "<>":
			return BoolValue(l.Bool != r.Bool), nil
		}
	}
	return Value{}, fmt.Errorf("operator `%s` cannot be applied to %s and %s", op, l.Type, r.Type)
}

func isNumeric(v Value) bool { return v.Type == ir.Integer || v.Type == ir.Float }

func toFloat(v Value) Value {
	if v.Type == ir.Integer {
		return FloatValue(float64(v.Int))
	}
	return v
}

func intOp(op string, a, b int64) (Value, error) {
	switch op {
	case "+":
		return IntValue(a + b), nil
	case "-":
		return IntValue(a - b), nil
	case "*":
		return IntValue(a * b), nil
	case "/":
		if b == 0 {
			return Value{}, fmt.Errorf("integer division by zero")
		}
		return IntValue(a / b), nil
	case "^":
		if b < 0 {
			return Value{}, fmt.Errorf("negative integer exponent %d", b)
		}
		return IntValue(ir.IntPow(a, b)), nil
	}
	if cmp, ok := ir.Compare(op, a, b); ok {
		return BoolValue(cmp), nil
	}
	return Value{}, fmt.Errorf("operator `%s` cannot be applied to Integer and Integer", op)
}

func floatOp(op string, a, b float64) (Value, error) {
	switch op {
	case "+":
		return FloatValue(a + b), nil
	case "-":
		return FloatValue(a - b), nil
	case "*":
		return FloatValue(a * b), nil
	case "/":
		return FloatValue(a / b), nil
	case "^":
		return FloatValue(math.Pow(a, b)), nil
	}
	if cmp, ok := ir.Compare(op, a, b); ok {
		return BoolValue(cmp), nil
	}
	return Value{}, fmt.Errorf("operator `%s` cannot be applied to Float and Float", op)
}

// cast converts v to t. Text is parsed; numbers convert natively, with
// Float to Integer truncating toward zero.
func cast(t ir.DataType, v Value) (Value, error) {
	if v.Type == t {
		return v, nil
	}
	switch t {
	case ir.String:
		return StringValue(v.String()), nil
	case ir.Integer:
		switch v.Type {
		case ir.Float:
			if math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
				return Value{}, fmt.Errorf("cannot convert %s to Integer", v)
			}
			return IntValue(int64(v.Float)), nil
		case ir.String:
			n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
			if err != nil {
				return Value{}, fmt.Errorf("cannot convert %q to Integer", v.Str)
			}
			return IntValue(n), nil
		}
	case ir.Float:
		switch v.Type {
		case ir.Integer:
			return FloatValue(float64(v.Int)), nil
		case ir.String:
			f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
			if err != nil {
				return Value{}, fmt.Errorf("cannot convert %q to Float", v.Str)
			}
			return FloatValue(f), nil
		}
	case ir.Bool:
		if v.Type == ir.String {
			b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(v.Str)))
			if err != nil {
				return Value{}, fmt.Errorf("cannot convert %q to Bool", v.Str)
			}
			return BoolValue(b), nil
		}
	}
	return Value{}, fmt.Errorf("cannot convert %s to %s", v.Type, t)
}
