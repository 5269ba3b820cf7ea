package compiler

import "gotranslator/pkg/ir"

type unaryKey struct {
	op      string
	operand ir.DataType
}

type binaryKey struct {
	op          string
	left, right ir.DataType
}

// binaryRule is the result type of an operator application and whether
// either side must first be cast to Float.
type binaryRule struct {
	result    ir.DataType
	castLeft  bool
	castRight bool
}

var unaryRules = map[unaryKey]ir.DataType{
	{"not", ir.Bool}: ir.Bool,
}

var binaryRules = buildBinaryRules()

// buildBinaryRules fills the operator/type matrix. Mixed Integer/Float
// numeric pairs are accepted by casting the Integer side to Float.
func buildBinaryRules() map[binaryKey]binaryRule {
	rules := make(map[binaryKey]binaryRule)

	numeric := func(op string, result ir.DataType, promoted ir.DataType) {
		rules[binaryKey{op, ir.Integer, ir.Integer}] = binaryRule{result: result}
		rules[binaryKey{op, ir.Float, ir.Float}] = binaryRule{result: promoted}
		rules[binaryKey{op, ir.Integer, ir.Float}] = binaryRule{result: promoted, castLeft: true}
		rules[binaryKey{op, ir.Float, ir.Integer}] = binaryRule{result: promoted, castRight: true}
	}

	for _, op := range []string{"or", "and"} {
		rules[binaryKey{op, ir.Bool, ir.Bool}] = binaryRule{result: ir.Bool}
	}
	for _, op := range []string{"=", "<>"} {
		numeric(op, ir.Bool, ir.Bool)
		rules[binaryKey{op, ir.String, ir.String}] = binaryRule{result: ir.Bool}
		rules[binaryKey{op, ir.Bool, ir.Bool}] = binaryRule{result: ir.Bool}
	}
	for _, op := range []string{"<", "<=", ">", ">="} {
		numeric(op, ir.Bool, ir.Bool)
	}
	for _, op := range []string{"+", "-", "*", "/", "^"} {
		numeric(op, ir.Integer, ir.Float)
	}
	rules[binaryKey{"+", ir.String, ir.String}] = binaryRule{result: ir.String}

	return rules
}

func lookupUnary(op string, operand ir.DataType) (ir.DataType, bool) {
	t, ok := unaryRules[unaryKey{op, operand}]
	return t, ok
}

func lookupBinary(op string, left, right ir.DataType) (binaryRule, bool) {
	r, ok := binaryRules[binaryKey{op, left, right}]
	return r, ok
}
