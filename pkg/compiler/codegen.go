package compiler

import (
	"fmt"

	"gotranslator/pkg/ir"
)

// CodeGen walks an AST and emits IR, one line per instruction, through
// the emit callback. Nothing is buffered.
type CodeGen struct {
	syms      *SymbolTable
	emit      func(line string)
	nextTemp  int
	nextLabel int
}

func newCodeGen(emit func(line string)) *CodeGen {
	return &CodeGen{syms: NewSymbolTable(), emit: emit}
}

func (cg *CodeGen) newTemp() string {
	t := fmt.Sprintf("#t%d", cg.nextTemp)
	cg.nextTemp++
	return t
}

func (cg *CodeGen) newLabel() string {
	l := fmt.Sprintf("@l%d", cg.nextLabel)
	cg.nextLabel++
	return l
}

func (cg *CodeGen) line(in ir.Instr) {
	cg.emit(in.String())
}

// Generate lowers a parsed program to IR. On error, the lines already
// emitted must be discarded by the caller.
func Generate(program *Block, emit func(line string)) error {
	return newCodeGen(emit).genBlock(program, false)
}

// genBlock lowers every item of b. Nested blocks open their own scope;
// the program block uses the bottom one.
func (cg *CodeGen) genBlock(b *Block, scoped bool) error {
	if scoped {
		cg.syms.EnterScope()
		defer cg.syms.ExitScope()
	}
	for _, item := range b.Items {
		if err := cg.genStmt(item); err != nil {
			return err
		}
	}
	return nil
}

func (cg *CodeGen) genStmt(s Stmt) error {
	switch n := s.(type) {
	case *Description:
		return cg.genDescription(n)
	case *Assignment:
		return cg.genAssignment(n)
	case *Conditional:
		return cg.genConditional(n)
	case *FixedLoop:
		return cg.genFixedLoop(n)
	case *ConditionalLoop:
		return cg.genConditionalLoop(n)
	case *Input:
		return cg.genInput(n)
	case *Output:
		return cg.genOutput(n)
	case *Block:
		return cg.genBlock(n, true)
	}
	return codeGenErrorf(s.Position(), "unsupported statement %T", s)
}

// genDescription declares each name in the current scope. A name that
// shadows an enclosing declaration gets a fresh IR name so the two never
// share storage, and so does a name the IR would read as a literal.
func (cg *CodeGen) genDescription(d *Description) error {
	for _, id := range d.Names {
		irName := id.Name
		_, shadows := cg.syms.Lookup(id.Name)
		if (shadows && !cg.syms.DeclaredInCurrent(id.Name)) || !ir.IsVarName(id.Name) {
			irName = cg.newTemp()
		}
		if err := cg.syms.Define(id.Name, Symbol{IRName: irName, Type: d.Type.Type, Pos: id.Pos}); err != nil {
			return codeGenErrorf(id.Pos, "%v", err)
		}
	}
	return nil
}

func (cg *CodeGen) lookup(id *Identifier) (Variable, error) {
	sym, ok := cg.syms.Lookup(id.Name)
	if !ok {
		return Variable{}, codeGenErrorf(id.Pos, "variable %q is not declared", id.Name)
	}
	return Variable{Name: sym.IRName, DataType: sym.Type}, nil
}

func (cg *CodeGen) genAssignment(a *Assignment) error {
	to, err := cg.lookup(a.Target)
	if err != nil {
		return err
	}
	from, err := cg.genExpr(a.Value, true)
	if err != nil {
		return err
	}
	return cg.assign(to, from, a.Value.Position())
}

// assign emits to = from. The only implicit conversion is Integer to
// Float: constants are converted in place, anything else goes through
// a Float(...) cast.
func (cg *CodeGen) assign(to Variable, from Value, pos Pos) error {
	if from.Type() == to.Type() {
		cg.line(ir.Assign{Target: to.Name, Value: from.Expr()})
		return nil
	}
	if to.Type() != ir.Float || from.Type() != ir.Integer {
		return codeGenErrorf(pos, "cannot assign %s value to %s variable", from.Type(), to.Type())
	}
	if c, ok := from.(Constant); ok {
		cg.line(ir.Assign{Target: to.Name, Value: intToFloat(c)})
		return nil
	}
	cg.line(ir.Assign{Target: to.Name, Value: ir.Cast{Type: ir.Float, Operand: cg.operand(from)}})
	return nil
}

// operand returns v as an IR operand, binding an inline Expression to a
// fresh temporary first.
func (cg *CodeGen) operand(v Value) ir.Operand {
	switch x := v.(type) {
	case Variable:
		return ir.Var{Name: x.Name}
	case Constant:
		return x.Literal
	}
	tmp := cg.newTemp()
	cg.line(ir.Assign{Target: tmp, Value: v.Expr()})
	return ir.Var{Name: tmp}
}

func intToFloat(c Constant) ir.FloatConst {
	return ir.FloatConst{Value: float64(c.Literal.(ir.IntConst).Value)}
}

// castToFloat converts an Integer value for a mixed numeric operation.
func (cg *CodeGen) castToFloat(v Value) Value {
	if c, ok := v.(Constant); ok {
		return Constant{Literal: intToFloat(c), DataType: ir.Float}
	}
	tmp := cg.newTemp()
	cg.line(ir.Assign{Target: tmp, Value: ir.Cast{Type: ir.Float, Operand: cg.operand(v)}})
	return Variable{Name: tmp, DataType: ir.Float}
}

// result either returns e inline or binds it to a new temporary.
func (cg *CodeGen) result(e ir.Expr, t ir.DataType, inline bool) Value {
	if inline {
		return Expression{Inline: e, DataType: t}
	}
	tmp := cg.newTemp()
	cg.line(ir.Assign{Target: tmp, Value: e})
	return Variable{Name: tmp, DataType: t}
}

// genExpr lowers an expression. Sub-expressions are always bound to
// temporaries; only the outermost operation may stay inline, and only
// when inline is set. Operations on constants are folded.
func (cg *CodeGen) genExpr(e Expr, inline bool) (Value, error) {
	switch n := e.(type) {
	case *Identifier:
		return cg.lookup(n)
	case *IntegerConstant:
		return constantOf(ir.IntConst{Value: n.Value}), nil
	case *FloatConstant:
		return constantOf(ir.FloatConst{Value: n.Value}), nil
	case *StringConstant:
		return constantOf(ir.StringConst{Value: n.Value}), nil
	case *BoolConstant:
		return constantOf(ir.BoolConst{Value: n.Value}), nil

	case *UnaryOperation:
		operand, err := cg.genExpr(n.Operand, false)
		if err != nil {
			return nil, err
		}
		resultType, ok := lookupUnary(n.Op.Name, operand.Type())
		if !ok {
			return nil, codeGenErrorf(n.Op.Pos, "operator `%s` cannot be applied to %s", n.Op.Name, operand.Type())
		}
		if c, ok := operand.(Constant); ok {
			if folded, ok := foldUnary(n.Op.Name, c.Literal); ok {
				return constantOf(folded), nil
			}
		}
		return cg.result(ir.Unary{Op: n.Op.Name, Operand: cg.operand(operand)}, resultType, inline), nil

	case *BinaryOperation:
		left, err := cg.genExpr(n.Left, false)
		if err != nil {
			return nil, err
		}
		right, err := cg.genExpr(n.Right, false)
		if err != nil {
			return nil, err
		}
		rule, ok := lookupBinary(n.Op.Name, left.Type(), right.Type())
		if !ok {
			return nil, codeGenErrorf(n.Op.Pos, "operator `%s` cannot be applied to %s and %s",
				n.Op.Name, left.Type(), right.Type())
		}
		if rule.castLeft {
			left = cg.castToFloat(left)
		}
		if rule.castRight {
			right = cg.castToFloat(right)
		}
		lc, lok := left.(Constant)
		rc, rok := right.(Constant)
		if lok && rok {
			if folded, ok := foldBinary(n.Op.Name, lc.Literal, rc.Literal); ok {
				return constantOf(folded), nil
			}
		}
		bin := ir.Binary{Op: n.Op.Name, Left: cg.operand(left), Right: cg.operand(right)}
		return cg.result(bin, rule.result, inline), nil
	}
	return nil, codeGenErrorf(e.Position(), "unsupported expression %T", e)
}

// genCondition lowers a jump condition and checks that it is Bool.
func (cg *CodeGen) genCondition(e Expr) (Value, error) {
	v, err := cg.genExpr(e, true)
	if err != nil {
		return nil, err
	}
	if v.Type() != ir.Bool {
		return nil, codeGenErrorf(e.Position(), "condition must be Bool, got %s", v.Type())
	}
	return v, nil
}

// genConditional lowers an if / else if / else chain:
//
//	if c0 goto @a0        ; one jump per arm, in order
//	if c1 goto @a1
//	goto @else
//	@a0:  body0  goto @cont
//	@a1:  body1  goto @cont   ; omitted on the last arm when there is no else
//	@else: elseBody
//	@cont:                    ; same label as @else when there is no else
func (cg *CodeGen) genConditional(c *Conditional) error {
	labels := make([]string, len(c.Arms))
	for i, arm := range c.Arms {
		cond, err := cg.genCondition(arm.Condition)
		if err != nil {
			return err
		}
		labels[i] = cg.newLabel()
		cg.line(ir.CondJump{Cond: cond.Expr(), Label: labels[i]})
	}

	elseLabel := cg.newLabel()
	contLabel := elseLabel
	if c.Else != nil {
		contLabel = cg.newLabel()
	}
	cg.line(ir.Goto{Label: elseLabel})

	for i, arm := range c.Arms {
		cg.line(ir.Label{Name: labels[i]})
		if err := cg.genBlock(arm.Body, true); err != nil {
			return err
		}
		if i != len(c.Arms)-1 || c.Else != nil {
			cg.line(ir.Goto{Label: contLabel})
		}
	}

	if c.Else != nil {
		cg.line(ir.Label{Name: elseLabel})
		if err := cg.genBlock(c.Else, true); err != nil {
			return err
		}
	}
	cg.line(ir.Label{Name: contLabel})
	return nil
}

// genFixedLoop lowers for i as a to b do body endfor:
//
//	i = a
//	@test:
//	if i > b goto @exit   ; b is re-evaluated on every iteration
//	body
//	i = i + 1
//	goto @test
//	@exit:
func (cg *CodeGen) genFixedLoop(f *FixedLoop) error {
	counter, err := cg.lookup(f.Init.Target)
	if err != nil {
		return err
	}
	if counter.Type() != ir.Integer {
		return codeGenErrorf(f.Init.Pos, "loop variable %q must be Integer, got %s", f.Init.Target.Name, counter.Type())
	}
	if err := cg.genAssignment(f.Init); err != nil {
		return err
	}

	testLabel := cg.newLabel()
	cg.line(ir.Label{Name: testLabel})

	boundPos := f.Bound.Position()
	cond, err := cg.genCondition(&BinaryOperation{
		Pos:   boundPos,
		Op:    &Operator{Pos: boundPos, Name: ">"},
		Left:  f.Init.Target,
		Right: f.Bound,
	})
	if err != nil {
		return err
	}
	exitLabel := cg.newLabel()
	cg.line(ir.CondJump{Cond: cond.Expr(), Label: exitLabel})

	if err := cg.genBlock(f.Body, true); err != nil {
		return err
	}

	step := &Assignment{
		Pos:    f.Init.Pos,
		Target: f.Init.Target,
		Value: &BinaryOperation{
			Pos:   f.Init.Pos,
			Op:    &Operator{Pos: f.Init.Pos, Name: "+"},
			Left:  f.Init.Target,
			Right: &IntegerConstant{Pos: f.Init.Pos, Value: 1},
		},
	}
	if err := cg.genAssignment(step); err != nil {
		return err
	}
	cg.line(ir.Goto{Label: testLabel})
	cg.line(ir.Label{Name: exitLabel})
	return nil
}

// genConditionalLoop lowers while c do body endwhile:
//
//	@test:
//	if c goto @body
//	goto @exit
//	@body:
//	body
//	goto @test
//	@exit:
func (cg *CodeGen) genConditionalLoop(w *ConditionalLoop) error {
	testLabel := cg.newLabel()
	cg.line(ir.Label{Name: testLabel})

	cond, err := cg.genCondition(w.Guard)
	if err != nil {
		return err
	}
	bodyLabel := cg.newLabel()
	exitLabel := cg.newLabel()
	cg.line(ir.CondJump{Cond: cond.Expr(), Label: bodyLabel})
	cg.line(ir.Goto{Label: exitLabel})
	cg.line(ir.Label{Name: bodyLabel})

	if err := cg.genBlock(w.Body, true); err != nil {
		return err
	}
	cg.line(ir.Goto{Label: testLabel})
	cg.line(ir.Label{Name: exitLabel})
	return nil
}

// genInput reads each variable as text, then converts it in place when it
// is not a String.
func (cg *CodeGen) genInput(in *Input) error {
	for _, id := range in.Names {
		v, err := cg.lookup(id)
		if err != nil {
			return err
		}
		cg.line(ir.Input{Target: v.Name})
		if v.Type() != ir.String {
			cg.line(ir.Assign{Target: v.Name, Value: ir.Cast{Type: v.Type(), Operand: ir.Var{Name: v.Name}}})
		}
	}
	return nil
}

func (cg *CodeGen) genOutput(out *Output) error {
	for _, e := range out.Values {
		v, err := cg.genExpr(e, true)
		if err != nil {
			return err
		}
		cg.line(ir.Output{Value: v.Expr()})
	}
	return nil
}
