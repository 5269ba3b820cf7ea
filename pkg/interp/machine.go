package interp

import (
	"errors"
	"fmt"
	"io"

	"gotranslator/pkg/ir"
)

// LoadError reports a program that cannot be prepared for execution.
type LoadError struct {
	Index int // instruction index of the offending label
	Label string
	Msg   string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error at instruction %d: %s %s", e.Index, e.Msg, e.Label)
}

// RuntimeError is a fatal error raised while executing an instruction.
type RuntimeError struct {
	Index int
	Instr ir.Instr
	Err   error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at instruction %d (%s): %v", e.Index, e.Instr, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// ErrEndOfInput is wrapped by the RuntimeError raised when Input runs out
// of terminal lines.
var ErrEndOfInput = errors.New("end of input")

// Machine executes a loaded IR program against a Terminal. The variable
// environment is flat: every variable, temporaries included, lives in Vars.
type Machine struct {
	Term Terminal

	Vars   map[string]Value
	PC     int // index of the next instruction
	Halted bool
	Steps  int

	program []ir.Instr
	labels  map[string]int
}

func NewMachine(term Terminal) *Machine {
	return &Machine{Term: term}
}

// Load installs program and resets all execution state. Label names must
// be unique.
func (m *Machine) Load(program []ir.Instr) error {
	labels := make(map[string]int)
	for i, in := range program {
		l, ok := in.(ir.Label)
		if !ok {
			continue
		}
		if _, exists := labels[l.Name]; exists {
			return &LoadError{Index: i, Label: l.Name, Msg: "duplicate label"}
		}
		labels[l.Name] = i
	}

	m.program = program
	m.labels = labels
	m.Vars = make(map[string]Value)
	m.PC = 0
	m.Steps = 0
	m.Halted = len(program) == 0
	return nil
}

// Step executes one instruction. Falling off the end of the program halts
// the machine.
func (m *Machine) Step() error {
	if m.Halted {
		return nil
	}
	if m.PC >= len(m.program) {
		m.Halted = true
		return nil
	}

	idx := m.PC
	in := m.program[idx]
	m.PC++
	m.Steps++

	if err := m.exec(in); err != nil {
		// leave PC on the failing instruction so a restored snapshot retries it
		m.PC = idx
		m.Halted = true
		return &RuntimeError{Index: idx, Instr: in, Err: err}
	}
	if m.PC >= len(m.program) {
		m.Halted = true
	}
	return nil
}

func (m *Machine) exec(in ir.Instr) error {
	switch n := in.(type) {
	case ir.Label:
		return nil

	case ir.Goto:
		return m.jump(n.Label)

	case ir.CondJump:
		cond, err := m.eval(n.Cond)
		if err != nil {
			return err
		}
		if cond.Type != ir.Bool {
			return fmt.Errorf("condition evaluated to %s, not Bool", cond.Type)
		}
		if cond.Bool {
			return m.jump(n.Label)
		}
		return nil

	case ir.Input:
		text, err := m.Term.Read()
		if errors.Is(err, io.EOF) {
			return ErrEndOfInput
		}
		if err != nil {
			return err
		}
		m.Vars[n.Target] = StringValue(text)
		return nil

	case ir.Output:
		v, err := m.eval(n.Value)
		if err != nil {
			return err
		}
		return m.Term.Write(v.String())

	case ir.Assign:
		v, err := m.eval(n.Value)
		if err != nil {
			return err
		}
		m.Vars[n.Target] = v
		return nil
	}
	return fmt.Errorf("unsupported instruction %T", in)
}

func (m *Machine) jump(label string) error {
	target, ok := m.labels[label]
	if !ok {
		return fmt.Errorf("jump to undefined label %s", label)
	}
	m.PC = target
	return nil
}

func (m *Machine) eval(e ir.Expr) (Value, error) {
	switch n := e.(type) {
	case ir.Var:
		v, ok := m.Vars[n.Name]
		if !ok {
			return Value{}, fmt.Errorf("variable %s read before assignment", n.Name)
		}
		return v, nil
	case ir.Unary:
		operand, err := m.eval(n.Operand)
		if err != nil {
			return Value{}, err
		}
		return unaryOp(n.Op, operand)
	case ir.Binary:
		l, err := m.eval(n.Left)
		if err != nil {
			return Value{}, err
		}
		r, err := m.eval(n.Right)
		if err != nil {
			return Value{}, err
		}
		return binaryOp(n.Op, l, r)
	case ir.Cast:
		v, err := m.eval(n.Operand)
		if err != nil {
			return Value{}, err
		}
		return cast(n.Type, v)
	case ir.Operand:
		if v, ok := constant(n); ok {
			return v, nil
		}
	}
	return Value{}, fmt.Errorf("unsupported expression %T", e)
}

// Run opens the terminal, steps until the machine halts or an instruction
// fails, and closes the terminal.
func (m *Machine) Run() (err error) {
	if err := m.Term.Open(); err != nil {
		return err
	}
	defer func() {
		if cerr := m.Term.Close(); err == nil {
			err = cerr
		}
	}()

	for !m.Halted {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Interpret parses IR text and runs it to completion on term. Every call
// starts from an empty environment.
func Interpret(text string, term Terminal) error {
	program, err := ir.Parse(text)
	if err != nil {
		return err
	}
	m := NewMachine(term)
	if err := m.Load(program); err != nil {
		return err
	}
	return m.Run()
}
