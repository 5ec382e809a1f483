package vm

import (
	"fmt"
	"io"

	"github.com/kievzenit/exprc/internal/bytecode"
	"github.com/kievzenit/exprc/internal/compiler_errors"
	"github.com/pkg/errors"
)

var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrStackNotEmpty  = errors.New("stack not empty at exit")
)

var intArithmetic = map[bytecode.OpCode]func(a, b int32) int32{
	bytecode.AddInt:      func(a, b int32) int32 { return a + b },
	bytecode.SubtractInt: func(a, b int32) int32 { return a - b },
	bytecode.MultiplyInt: func(a, b int32) int32 { return a * b },
	bytecode.AndInt:      func(a, b int32) int32 { return a & b },
	bytecode.XorInt:      func(a, b int32) int32 { return a ^ b },
	bytecode.OrInt:       func(a, b int32) int32 { return a | b },
	bytecode.LeftShiftInt: func(a, b int32) int32 {
		return a << (uint32(b) & 31)
	},
	bytecode.RightShiftInt: func(a, b int32) int32 {
		return a >> (uint32(b) & 31)
	},
}

var intComparisons = map[bytecode.OpCode]func(a, b int32) bool{
	bytecode.LessInt:         func(a, b int32) bool { return a < b },
	bytecode.LessEqualInt:    func(a, b int32) bool { return a <= b },
	bytecode.GreaterInt:      func(a, b int32) bool { return a > b },
	bytecode.GreaterEqualInt: func(a, b int32) bool { return a >= b },
	bytecode.EqualityInt:     func(a, b int32) bool { return a == b },
	bytecode.InequalityInt:   func(a, b int32) bool { return a != b },
}

var byteOperations = map[bytecode.OpCode]func(a, b byte) byte{
	bytecode.AndByte:        func(a, b byte) byte { return a & b },
	bytecode.XorByte:        func(a, b byte) byte { return a ^ b },
	bytecode.OrByte:         func(a, b byte) byte { return a | b },
	bytecode.EqualityByte:   func(a, b byte) byte { return fromBool(a == b) },
	bytecode.InequalityByte: func(a, b byte) byte { return fromBool(a != b) },
}

// Machine executes compiled programs on a byte stack. Ints take four bytes
// of the stack and bools take one.
type Machine struct {
	code []byte
	out  io.Writer

	stack []byte
}

func NewMachine(code []byte, out io.Writer) *Machine {
	return &Machine{
		code: code,
		out:  out,
	}
}

// Run executes the program. Faults a valid program can hit, such as a
// division by zero, come back as logs. An error means the bytecode itself
// is malformed.
func (m *Machine) Run() ([]compiler_errors.Log, error) {
	m.stack = m.stack[:0]

	reader, err := bytecode.NewReader(m.code)
	if err != nil {
		return nil, err
	}

	target := reader.Target()
	if target.WordWidth != bytecode.HostTarget(false).WordWidth {
		return []compiler_errors.Log{
			compiler_errors.NewError(compiler_errors.CompiledForDifferentTarget{Bits: target.Bits()}),
		}, nil
	}

	for !reader.Done() {
		instruction, err := reader.Next()
		if err != nil {
			return nil, err
		}

		fault, err := m.execute(instruction)
		if err != nil {
			return nil, errors.Wrapf(err, "%s at offset %d", instruction.Op, instruction.Offset)
		}
		if fault != nil {
			return []compiler_errors.Log{*fault}, nil
		}
	}

	if len(m.stack) != 0 {
		return nil, errors.Wrapf(ErrStackNotEmpty, "%d bytes left", len(m.stack))
	}
	return nil, nil
}

func (m *Machine) execute(instruction bytecode.Instruction) (*compiler_errors.Log, error) {
	op := instruction.Op

	if operation, ok := intArithmetic[op]; ok {
		a, b, err := m.popInts()
		if err != nil {
			return nil, err
		}
		m.pushInt(operation(a, b))
		return nil, nil
	}

	if comparison, ok := intComparisons[op]; ok {
		a, b, err := m.popInts()
		if err != nil {
			return nil, err
		}
		m.pushByte(fromBool(comparison(a, b)))
		return nil, nil
	}

	if operation, ok := byteOperations[op]; ok {
		b, err := m.popByte()
		if err != nil {
			return nil, err
		}
		a, err := m.popByte()
		if err != nil {
			return nil, err
		}
		m.pushByte(operation(a, b))
		return nil, nil
	}

	switch op {
	case bytecode.PushInt:
		m.pushInt(instruction.Int())
	case bytecode.PushByte:
		m.pushByte(instruction.Byte())
	case bytecode.PopInt:
		_, err := m.popInt()
		return nil, err
	case bytecode.PopByte:
		_, err := m.popByte()
		return nil, err
	case bytecode.PrintInt:
		v, err := m.popInt()
		if err != nil {
			return nil, err
		}
		return nil, m.print(v)
	case bytecode.PrintByte:
		v, err := m.popByte()
		if err != nil {
			return nil, err
		}
		return nil, m.print(v != 0)
	case bytecode.MinusInt:
		return nil, m.unaryInt(func(a int32) int32 { return -a })
	case bytecode.ComplementInt:
		return nil, m.unaryInt(func(a int32) int32 { return ^a })
	case bytecode.Not:
		v, err := m.popByte()
		if err != nil {
			return nil, err
		}
		m.pushByte(fromBool(v == 0))
	case bytecode.DivideInt, bytecode.ModuloInt:
		return m.divide(instruction)
	default:
		panic("unreachable")
	}

	return nil, nil
}

// divide handles DivideInt and ModuloInt. Go defines MinInt32 / -1 as
// MinInt32, which is the wrapping result.
func (m *Machine) divide(instruction bytecode.Instruction) (*compiler_errors.Log, error) {
	a, b, err := m.popInts()
	if err != nil {
		return nil, err
	}

	if b == 0 {
		line, column := instruction.Position()
		fault := compiler_errors.NewError(compiler_errors.DivideByZero{}).At(int(line), int(column))
		return &fault, nil
	}

	if instruction.Op == bytecode.DivideInt {
		m.pushInt(a / b)
	} else {
		m.pushInt(a % b)
	}
	return nil, nil
}

func (m *Machine) unaryInt(operation func(a int32) int32) error {
	v, err := m.popInt()
	if err != nil {
		return err
	}
	m.pushInt(operation(v))
	return nil
}

func (m *Machine) print(v any) error {
	if _, err := fmt.Fprintln(m.out, v); err != nil {
		return errors.Wrap(err, "writing result")
	}
	return nil
}

func (m *Machine) pushInt(v int32) {
	m.stack = bytecode.AppendLE(m.stack, v, bytecode.IntSize)
}

func (m *Machine) pushByte(v byte) {
	m.stack = append(m.stack, v)
}

func (m *Machine) popInt() (int32, error) {
	top := len(m.stack) - bytecode.IntSize
	if top < 0 {
		return 0, errors.Wrapf(ErrStackUnderflow, "need %d bytes, have %d", bytecode.IntSize, len(m.stack))
	}

	v, err := bytecode.ReadLE[int32](m.stack[top:], bytecode.IntSize)
	if err != nil {
		return 0, err
	}
	m.stack = m.stack[:top]
	return v, nil
}

// popInts pops the right operand and then the left one.
func (m *Machine) popInts() (a, b int32, err error) {
	if b, err = m.popInt(); err != nil {
		return 0, 0, err
	}
	if a, err = m.popInt(); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func (m *Machine) popByte() (byte, error) {
	if len(m.stack) == 0 {
		return 0, errors.Wrap(ErrStackUnderflow, "need 1 byte, have 0")
	}

	top := len(m.stack) - 1
	v := m.stack[top]
	m.stack = m.stack[:top]
	return v, nil
}

func fromBool(b bool) byte {
	if b {
		return 1
	}
	return 0
}
