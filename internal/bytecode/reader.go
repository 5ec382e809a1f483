package bytecode

import (
	"github.com/pkg/errors"
)

var ErrUnknownOpCode = errors.New("unknown opcode")

// Instruction is one decoded opcode with its raw operand bytes. Offset is
// counted from the start of the code, header included.
type Instruction struct {
	Offset   int
	Op       OpCode
	Operands []byte

	wordWidth uint8
}

func (i Instruction) Int() int32 {
	v, err := ReadLE[int32](i.Operands, IntSize)
	if err != nil {
		panic("Instruction.Int(): " + i.Op.String() + " has no int operand")
	}
	return v
}

func (i Instruction) Byte() byte {
	if len(i.Operands) != 1 {
		panic("Instruction.Byte(): " + i.Op.String() + " has no byte operand")
	}
	return i.Operands[0]
}

// Position returns the source line and column embedded after a divide or
// modulo opcode.
func (i Instruction) Position() (line, column uint64) {
	width := int(i.wordWidth)
	if len(i.Operands) != 2*width {
		panic("Instruction.Position(): " + i.Op.String() + " has no position operand")
	}

	line, _ = ReadLE[uint64](i.Operands, width)
	column, _ = ReadLE[uint64](i.Operands[width:], width)
	return line, column
}

// Reader walks the instructions of a compiled program.
type Reader struct {
	code   []byte
	target Target

	pos int
}

func NewReader(code []byte) (*Reader, error) {
	target, err := ParseHeader(code)
	if err != nil {
		return nil, err
	}

	return &Reader{
		code:   code,
		target: target,

		pos: HeaderSize,
	}, nil
}

func (r *Reader) Target() Target {
	return r.target
}

func (r *Reader) Done() bool {
	return r.pos >= len(r.code)
}

func (r *Reader) Next() (Instruction, error) {
	if r.Done() {
		return Instruction{}, errors.Wrapf(ErrTruncated, "no instruction at offset %d", r.pos)
	}

	offset := r.pos
	op := OpCode(r.code[offset])
	if !op.IsValid() {
		return Instruction{}, errors.Wrapf(ErrUnknownOpCode, "0x%02x at offset %d", byte(op), offset)
	}

	size := op.OperandSize(r.target.WordWidth)
	operands := r.code[offset+1:]
	if len(operands) < size {
		return Instruction{}, errors.Wrapf(
			ErrTruncated,
			"%s at offset %d needs %d operand bytes, have %d",
			op, offset, size, len(operands))
	}

	r.pos = offset + 1 + size
	return Instruction{
		Offset:   offset,
		Op:       op,
		Operands: operands[:size:size],

		wordWidth: r.target.WordWidth,
	}, nil
}
