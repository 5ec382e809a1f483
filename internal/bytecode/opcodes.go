package bytecode

import "fmt"

// OpCode is a single instruction byte. Values are fixed and grouped by
// the high nibble; 0x70 and above are reserved.
type OpCode byte

const (
	// stack
	PushInt   OpCode = 0x00
	PushByte  OpCode = 0x01
	PopInt    OpCode = 0x02
	PopByte   OpCode = 0x03
	PrintInt  OpCode = 0x04
	PrintByte OpCode = 0x05

	// arithmetic
	MinusInt    OpCode = 0x10
	AddInt      OpCode = 0x11
	SubtractInt OpCode = 0x12
	MultiplyInt OpCode = 0x13
	DivideInt   OpCode = 0x14
	ModuloInt   OpCode = 0x15

	// boolean
	Not OpCode = 0x20

	// bitwise
	ComplementInt OpCode = 0x30
	AndInt        OpCode = 0x31
	AndByte       OpCode = 0x32
	XorInt        OpCode = 0x33
	XorByte       OpCode = 0x34
	OrInt         OpCode = 0x35
	OrByte        OpCode = 0x36

	// shifts
	LeftShiftInt  OpCode = 0x40
	RightShiftInt OpCode = 0x41

	// comparison
	LessInt         OpCode = 0x50
	LessEqualInt    OpCode = 0x51
	GreaterInt      OpCode = 0x52
	GreaterEqualInt OpCode = 0x53

	// equality
	EqualityInt    OpCode = 0x60
	EqualityByte   OpCode = 0x61
	InequalityInt  OpCode = 0x62
	InequalityByte OpCode = 0x63
)

var opCodeNames = map[OpCode]string{
	PushInt:   "PushInt",
	PushByte:  "PushByte",
	PopInt:    "PopInt",
	PopByte:   "PopByte",
	PrintInt:  "PrintInt",
	PrintByte: "PrintByte",

	MinusInt:    "MinusInt",
	AddInt:      "AddInt",
	SubtractInt: "SubtractInt",
	MultiplyInt: "MultiplyInt",
	DivideInt:   "DivideInt",
	ModuloInt:   "ModuloInt",

	Not: "Not",

	ComplementInt: "ComplementInt",
	AndInt:        "AndInt",
	AndByte:       "AndByte",
	XorInt:        "XorInt",
	XorByte:       "XorByte",
	OrInt:         "OrInt",
	OrByte:        "OrByte",

	LeftShiftInt:  "LeftShiftInt",
	RightShiftInt: "RightShiftInt",

	LessInt:         "LessInt",
	LessEqualInt:    "LessEqualInt",
	GreaterInt:      "GreaterInt",
	GreaterEqualInt: "GreaterEqualInt",

	EqualityInt:    "EqualityInt",
	EqualityByte:   "EqualityByte",
	InequalityInt:  "InequalityInt",
	InequalityByte: "InequalityByte",
}

func (op OpCode) String() string {
	if name, ok := opCodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OpCode(0x%02x)", byte(op))
}

func (op OpCode) IsValid() bool {
	_, ok := opCodeNames[op]
	return ok
}

// OperandSize is the number of bytes following op in the instruction
// stream for a target with the given word width.
func (op OpCode) OperandSize(wordWidth uint8) int {
	switch op {
	case PushInt:
		return IntSize
	case PushByte:
		return 1
	case DivideInt, ModuloInt:
		return 2 * int(wordWidth)
	default:
		return 0
	}
}
