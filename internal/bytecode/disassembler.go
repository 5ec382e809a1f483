package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders code as one instruction per line, preceded by a
// line describing the header.
func Disassemble(code []byte) (string, error) {
	reader, err := NewReader(code)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	target := reader.Target()
	mode := "discard result"
	if target.PrintResult {
		mode = "print result"
	}
	fmt.Fprintf(&sb, "; %d-bit target, %s\n", target.Bits(), mode)

	for !reader.Done() {
		instruction, err := reader.Next()
		if err != nil {
			return sb.String(), err
		}

		fmt.Fprintf(&sb, "%04d  %s", instruction.Offset, instruction.Op)
		switch instruction.Op {
		case PushInt:
			fmt.Fprintf(&sb, " %d", instruction.Int())
		case PushByte:
			fmt.Fprintf(&sb, " %d", instruction.Byte())
		case DivideInt, ModuloInt:
			line, column := instruction.Position()
			fmt.Fprintf(&sb, " @%d:%d", line, column)
		}
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}
