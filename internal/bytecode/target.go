package bytecode

import (
	"math/bits"

	"github.com/pkg/errors"
)

const (
	HeaderSize = 2
	// IntSize is the width in bytes of an int immediate and of an int on
	// the machine stack.
	IntSize = 4

	MinWordWidth = 1
	MaxWordWidth = 8
)

var (
	ErrInvalidWordWidth = errors.New("invalid word width")
	ErrMissingHeader    = errors.New("missing bytecode header")
	ErrInvalidMode      = errors.New("invalid output mode")
)

// Target describes the machine bytecode is compiled for. WordWidth is the
// pointer width in bytes and sizes the embedded source positions.
type Target struct {
	WordWidth   uint8
	PrintResult bool
}

func NewTarget(wordWidth uint8, printResult bool) (Target, error) {
	if wordWidth < MinWordWidth || wordWidth > MaxWordWidth {
		return Target{}, errors.Wrapf(
			ErrInvalidWordWidth,
			"word width must be between %d and %d bytes, got %d",
			MinWordWidth, MaxWordWidth, wordWidth)
	}

	return Target{
		WordWidth:   wordWidth,
		PrintResult: printResult,
	}, nil
}

func HostTarget(printResult bool) Target {
	return Target{
		WordWidth:   bits.UintSize / 8,
		PrintResult: printResult,
	}
}

func (t Target) Bits() int {
	return 8 * int(t.WordWidth)
}

func (t Target) Header() []byte {
	var mode byte
	if t.PrintResult {
		mode = 1
	}
	return []byte{t.WordWidth, mode}
}

// ParseHeader reads the target back from the first HeaderSize bytes of
// code. The width is not range checked so callers can report a mismatch
// against their own width.
func ParseHeader(code []byte) (Target, error) {
	if len(code) < HeaderSize {
		return Target{}, errors.Wrapf(ErrMissingHeader, "got %d bytes", len(code))
	}

	switch code[1] {
	case 0:
		return Target{WordWidth: code[0]}, nil
	case 1:
		return Target{WordWidth: code[0], PrintResult: true}, nil
	default:
		return Target{}, errors.Wrapf(ErrInvalidMode, "mode byte 0x%02x", code[1])
	}
}
