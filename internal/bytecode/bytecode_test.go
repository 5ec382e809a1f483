package bytecode

import (
	"math/bits"
	"testing"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

func TestOpCodeValues(t *testing.T) {
	want := map[OpCode]byte{
		PushInt: 0x00, PushByte: 0x01, PopInt: 0x02, PopByte: 0x03, PrintInt: 0x04, PrintByte: 0x05,
		MinusInt: 0x10, AddInt: 0x11, SubtractInt: 0x12, MultiplyInt: 0x13, DivideInt: 0x14, ModuloInt: 0x15,
		Not: 0x20,
		ComplementInt: 0x30, AndInt: 0x31, AndByte: 0x32, XorInt: 0x33, XorByte: 0x34, OrInt: 0x35, OrByte: 0x36,
		LeftShiftInt: 0x40, RightShiftInt: 0x41,
		LessInt: 0x50, LessEqualInt: 0x51, GreaterInt: 0x52, GreaterEqualInt: 0x53,
		EqualityInt: 0x60, EqualityByte: 0x61, InequalityInt: 0x62, InequalityByte: 0x63,
	}

	if len(want) != len(opCodeNames) {
		t.Fatalf("%d opcodes named, %d expected", len(opCodeNames), len(want))
	}

	seen := make(map[string]bool)
	for op, value := range want {
		if byte(op) != value {
			t.Errorf("%s = 0x%02x, want 0x%02x", op, byte(op), value)
		}
		if byte(op) >= 0x70 {
			t.Errorf("%s is in the reserved range", op)
		}
		if seen[op.String()] {
			t.Errorf("duplicate name %s", op)
		}
		seen[op.String()] = true
	}
}

func TestOpCodeString(t *testing.T) {
	if got := GreaterEqualInt.String(); got != "GreaterEqualInt" {
		t.Errorf("got %q", got)
	}
	if got := OpCode(0x7f).String(); got != "OpCode(0x7f)" {
		t.Errorf("got %q", got)
	}
	if OpCode(0x7f).IsValid() {
		t.Error("reserved opcode reported valid")
	}
}

func TestOperandSize(t *testing.T) {
	cases := []struct {
		op    OpCode
		width uint8
		want  int
	}{
		{PushInt, 8, 4},
		{PushByte, 8, 1},
		{DivideInt, 1, 2},
		{ModuloInt, 8, 16},
		{AddInt, 8, 0},
		{PrintByte, 2, 0},
	}

	for _, c := range cases {
		if got := c.op.OperandSize(c.width); got != c.want {
			t.Errorf("%s at width %d: %d, want %d", c.op, c.width, got, c.want)
		}
	}
}

func TestAppendLE(t *testing.T) {
	cases := []struct {
		name string
		got  []byte
		want []byte
	}{
		{"int32", AppendLE(nil, int32(-2), 4), []byte{0xfe, 0xff, 0xff, 0xff}},
		{"truncated", AppendLE(nil, 0x1234, 1), []byte{0x34}},
		{"padded", AppendLE(nil, uint16(0x1234), 4), []byte{0x34, 0x12, 0, 0}},
		{"padded int", AppendLE(nil, 7, 8), []byte{7, 0, 0, 0, 0, 0, 0, 0}},
		{"appends", AppendLE([]byte{0xaa}, uint8(1), 2), []byte{0xaa, 1, 0}},
	}

	for _, c := range cases {
		if diff := pretty.Diff(c.got, c.want); len(diff) != 0 {
			t.Errorf("%s: %v", c.name, diff)
		}
	}
}

func TestReadLE(t *testing.T) {
	v, err := ReadLE[int32]([]byte{0xfe, 0xff, 0xff, 0xff}, 4)
	if err != nil || v != -2 {
		t.Errorf("int32: %d, %v", v, err)
	}

	u, err := ReadLE[uint64]([]byte{0x34, 0x12, 0xff}, 2)
	if err != nil || u != 0x1234 {
		t.Errorf("uint64: %d, %v", u, err)
	}

	_, err = ReadLE[int32]([]byte{1, 2}, 4)
	if errors.Cause(err) != ErrTruncated {
		t.Errorf("short buffer: %v", err)
	}
}

func TestTarget(t *testing.T) {
	target, err := NewTarget(4, true)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(target.Header(), []byte{4, 1}); len(diff) != 0 {
		t.Errorf("header: %v", diff)
	}
	if target.Bits() != 32 {
		t.Errorf("bits = %d", target.Bits())
	}

	for _, width := range []uint8{0, 9} {
		if _, err := NewTarget(width, false); errors.Cause(err) != ErrInvalidWordWidth {
			t.Errorf("width %d: %v", width, err)
		}
	}

	if host := HostTarget(false); host.Bits() != bits.UintSize {
		t.Errorf("host bits = %d, want %d", host.Bits(), bits.UintSize)
	}
}

func TestParseHeader(t *testing.T) {
	target, err := ParseHeader([]byte{2, 0, byte(PushInt)})
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(target, Target{WordWidth: 2}); len(diff) != 0 {
		t.Errorf("target: %v", diff)
	}

	if _, err := ParseHeader([]byte{8}); errors.Cause(err) != ErrMissingHeader {
		t.Errorf("short header: %v", err)
	}
	if _, err := ParseHeader([]byte{8, 2}); errors.Cause(err) != ErrInvalidMode {
		t.Errorf("bad mode: %v", err)
	}
}

func TestReaderErrors(t *testing.T) {
	cases := []struct {
		name string
		code []byte
		want error
	}{
		{"unknown opcode", []byte{8, 0, 0x7f}, ErrUnknownOpCode},
		{"truncated int", []byte{8, 0, byte(PushInt), 1, 2}, ErrTruncated},
		{"truncated position", []byte{2, 0, byte(DivideInt), 1, 0, 1}, ErrTruncated},
	}

	for _, c := range cases {
		reader, err := NewReader(c.code)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if _, err := reader.Next(); errors.Cause(err) != c.want {
			t.Errorf("%s: got %v, want %v", c.name, err, c.want)
		}
	}
}

func TestDisassemble(t *testing.T) {
	code := []byte{
		2, 1,
		byte(PushInt), 10, 0, 0, 0,
		byte(PushInt), 0, 0, 0, 0,
		byte(DivideInt), 1, 0, 4, 0,
		byte(PushByte), 1,
		byte(PopByte),
		byte(PrintInt),
	}

	got, err := Disassemble(code)
	if err != nil {
		t.Fatal(err)
	}

	want := "; 16-bit target, print result\n" +
		"0002  PushInt 10\n" +
		"0007  PushInt 0\n" +
		"0012  DivideInt @1:4\n" +
		"0017  PushByte 1\n" +
		"0019  PopByte\n" +
		"0020  PrintInt\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
