package vm

import (
	"bytes"
	"fmt"
	"math/bits"
	"testing"

	"github.com/kievzenit/exprc/internal/bytecode"
	"github.com/kievzenit/exprc/internal/compiler_errors"
	"github.com/kievzenit/exprc/internal/emitter"
	"github.com/kievzenit/exprc/internal/lexer"
	"github.com/kievzenit/exprc/internal/parser"
	"github.com/kievzenit/exprc/internal/semantic_analyzer"
	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

func compile(t *testing.T, src string, target bytecode.Target) []byte {
	t.Helper()
	tokens, logs := lexer.NewLexer([]byte(src)).Tokenize()
	stmtList, parseLogs := parser.NewParser(lexer.NewTokenScanner(tokens)).Parse()
	fileHir := semantic_analyzer.Analyze(stmtList, append(logs, parseLogs...), src)
	output := emitter.Compile(fileHir, target)
	if compiler_errors.HasError(output.Logs) {
		t.Fatalf("%q does not compile: %v", src, compiler_errors.AllToString(output.Logs))
	}
	return output.Bytecode
}

func run(t *testing.T, code []byte) (string, []compiler_errors.Log) {
	t.Helper()
	var out bytes.Buffer
	logs, err := NewMachine(code, &out).Run()
	if err != nil {
		t.Fatalf("run: %+v", err)
	}
	return out.String(), logs
}

func TestRunPrintsResult(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"3 + 4 * 2", "11"},
		{"(3 + 4) * 2", "14"},
		{"10 - 20", "-10"},
		{"-7 / 2", "-3"},
		{"-7 % 2", "-1"},
		{"7 % 3", "1"},
		{"-2147483648", "-2147483648"},
		{"2147483647 + 1", "-2147483648"},
		{"-2147483648 / -1", "-2147483648"},
		{"65536 * 65536", "0"},
		{"1 << 33", "2"},
		{"-8 >> 1", "-4"},
		{"1 << -1", "-2147483648"},
		{"~0", "-1"},
		{"6 & 3 ^ 1 | 8", "11"},
		{"1 == 1", "true"},
		{"1 != 1", "false"},
		{"true == false", "false"},
		{"true != false", "true"},
		{"true ^ true | false", "false"},
		{"!(1 > 2) & 3 <= 3", "true"},
		{"2 >= 3 | 2 < 3", "true"},
		{"1; 2", "2"},
		{"true; false; 5 - -5", "10"},
	}

	for _, c := range cases {
		output, logs := run(t, compile(t, c.src, bytecode.HostTarget(true)))
		if len(logs) != 0 {
			t.Errorf("%q: unexpected logs %v", c.src, compiler_errors.AllToString(logs))
			continue
		}
		if output != c.want+"\n" {
			t.Errorf("%q: printed %q, want %q", c.src, output, c.want+"\n")
		}
	}
}

func TestRunWithoutPrinting(t *testing.T) {
	for _, src := range []string{"1 + 2", "true", "1;", ""} {
		output, logs := run(t, compile(t, src, bytecode.HostTarget(false)))
		if output != "" || len(logs) != 0 {
			t.Errorf("%q: printed %q, logs %v", src, output, compiler_errors.AllToString(logs))
		}
	}

	// a Unit program has nothing to print even when asked to
	output, _ := run(t, compile(t, "1; 2;", bytecode.HostTarget(true)))
	if output != "" {
		t.Errorf("unit program printed %q", output)
	}
}

func TestRunDivideByZero(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{"10 / 0", []string{"error (line 1:4): division by zero."}},
		{"1 +\n 10 % (3 - 3)", []string{"error (line 2:5): division by zero."}},
		{"1 / 0; 2 / 0", []string{"error (line 1:3): division by zero."}},
	}

	for _, c := range cases {
		output, logs := run(t, compile(t, c.src, bytecode.HostTarget(true)))
		if output != "" {
			t.Errorf("%q: printed %q", c.src, output)
		}
		if diff := pretty.Diff(compiler_errors.AllToString(logs), c.want); len(diff) != 0 {
			t.Errorf("%q: %v", c.src, diff)
		}
	}
}

func TestRunRejectsOtherTargets(t *testing.T) {
	if bits.UintSize == 8 {
		t.Skip("host is already the narrowest target")
	}

	code := compile(t, "1 + 1", bytecode.Target{WordWidth: 1, PrintResult: true})
	output, logs := run(t, code)
	if output != "" {
		t.Errorf("printed %q", output)
	}

	want := []string{fmt.Sprintf(
		"error: this program was compiled for a 8-bit machine, while this is only a %d-bit machine.",
		bits.UintSize)}
	if diff := pretty.Diff(compiler_errors.AllToString(logs), want); len(diff) != 0 {
		t.Errorf("logs: %v", diff)
	}
}

func TestRunMalformedBytecode(t *testing.T) {
	width := bytecode.HostTarget(false).WordWidth

	cases := []struct {
		name string
		code []byte
		want error
	}{
		{"missing header", []byte{width}, bytecode.ErrMissingHeader},
		{"unknown opcode", []byte{width, 0, 0x7f}, bytecode.ErrUnknownOpCode},
		{"truncated push", []byte{width, 0, byte(bytecode.PushInt), 1}, bytecode.ErrTruncated},
		{"pop from empty stack", []byte{width, 0, byte(bytecode.PopInt)}, ErrStackUnderflow},
		{"add with one operand", []byte{width, 0, byte(bytecode.PushInt), 1, 0, 0, 0, byte(bytecode.AddInt)}, ErrStackUnderflow},
		{"not on empty stack", []byte{width, 0, byte(bytecode.Not)}, ErrStackUnderflow},
		{"leftover value", []byte{width, 0, byte(bytecode.PushByte), 1}, ErrStackNotEmpty},
	}

	for _, c := range cases {
		_, err := NewMachine(c.code, &bytes.Buffer{}).Run()
		if errors.Cause(err) != c.want {
			t.Errorf("%s: got %v, want %v", c.name, err, c.want)
		}
	}
}

func TestRunIsRepeatable(t *testing.T) {
	machine := NewMachine(compile(t, "2 * 21", bytecode.HostTarget(true)), &bytes.Buffer{})
	for i := 0; i < 2; i++ {
		if logs, err := machine.Run(); err != nil || len(logs) != 0 {
			t.Fatalf("run %d: %v %v", i, err, logs)
		}
	}
}
