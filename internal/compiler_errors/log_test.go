package compiler_errors

import (
	"bytes"
	"fmt"
	"math/bits"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func TestHasError(t *testing.T) {
	warnings := []Log{
		NewWarning(CLIArgRoundedDown{Arg: "--target", Multiple: 8}),
		NewWarning(CLITargetLargerThanMachine{Bits: 128}),
	}
	if HasError(warnings) {
		t.Errorf("HasError(%v) = true, want false", AllToString(warnings))
	}

	mixed := []Log{
		NewWarning(CLIArgRoundedDown{Arg: "--target", Multiple: 8}),
		NewError(DivideByZero{}),
	}
	if !HasError(mixed) {
		t.Errorf("HasError(%v) = false, want true", AllToString(mixed))
	}

	if HasError(nil) {
		t.Error("HasError(nil) = true, want false")
	}
}

func TestRenderPlain(t *testing.T) {
	cases := []struct {
		log  Log
		want string
	}{
		{
			NewError(DivideByZero{}).At(3, 7),
			"error (line 3:7): division by zero.",
		},
		{
			NewError(ExcessiveBytecode{}),
			"error: could not compile as bytecode was too large.",
		},
		{
			NewWarning(CLIArgRoundedDown{Arg: "--target", Multiple: 8}),
			"warning: argument of \"--target\" will be rounded down to the nearest multiple of 8.",
		},
		{
			NewError(UnrecognizedToken{Token: "$"}).At(1, 2),
			"error (line 1:2): unrecognized token \"$\".",
		},
		{
			NewError(UnrepresentableIntegerLiteral{Token: "99999999999"}).At(1, 1),
			"error (line 1:1): int literal \"99999999999\" must be at most 2147483648.",
		},
		{
			NewError(UnnegatedMinimumIntegerLiteral{}).At(2, 1),
			"error (line 2:1): the int literal 2147483648 must be preceded by a unary '-' operator.",
		},
		{
			NewError(ExpectedCloseParen{}).At(1, 1),
			"error (line 1:1): expected ')' following '('.",
		},
		{
			NewError(CLIRequiresNumArgLessThan{Flag: "--target", Bound: 72}),
			"error: compiler flag \"--target\" requires an argument less than 72.",
		},
		{
			NewError(CLIRequiresNumArgAtLeast{Flag: "--target", Bound: 8}),
			"error: compiler flag \"--target\" requires an argument that's at least 8.",
		},
		{
			NewError(CantCompile{}),
			"error: could not compile due to errors.",
		},
		{
			NewError(CompiledForDifferentTarget{Bits: 16}),
			fmt.Sprintf("error: this program was compiled for a 16-bit machine, while this is only a %d-bit machine.", bits.UintSize),
		},
	}

	for i, c := range cases {
		if got := c.log.String(); got != c.want {
			t.Errorf("case %d: got %q, want %q", i+1, got, c.want)
		}
	}
}

func TestRenderFatalErrorIgnoresPosition(t *testing.T) {
	const want = "fatal error; program terminated"

	if got := NewError(FatalError{}).String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := NewError(FatalError{}).At(4, 2).String(); got != want {
		t.Errorf("positioned: got %q, want %q", got, want)
	}
}

func TestRenderOperandTypes(t *testing.T) {
	cases := []struct {
		types []string
		want  string
	}{
		{nil, "the operator \"-\" has no definition over the types "},
		{[]string{"bool"}, "the operator \"-\" has no definition over the types bool"},
		{[]string{"int", "bool"}, "the operator \"-\" has no definition over the types int and bool"},
		{[]string{"int", "bool", "int"}, "the operator \"-\" has no definition over the types int, bool, and int"},
		{[]string{"a", "b", "c", "d"}, "the operator \"-\" has no definition over the types a, b, c, and d"},
	}

	for _, c := range cases {
		kind := InvalidArgsForOperator{Op: "-", Types: c.types}
		if got := kind.GetMessage(); got != c.want {
			t.Errorf("types %v: got %q, want %q", c.types, got, c.want)
		}
	}
}

func TestRenderStyled(t *testing.T) {
	log := NewError(DivideByZero{}).At(1, 1)

	styled := log.Render(true)
	if !strings.Contains(styled, "\x1b[") {
		t.Errorf("styled output has no escape sequences: %q", styled)
	}
	if !strings.Contains(styled, "division by zero.") {
		t.Errorf("styled output lost the message: %q", styled)
	}

	if plain := log.Render(false); strings.Contains(plain, "\x1b[") {
		t.Errorf("plain output has escape sequences: %q", plain)
	}
}

func TestAtDoesNotMutate(t *testing.T) {
	base := NewError(UnexpectedToken{})
	positioned := base.At(2, 5)

	if _, ok := base.Pos(); ok {
		t.Errorf("At changed the receiver: %# v", pretty.Formatter(base))
	}

	want := Position{Line: 2, Column: 5}
	pos, ok := positioned.Pos()
	if diff := pretty.Diff(pos, want); !ok || len(diff) != 0 {
		t.Errorf("position mismatch: %v", diff)
	}
}

func TestLogCopiesShareNothing(t *testing.T) {
	original := NewError(DivideByZero{}).At(3, 7)
	logs := []Log{original}
	copied := logs[0]

	copied.pos.Line = 99
	if got := copied.String(); got != "error (line 99:7): division by zero." {
		t.Errorf("copy: %q", got)
	}

	for _, log := range []Log{original, logs[0], copied.At(3, 7)} {
		if got := log.String(); got != "error (line 3:7): division by zero." {
			t.Errorf("got %q", got)
		}
	}
}

func TestAllToString(t *testing.T) {
	logs := []Log{
		NewWarning(CLITargetLargerThanMachine{Bits: 128}),
		NewError(UnexpectedEOF{}).At(1, 4),
	}

	want := []string{
		fmt.Sprintf("warning: this program is being compiled for a 128-bit machine, while this is only a %d-bit machine.", bits.UintSize),
		"error (line 1:4): unexpected end of file.",
	}

	if diff := pretty.Diff(AllToString(logs), want); len(diff) != 0 {
		t.Errorf("AllToString mismatch: %v", diff)
	}
}

func TestErrorHandlerReport(t *testing.T) {
	var out bytes.Buffer
	eh := NewErrorHandler(&out)

	failed := eh.Report([]Log{
		NewWarning(CLIArgRoundedDown{Arg: "-t", Multiple: 8}),
		NewError(DivideByZero{}).At(1, 3),
	})
	if !failed {
		t.Error("Report returned false for a list with an error")
	}

	want := "warning: argument of \"-t\" will be rounded down to the nearest multiple of 8.\n" +
		"error (line 1:3): division by zero.\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}
