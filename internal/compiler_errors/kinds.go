package compiler_errors

import (
	"fmt"
	"math/bits"

	"github.com/dustin/go-humanize/english"
)

// MinIntLiteral is the magnitude of the smallest int. It is the largest
// literal the lexer accepts and only valid right after a unary '-'.
const MinIntLiteral uint32 = 0x8000_0000

const fatalErrorMessage = "fatal error; program terminated"

type warning struct{}

func (warning) Severity() Severity { return SeverityWarning }
func (warning) warningKind()       {}

type failure struct{}

func (failure) Severity() Severity { return SeverityError }
func (failure) errorKind()         {}

// Warnings.

type CLIArgRoundedDown struct {
	warning
	Arg      string
	Multiple uint16
}

func (w CLIArgRoundedDown) GetMessage() string {
	return fmt.Sprintf("argument of \"%s\" will be rounded down to the nearest multiple of %d.", w.Arg, w.Multiple)
}

type CLITargetLargerThanMachine struct {
	warning
	Bits int
}

func (w CLITargetLargerThanMachine) GetMessage() string {
	return fmt.Sprintf(
		"this program is being compiled for a %d-bit machine, while this is only a %d-bit machine.",
		w.Bits,
		bits.UintSize)
}

// FatalError renders a fixed message regardless of position.
type FatalError struct{ failure }

func (FatalError) GetMessage() string { return fatalErrorMessage }

// Command line errors.

type CLIMultipleFiles struct{ failure }

func (CLIMultipleFiles) GetMessage() string { return "command line contains multiple files." }

type CLICantReadArgs struct{ failure }

func (CLICantReadArgs) GetMessage() string { return "could not read command line arguments." }

type CLINoArgs struct{ failure }

func (CLINoArgs) GetMessage() string { return "no command line arguments." }

type CLIRequiresArg struct {
	failure
	Flag string
}

func (e CLIRequiresArg) GetMessage() string {
	return fmt.Sprintf("compiler flag \"%s\" requires an argument.", e.Flag)
}

type CLIRequiresNumArg struct {
	failure
	Flag string
}

func (e CLIRequiresNumArg) GetMessage() string {
	return fmt.Sprintf("compiler flag \"%s\" requires a numerical argument.", e.Flag)
}

type CLIRequiresNumArgLessThan struct {
	failure
	Flag  string
	Bound uint16
}

func (e CLIRequiresNumArgLessThan) GetMessage() string {
	return fmt.Sprintf("compiler flag \"%s\" requires an argument less than %d.", e.Flag, e.Bound)
}

type CLIRequiresNumArgAtLeast struct {
	failure
	Flag  string
	Bound uint16
}

func (e CLIRequiresNumArgAtLeast) GetMessage() string {
	return fmt.Sprintf("compiler flag \"%s\" requires an argument that's at least %d.", e.Flag, e.Bound)
}

type CLIRequiresBoolArg struct {
	failure
	Flag string
}

func (e CLIRequiresBoolArg) GetMessage() string {
	return fmt.Sprintf("compiler flag \"%s\" requires a boolean argument.", e.Flag)
}

type CLIUnrecognizedArg struct {
	failure
	Arg string
}

func (e CLIUnrecognizedArg) GetMessage() string {
	return fmt.Sprintf("unrecognized argument \"%s\".", e.Arg)
}

type CLICantOpenFile struct {
	failure
	Path string
}

func (e CLICantOpenFile) GetMessage() string {
	return fmt.Sprintf("could not open file \"%s\".", e.Path)
}

type CLINoFile struct{ failure }

func (CLINoFile) GetMessage() string { return "no source file entered." }

type CLIFileTooBig struct {
	failure
	Bits int
}

func (e CLIFileTooBig) GetMessage() string {
	return fmt.Sprintf("the file is too big to compile for a %d-bit machine.", e.Bits)
}

// Lexing, parsing and type errors.

type UnrecognizedToken struct {
	failure
	Token string
}

func (e UnrecognizedToken) GetMessage() string {
	return fmt.Sprintf("unrecognized token \"%s\".", e.Token)
}

type UnrepresentableIntegerLiteral struct {
	failure
	Token string
}

func (e UnrepresentableIntegerLiteral) GetMessage() string {
	return fmt.Sprintf("int literal \"%s\" must be at most %d.", e.Token, MinIntLiteral)
}

type InvalidArgsForOperator struct {
	failure
	Op    string
	Types []string
}

func (e InvalidArgsForOperator) GetMessage() string {
	return fmt.Sprintf(
		"the operator \"%s\" has no definition over the types %s",
		e.Op,
		english.OxfordWordSeries(e.Types, "and"))
}

type ExpectedEOF struct{ failure }

func (ExpectedEOF) GetMessage() string { return "expected end of file." }

type UnexpectedEOF struct{ failure }

func (UnexpectedEOF) GetMessage() string { return "unexpected end of file." }

type UnexpectedToken struct{ failure }

func (UnexpectedToken) GetMessage() string { return "unexpected token." }

type ExpectedExpressionInParens struct{ failure }

func (ExpectedExpressionInParens) GetMessage() string {
	return "expected expression within parentheses."
}

type ExpectedCloseParen struct{ failure }

func (ExpectedCloseParen) GetMessage() string { return "expected ')' following '('." }

type UnnegatedMinimumIntegerLiteral struct{ failure }

func (UnnegatedMinimumIntegerLiteral) GetMessage() string {
	return fmt.Sprintf("the int literal %d must be preceded by a unary '-' operator.", MinIntLiteral)
}

// Compile and runtime errors.

type ExcessiveBytecode struct{ failure }

func (ExcessiveBytecode) GetMessage() string { return "could not compile as bytecode was too large." }

// CantCompile is reported once when a stage is skipped because of earlier
// errors.
type CantCompile struct{ failure }

func (CantCompile) GetMessage() string { return "could not compile due to errors." }

type CompiledForDifferentTarget struct {
	failure
	Bits int
}

func (e CompiledForDifferentTarget) GetMessage() string {
	return fmt.Sprintf(
		"this program was compiled for a %d-bit machine, while this is only a %d-bit machine.",
		e.Bits,
		bits.UintSize)
}

type DivideByZero struct{ failure }

func (DivideByZero) GetMessage() string { return "division by zero." }
