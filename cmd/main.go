package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kievzenit/exprc/internal/bytecode"
	"github.com/kievzenit/exprc/internal/cli"
	"github.com/kievzenit/exprc/internal/compiler_errors"
	"github.com/kievzenit/exprc/internal/emitter"
	l "github.com/kievzenit/exprc/internal/lexer"
	"github.com/kievzenit/exprc/internal/parser"
	"github.com/kievzenit/exprc/internal/semantic_analyzer"
	"github.com/kievzenit/exprc/internal/vm"
	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
)

func main() {
	eh := compiler_errors.NewErrorHandler(os.Stderr)
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "%+v\n", r)
			eh.FailNow(nil)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdout, eh))
}

func run(args []string, stdout io.Writer, eh compiler_errors.ErrorHandler) int {
	config, logs := cli.Parse(args)
	if compiler_errors.HasError(logs) {
		return cantCompile(eh, logs)
	}

	source, fileLogs := cli.ReadSource(config)
	logs = append(logs, fileLogs...)
	if compiler_errors.HasError(logs) {
		return cantCompile(eh, logs)
	}

	lexer := l.NewLexer([]byte(source))
	tokens, lexLogs := lexer.Tokenize()
	logs = append(logs, lexLogs...)

	parser := parser.NewParser(l.NewTokenScanner(tokens))
	stmtList, parseLogs := parser.Parse()
	logs = append(logs, parseLogs...)

	fileHir := semantic_analyzer.Analyze(stmtList, logs, source)
	if config.Dump && fileHir.Root != nil {
		fmt.Fprintln(stdout, litter.Sdump(fileHir.Root))
	}

	output := emitter.Compile(fileHir, config.Target)
	if compiler_errors.HasError(output.Logs) {
		return cantCompile(eh, output.Logs)
	}
	eh.Report(output.Logs)

	if config.Disasm {
		listing, err := bytecode.Disassemble(output.Bytecode)
		if err != nil {
			panic(errors.Wrap(err, "disassembling compiled program"))
		}
		fmt.Fprint(stdout, listing)
	}

	runtimeLogs, err := vm.NewMachine(output.Bytecode, stdout).Run()
	if err != nil {
		panic(errors.Wrap(err, "running compiled program"))
	}
	if eh.Report(runtimeLogs) {
		return 1
	}
	return 0
}

func cantCompile(eh compiler_errors.ErrorHandler, logs []compiler_errors.Log) int {
	eh.Report(append(logs, compiler_errors.NewError(compiler_errors.CantCompile{})))
	return 1
}
