package compiler_errors

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ErrorHandler writes diagnostics to an output. It holds no diagnostics of
// its own; stages pass their log lists by value and the handler only
// reports them.
type ErrorHandler interface {
	Report(logs []Log) bool
	FailNow(logs []Log)
}

type CompilerErrorHandler struct {
	writer io.Writer
	styled bool
}

// NewErrorHandler returns a handler writing to outputWriter. Output is
// styled when outputWriter is a terminal.
func NewErrorHandler(outputWriter io.Writer) ErrorHandler {
	return &CompilerErrorHandler{
		writer: outputWriter,
		styled: isTerminal(outputWriter),
	}
}

func NewPlainErrorHandler(outputWriter io.Writer) ErrorHandler {
	return &CompilerErrorHandler{
		writer: outputWriter,
	}
}

// Report writes every log and reports whether any of them is an error.
func (eh *CompilerErrorHandler) Report(logs []Log) bool {
	for _, log := range logs {
		fmt.Fprintln(eh.writer, log.Render(eh.styled))
	}

	return HasError(logs)
}

// FailNow reports logs followed by a fatal error and exits.
func (eh *CompilerErrorHandler) FailNow(logs []Log) {
	eh.Report(logs)
	fmt.Fprintln(eh.writer, NewError(FatalError{}).Render(eh.styled))

	os.Exit(1)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
