package compiler_errors

import (
	"fmt"

	"github.com/fatih/color"
)

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		panic(fmt.Sprintf("Severity.String(): received illegal severity: %d", s))
	}
}

// LogKind is anything that can be logged. The set is closed: every kind is
// either a WarningKind or an ErrorKind declared in this package.
type LogKind interface {
	Severity() Severity
	GetMessage() string
}

type WarningKind interface {
	LogKind
	warningKind()
}

type ErrorKind interface {
	LogKind
	errorKind()
}

type Position struct {
	Line   int
	Column int
}

// Log is a single diagnostic. Logs are values: they are copied between
// stages and never changed after creation.
type Log struct {
	Kind LogKind

	pos    Position
	hasPos bool
}

func NewWarning(kind WarningKind) Log {
	return Log{Kind: kind}
}

func NewError(kind ErrorKind) Log {
	return Log{Kind: kind}
}

// At returns a copy of l positioned at line:column.
func (l Log) At(line, column int) Log {
	return Log{
		Kind:   l.Kind,
		pos:    Position{Line: line, Column: column},
		hasPos: true,
	}
}

// Pos returns where l was reported. ok is false for logs that are not tied
// to the source.
func (l Log) Pos() (pos Position, ok bool) {
	return l.pos, l.hasPos
}

func (l Log) IsError() bool {
	return l.Kind.Severity() == SeverityError
}

func (l Log) String() string {
	return l.Render(false)
}

// Render formats l as "<severity>[ (line L:C)]: <message>". When styled is
// set, the severity is colored and the line is bolded.
func (l Log) Render(styled bool) string {
	if _, ok := l.Kind.(FatalError); ok {
		return paint(styled, fatalErrorMessage, color.FgRed, color.Bold)
	}

	severity := l.Kind.Severity()
	label := severity.String()
	if severity == SeverityError {
		label = paint(styled, label, color.FgRed, color.Bold)
	} else {
		label = paint(styled, label, color.FgYellow, color.Bold)
	}

	var output string
	if pos, ok := l.Pos(); ok {
		output = fmt.Sprintf("%s (line %d:%d): %s", label, pos.Line, pos.Column, l.Kind.GetMessage())
	} else {
		output = fmt.Sprintf("%s: %s", label, l.Kind.GetMessage())
	}

	if _, ok := l.Kind.(CantCompile); ok {
		return output
	}
	return paint(styled, output, color.Bold)
}

func paint(styled bool, s string, attrs ...color.Attribute) string {
	if !styled {
		return s
	}

	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// HasError reports whether any log is an error. It is the only gate used to
// decide whether a later stage runs.
func HasError(logs []Log) bool {
	for _, log := range logs {
		if log.IsError() {
			return true
		}
	}
	return false
}

// AllToString renders every log as plain text.
func AllToString(logs []Log) []string {
	strings := make([]string, 0, len(logs))
	for _, log := range logs {
		strings = append(strings, log.Render(false))
	}
	return strings
}
