package hir

import (
	"github.com/kievzenit/exprc/internal/compiler_errors"
)

// FileHir is what the front end hands to the emitter: the source, the typed
// tree and every diagnostic so far. Root is nil whenever Logs holds an
// error, and never nil otherwise.
type FileHir struct {
	FileText string
	Root     ExprHir
	Logs     []compiler_errors.Log
}
