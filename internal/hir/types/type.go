package hir_types

import "fmt"

// Type is the static type of a typed tree node. The set is closed.
type Type int

const (
	Int Type = iota
	Bool
	Unit
)

func (t Type) Type() string {
	switch t {
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Unit:
		return "unit"
	default:
		panic(fmt.Sprintf("Type.Type(): received illegal type: %d", int(t)))
	}
}

func (t Type) String() string {
	return t.Type()
}

// IsValue reports whether values of t occupy the stack.
func (t Type) IsValue() bool {
	return t != Unit
}
