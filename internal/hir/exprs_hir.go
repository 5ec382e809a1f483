package hir

import (
	types "github.com/kievzenit/exprc/internal/hir/types"
	"github.com/kievzenit/exprc/internal/lexer"
)

// ExprHir is a node of the typed tree. Only the semantic analyzer builds
// these from source, and only for input that type checks, so every node's
// type is known.
type ExprHir interface {
	ExprHirNode()
	ExprType() types.Type
}

type IntExprHir struct {
	Value int32
}

type BoolExprHir struct {
	Value bool
}

type UnaryOp int

const (
	Neg UnaryOp = iota
	Complement
	Not
)

func UnOpFromTokenKind(kind lexer.TokenKind) UnaryOp {
	switch kind {
	case lexer.MINUS:
		return Neg
	case lexer.TILDE:
		return Complement
	case lexer.XMARK:
		return Not
	default:
		panic("unexpected token kind")
	}
}

type UnaryExprHir struct {
	Type    types.Type
	Op      UnaryOp
	OpToken *lexer.Token
	Operand ExprHir
}

type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Band
	Bor
	Xor
	Shl
	Shr
	Eq
	Ne
	Lt
	Gt
	Le
	Ge
)

func BinOpFromTokenKind(kind lexer.TokenKind) BinaryOp {
	switch kind {
	case lexer.PLUS:
		return Add
	case lexer.MINUS:
		return Sub
	case lexer.ASTERISK:
		return Mul
	case lexer.SLASH:
		return Div
	case lexer.PERCENT:
		return Mod
	case lexer.BAND:
		return Band
	case lexer.BOR:
		return Bor
	case lexer.XOR:
		return Xor
	case lexer.SHL:
		return Shl
	case lexer.SHR:
		return Shr
	case lexer.LT:
		return Lt
	case lexer.GT:
		return Gt
	case lexer.LEQ:
		return Le
	case lexer.GEQ:
		return Ge
	case lexer.EQ:
		return Eq
	case lexer.NEQ:
		return Ne
	default:
		panic("unexpected token kind")
	}
}

// BinaryExprHir keeps the operator token so positions can be embedded in
// the bytecode for operators that may fault at runtime.
type BinaryExprHir struct {
	Type    types.Type
	Left    ExprHir
	Op      BinaryOp
	OpToken *lexer.Token
	Right   ExprHir
}

type GroupingExprHir struct {
	Inner ExprHir
}

// StmtExprHir evaluates Expr and discards its value.
type StmtExprHir struct {
	Expr ExprHir
}

// ExprListHir is a sequence of statements. Its value is the value of the
// last member.
type ExprListHir struct {
	Exprs []ExprHir
}

type UnitExprHir struct{}

func (IntExprHir) ExprHirNode()      {}
func (BoolExprHir) ExprHirNode()     {}
func (UnaryExprHir) ExprHirNode()    {}
func (BinaryExprHir) ExprHirNode()   {}
func (GroupingExprHir) ExprHirNode() {}
func (StmtExprHir) ExprHirNode()     {}
func (ExprListHir) ExprHirNode()     {}
func (UnitExprHir) ExprHirNode()     {}

func (IntExprHir) ExprType() types.Type        { return types.Int }
func (BoolExprHir) ExprType() types.Type       { return types.Bool }
func (e UnaryExprHir) ExprType() types.Type    { return e.Type }
func (e BinaryExprHir) ExprType() types.Type   { return e.Type }
func (e GroupingExprHir) ExprType() types.Type { return e.Inner.ExprType() }
func (StmtExprHir) ExprType() types.Type       { return types.Unit }
func (UnitExprHir) ExprType() types.Type       { return types.Unit }

func (e ExprListHir) ExprType() types.Type {
	if len(e.Exprs) == 0 {
		return types.Unit
	}

	return e.Exprs[len(e.Exprs)-1].ExprType()
}
