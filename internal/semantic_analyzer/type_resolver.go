package semantic_analyzer

import (
	types "github.com/kievzenit/exprc/internal/hir/types"
	"github.com/kievzenit/exprc/internal/lexer"
)

type binaryOperands struct {
	left  types.Type
	right types.Type
}

// TypeResolver holds the signature of every built-in operator and resolves
// the result type of an application.
type TypeResolver struct {
	unaryOperators  map[lexer.TokenKind]map[types.Type]types.Type
	binaryOperators map[lexer.TokenKind]map[binaryOperands]types.Type
}

func NewTypeResolver() *TypeResolver {
	tr := &TypeResolver{
		unaryOperators:  make(map[lexer.TokenKind]map[types.Type]types.Type),
		binaryOperators: make(map[lexer.TokenKind]map[binaryOperands]types.Type),
	}
	tr.defineBuiltInOperators()
	return tr
}

func (tr *TypeResolver) defineBuiltInOperators() {
	tr.defineUnary(lexer.MINUS, types.Int, types.Int)
	tr.defineUnary(lexer.TILDE, types.Int, types.Int)
	tr.defineUnary(lexer.XMARK, types.Bool, types.Bool)

	for _, kind := range []lexer.TokenKind{
		lexer.PLUS, lexer.MINUS, lexer.ASTERISK, lexer.SLASH, lexer.PERCENT,
		lexer.SHL, lexer.SHR,
	} {
		tr.defineBinary(kind, types.Int, types.Int, types.Int)
	}

	for _, kind := range []lexer.TokenKind{lexer.LT, lexer.LEQ, lexer.GT, lexer.GEQ} {
		tr.defineBinary(kind, types.Int, types.Int, types.Bool)
	}

	for _, kind := range []lexer.TokenKind{lexer.BAND, lexer.XOR, lexer.BOR} {
		tr.defineBinary(kind, types.Int, types.Int, types.Int)
		tr.defineBinary(kind, types.Bool, types.Bool, types.Bool)
	}

	for _, kind := range []lexer.TokenKind{lexer.EQ, lexer.NEQ} {
		tr.defineBinary(kind, types.Int, types.Int, types.Bool)
		tr.defineBinary(kind, types.Bool, types.Bool, types.Bool)
	}
}

func (tr *TypeResolver) defineUnary(op lexer.TokenKind, operand types.Type, result types.Type) {
	signatures, ok := tr.unaryOperators[op]
	if !ok {
		signatures = make(map[types.Type]types.Type)
		tr.unaryOperators[op] = signatures
	}

	if _, exists := signatures[operand]; exists {
		panic("unary operator already defined: " + op.String())
	}
	signatures[operand] = result
}

func (tr *TypeResolver) defineBinary(op lexer.TokenKind, left, right types.Type, result types.Type) {
	signatures, ok := tr.binaryOperators[op]
	if !ok {
		signatures = make(map[binaryOperands]types.Type)
		tr.binaryOperators[op] = signatures
	}

	operands := binaryOperands{left: left, right: right}
	if _, exists := signatures[operands]; exists {
		panic("binary operator already defined: " + op.String())
	}
	signatures[operands] = result
}

func (tr *TypeResolver) ResolveUnary(op lexer.TokenKind, operand types.Type) (types.Type, bool) {
	t, ok := tr.unaryOperators[op][operand]
	return t, ok
}

func (tr *TypeResolver) ResolveBinary(op lexer.TokenKind, left, right types.Type) (types.Type, bool) {
	t, ok := tr.binaryOperators[op][binaryOperands{left: left, right: right}]
	return t, ok
}
