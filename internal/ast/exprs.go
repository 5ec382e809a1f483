package ast

import "github.com/kievzenit/exprc/internal/lexer"

type BoolExpr struct {
	StartToken *lexer.Token

	Value bool
}

// IntExpr holds the literal's magnitude. 2147483648 is only legal as the
// operand of a unary '-', which the parser checks.
type IntExpr struct {
	StartToken *lexer.Token

	Value uint32
}

type ParenExpr struct {
	StartToken *lexer.Token

	Inner Expr
}

type PrefixExpr struct {
	StartToken *lexer.Token

	Op    *lexer.Token
	Right Expr
}

type BinaryExpr struct {
	StartToken *lexer.Token

	Left  Expr
	Op    *lexer.Token
	Right Expr
}

func (BoolExpr) AstNode()   {}
func (IntExpr) AstNode()    {}
func (ParenExpr) AstNode()  {}
func (PrefixExpr) AstNode() {}
func (BinaryExpr) AstNode() {}

func (e *BoolExpr) FirstToken() *lexer.Token   { return e.StartToken }
func (e *IntExpr) FirstToken() *lexer.Token    { return e.StartToken }
func (e *ParenExpr) FirstToken() *lexer.Token  { return e.StartToken }
func (e *PrefixExpr) FirstToken() *lexer.Token { return e.StartToken }
func (e *BinaryExpr) FirstToken() *lexer.Token { return e.StartToken }

func (BoolExpr) ExprNode()   {}
func (IntExpr) ExprNode()    {}
func (ParenExpr) ExprNode()  {}
func (PrefixExpr) ExprNode() {}
func (BinaryExpr) ExprNode() {}
