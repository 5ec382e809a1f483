package ast

import "github.com/kievzenit/exprc/internal/lexer"

type AstNode interface {
	AstNode()
	FirstToken() *lexer.Token
}

type Stmt interface {
	AstNode
	StmtNode()
}

type Expr interface {
	AstNode
	ExprNode()
}
