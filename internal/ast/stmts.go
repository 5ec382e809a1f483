package ast

import "github.com/kievzenit/exprc/internal/lexer"

// ExprStmt is an expression terminated by ';'. Its value is discarded.
type ExprStmt struct {
	StartToken *lexer.Token

	Expr Expr
}

// ResultStmt is the final expression of a program when it is not
// terminated by ';'. Its value is the program's result.
type ResultStmt struct {
	StartToken *lexer.Token

	Expr Expr
}

type StmtList struct {
	StartToken *lexer.Token

	Stmts []Stmt
}

func (ExprStmt) AstNode()   {}
func (ResultStmt) AstNode() {}
func (StmtList) AstNode()   {}

func (s *ExprStmt) FirstToken() *lexer.Token   { return s.StartToken }
func (s *ResultStmt) FirstToken() *lexer.Token { return s.StartToken }
func (s *StmtList) FirstToken() *lexer.Token   { return s.StartToken }

func (ExprStmt) StmtNode()   {}
func (ResultStmt) StmtNode() {}
