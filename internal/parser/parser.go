package parser

import (
	"slices"

	"github.com/kievzenit/exprc/internal/ast"
	"github.com/kievzenit/exprc/internal/compiler_errors"
	"github.com/kievzenit/exprc/internal/lexer"
)

type Parser struct {
	scanner lexer.TokenScanner
	logs    []compiler_errors.Log

	curr *lexer.Token
}

var bindingPowerLookup map[lexer.TokenKind]int = map[lexer.TokenKind]int{
	lexer.BOR:      10,
	lexer.XOR:      20,
	lexer.BAND:     30,
	lexer.EQ:       40,
	lexer.NEQ:      40,
	lexer.LT:       50,
	lexer.LEQ:      50,
	lexer.GT:       50,
	lexer.GEQ:      50,
	lexer.SHL:      60,
	lexer.SHR:      60,
	lexer.PLUS:     70,
	lexer.MINUS:    70,
	lexer.ASTERISK: 80,
	lexer.SLASH:    80,
	lexer.PERCENT:  80,
}

func NewParser(scanner lexer.TokenScanner) *Parser {
	return &Parser{
		scanner: scanner,
		curr:    scanner.Read(),
	}
}

// Parse reads statements until EOF. A statement that fails to parse is
// logged and skipped up to the next ';', so every independent error in the
// input is reported.
func (p *Parser) Parse() (*ast.StmtList, []compiler_errors.Log) {
	stmtList := &ast.StmtList{
		StartToken: p.curr,
		Stmts:      make([]ast.Stmt, 0),
	}

	for p.curr.Kind != lexer.EOF {
		stmt := p.parseStmt()
		if stmt == nil {
			p.synchronize()
			continue
		}

		stmtList.Stmts = append(stmtList.Stmts, stmt)
	}

	return stmtList, p.logs
}

func (p *Parser) parseStmt() ast.Stmt {
	startToken := p.curr

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	switch p.curr.Kind {
	case lexer.SEMICOLON:
		p.read()
		return &ast.ExprStmt{
			StartToken: startToken,

			Expr: expr,
		}
	case lexer.EOF:
		return &ast.ResultStmt{
			StartToken: startToken,

			Expr: expr,
		}
	}

	p.errorAtCurr(compiler_errors.ExpectedEOF{})
	return nil
}

func (p *Parser) synchronize() {
	for !p.isCurrAny(lexer.SEMICOLON, lexer.EOF) {
		p.read()
	}

	if p.curr.Kind == lexer.SEMICOLON {
		p.read()
	}
}

func (p *Parser) parseExpr() ast.Expr {
	left := p.parseUnaryExpr()
	if left == nil {
		return nil
	}

	return p.parseBinaryExpr(left, 0)
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	if !p.isCurrAny(lexer.MINUS, lexer.TILDE, lexer.XMARK) {
		return p.parsePrimaryExpr()
	}

	op := p.curr
	p.read()

	var right ast.Expr
	if op.Kind == lexer.MINUS && p.curr.Kind == lexer.INT {
		right = p.parseIntExpr(true)
	} else {
		right = p.parseUnaryExpr()
	}

	if right == nil {
		return nil
	}

	return &ast.PrefixExpr{
		StartToken: op,

		Op:    op,
		Right: right,
	}
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	switch p.curr.Kind {
	case lexer.LPAREN:
		return p.parseParenExpr()
	case lexer.INT:
		return p.parseIntExpr(false)
	case lexer.BOOL:
		return p.parseBoolExpr()
	case lexer.EOF:
		p.errorAtCurr(compiler_errors.UnexpectedEOF{})
		return nil
	}

	p.errorAtCurr(compiler_errors.UnexpectedToken{})
	return nil
}

func (p *Parser) parseParenExpr() ast.Expr {
	lparen := p.curr
	p.read()

	if p.curr.Kind == lexer.RPAREN {
		p.errorAt(compiler_errors.ExpectedExpressionInParens{}, lparen)
		p.read()
		return nil
	}

	inner := p.parseExpr()
	if inner == nil {
		return nil
	}

	if p.curr.Kind != lexer.RPAREN {
		p.errorAt(compiler_errors.ExpectedCloseParen{}, lparen)
		return nil
	}
	p.read()

	return &ast.ParenExpr{
		StartToken: lparen,

		Inner: inner,
	}
}

func (p *Parser) parseBinaryExpr(left ast.Expr, bindingPower int) ast.Expr {
	for {
		op := p.curr
		currentBindingPower, ok := bindingPowerLookup[op.Kind]
		if !ok || currentBindingPower < bindingPower {
			return left
		}
		p.read()

		right := p.parseUnaryExpr()
		if right == nil {
			return nil
		}

		nextBindingPower, ok := bindingPowerLookup[p.curr.Kind]
		if ok && currentBindingPower < nextBindingPower {
			right = p.parseBinaryExpr(right, currentBindingPower+10)
			if right == nil {
				return nil
			}
		}

		left = &ast.BinaryExpr{
			StartToken: left.FirstToken(),

			Left:  left,
			Op:    op,
			Right: right,
		}
	}
}

// parseIntExpr reads an INT token. The minimum int literal is only accepted
// when negated is set, that is when it directly follows a unary '-'.
func (p *Parser) parseIntExpr(negated bool) *ast.IntExpr {
	p.expect(lexer.INT)
	startToken := p.curr

	if !negated && startToken.IntValue == compiler_errors.MinIntLiteral {
		p.errorAt(compiler_errors.UnnegatedMinimumIntegerLiteral{}, startToken)
	}
	p.read()

	return &ast.IntExpr{
		StartToken: startToken,

		Value: startToken.IntValue,
	}
}

func (p *Parser) parseBoolExpr() *ast.BoolExpr {
	p.expect(lexer.BOOL)
	startToken := p.curr
	p.read()

	return &ast.BoolExpr{
		StartToken: startToken,

		Value: startToken.Value == "true",
	}
}

func (p *Parser) read() *lexer.Token {
	p.curr = p.scanner.Read()
	return p.curr
}

// expect guards the parse functions that are only called once the current
// token is known.
func (p *Parser) expect(kind lexer.TokenKind) {
	if p.curr.Kind != kind {
		panic("parser: expected " + kind.String() + ", got " + p.curr.Kind.String())
	}
}

func (p *Parser) isCurrAny(kinds ...lexer.TokenKind) bool {
	return slices.Contains(kinds, p.curr.Kind)
}

func (p *Parser) errorAtCurr(kind compiler_errors.ErrorKind) {
	p.errorAt(kind, p.curr)
}

func (p *Parser) errorAt(kind compiler_errors.ErrorKind, token *lexer.Token) {
	p.logs = append(
		p.logs,
		compiler_errors.NewError(kind).At(token.Metadata.Line, token.Metadata.Column))
}
