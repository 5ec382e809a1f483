package semantic_analyzer

import (
	"slices"

	"github.com/kievzenit/exprc/internal/ast"
	"github.com/kievzenit/exprc/internal/compiler_errors"
	"github.com/kievzenit/exprc/internal/hir"
	types "github.com/kievzenit/exprc/internal/hir/types"
	"github.com/kievzenit/exprc/internal/lexer"
)

type SemanticAnalyzer struct {
	stmtList     *ast.StmtList
	typeResolver *TypeResolver

	logs []compiler_errors.Log
}

// NewSemanticAnalyzer takes the parser's statements together with the logs
// produced so far. New diagnostics are appended after them.
func NewSemanticAnalyzer(stmtList *ast.StmtList, logs []compiler_errors.Log) *SemanticAnalyzer {
	return &SemanticAnalyzer{
		stmtList:     stmtList,
		typeResolver: NewTypeResolver(),

		logs: slices.Clone(logs),
	}
}

// Analyze type checks every statement, even after an earlier one fails, so
// all operator errors are reported together. The typed tree is only
// returned when no log is an error.
func (sa *SemanticAnalyzer) Analyze(fileText string) hir.FileHir {
	root := sa.analyzeStmtList(sa.stmtList)

	fileHir := hir.FileHir{
		FileText: fileText,
		Logs:     sa.logs,
	}
	if !compiler_errors.HasError(sa.logs) {
		fileHir.Root = root
	}
	return fileHir
}

func Analyze(stmtList *ast.StmtList, logs []compiler_errors.Log, fileText string) hir.FileHir {
	return NewSemanticAnalyzer(stmtList, logs).Analyze(fileText)
}

func (sa *SemanticAnalyzer) analyzeStmtList(stmtList *ast.StmtList) hir.ExprHir {
	exprList := &hir.ExprListHir{
		Exprs: make([]hir.ExprHir, 0),
	}
	if stmtList == nil {
		return exprList
	}

	failed := false
	for _, stmt := range stmtList.Stmts {
		exprHir := sa.analyzeStmt(stmt)
		if exprHir == nil {
			failed = true
			continue
		}
		exprList.Exprs = append(exprList.Exprs, exprHir)
	}

	if failed {
		return nil
	}
	return exprList
}

func (sa *SemanticAnalyzer) analyzeStmt(stmt ast.Stmt) hir.ExprHir {
	switch stmt := stmt.(type) {
	case *ast.ExprStmt:
		return sa.analyzeExprStmt(stmt)
	case *ast.ResultStmt:
		return sa.analyzeExpr(stmt.Expr)
	default:
		panic("unreachable")
	}
}

func (sa *SemanticAnalyzer) analyzeExprStmt(exprStmt *ast.ExprStmt) hir.ExprHir {
	expr := sa.analyzeExpr(exprStmt.Expr)
	if expr == nil {
		return nil
	}

	return &hir.StmtExprHir{
		Expr: expr,
	}
}

// analyzeExpr returns nil when the expression does not type check. The
// error has already been logged at that point, so callers only propagate
// the nil.
func (sa *SemanticAnalyzer) analyzeExpr(expr ast.Expr) hir.ExprHir {
	switch expr := expr.(type) {
	case *ast.BinaryExpr:
		return sa.analyzeBinaryExpr(expr)
	case *ast.PrefixExpr:
		return sa.analyzePrefixExpr(expr)
	case *ast.ParenExpr:
		return sa.analyzeParenExpr(expr)
	case *ast.IntExpr:
		return sa.analyzeIntExpr(expr)
	case *ast.BoolExpr:
		return sa.analyzeBoolExpr(expr)
	default:
		panic("not implemented")
	}
}

func (sa *SemanticAnalyzer) analyzeBinaryExpr(binaryExpr *ast.BinaryExpr) hir.ExprHir {
	left := sa.analyzeExpr(binaryExpr.Left)
	right := sa.analyzeExpr(binaryExpr.Right)

	if left == nil || right == nil {
		return nil
	}

	resultType, ok := sa.typeResolver.ResolveBinary(
		binaryExpr.Op.Kind,
		left.ExprType(),
		right.ExprType(),
	)
	if !ok {
		sa.invalidArgs(binaryExpr.Op, left.ExprType(), right.ExprType())
		return nil
	}

	return &hir.BinaryExprHir{
		Type:    resultType,
		Left:    left,
		Op:      hir.BinOpFromTokenKind(binaryExpr.Op.Kind),
		OpToken: binaryExpr.Op,
		Right:   right,
	}
}

func (sa *SemanticAnalyzer) analyzePrefixExpr(prefixExpr *ast.PrefixExpr) hir.ExprHir {
	operand := sa.analyzeExpr(prefixExpr.Right)
	if operand == nil {
		return nil
	}

	resultType, ok := sa.typeResolver.ResolveUnary(prefixExpr.Op.Kind, operand.ExprType())
	if !ok {
		sa.invalidArgs(prefixExpr.Op, operand.ExprType())
		return nil
	}

	return &hir.UnaryExprHir{
		Type:    resultType,
		Op:      hir.UnOpFromTokenKind(prefixExpr.Op.Kind),
		OpToken: prefixExpr.Op,
		Operand: operand,
	}
}

func (sa *SemanticAnalyzer) analyzeParenExpr(parenExpr *ast.ParenExpr) hir.ExprHir {
	inner := sa.analyzeExpr(parenExpr.Inner)
	if inner == nil {
		return nil
	}

	return &hir.GroupingExprHir{
		Inner: inner,
	}
}

// analyzeIntExpr keeps the literal's bit pattern. 2147483648 becomes the
// minimum int, and its enclosing negation wraps back to the same value.
func (sa *SemanticAnalyzer) analyzeIntExpr(intExpr *ast.IntExpr) *hir.IntExprHir {
	return &hir.IntExprHir{
		Value: int32(intExpr.Value),
	}
}

func (sa *SemanticAnalyzer) analyzeBoolExpr(boolExpr *ast.BoolExpr) *hir.BoolExprHir {
	return &hir.BoolExprHir{
		Value: boolExpr.Value,
	}
}

func (sa *SemanticAnalyzer) invalidArgs(op *lexer.Token, operands ...types.Type) {
	typeNames := make([]string, 0, len(operands))
	for _, operand := range operands {
		typeNames = append(typeNames, operand.Type())
	}

	sa.logs = append(
		sa.logs,
		compiler_errors.NewError(compiler_errors.InvalidArgsForOperator{
			Op:    op.Value,
			Types: typeNames,
		}).At(op.Metadata.Line, op.Metadata.Column))
}
