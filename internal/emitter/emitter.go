package emitter

import (
	"fmt"
	"math/bits"
	"slices"

	"github.com/kievzenit/exprc/internal/bytecode"
	"github.com/kievzenit/exprc/internal/compiler_errors"
	"github.com/kievzenit/exprc/internal/hir"
	hir_types "github.com/kievzenit/exprc/internal/hir/types"
)

type CompilerOutput struct {
	FileText string
	// Bytecode is nil whenever Logs holds an error.
	Bytecode []byte
	Logs     []compiler_errors.Log
}

// Compile turns a checked program into bytecode for target. Earlier errors
// skip generation and are passed through unchanged.
func Compile(fileHir hir.FileHir, target bytecode.Target) CompilerOutput {
	if compiler_errors.HasError(fileHir.Logs) {
		return CompilerOutput{
			FileText: fileHir.FileText,
			Logs:     fileHir.Logs,
		}
	}

	if fileHir.Root == nil {
		panic("Compile(): no typed tree and no errors")
	}

	code := NewEmitter(target).Emit(fileHir.Root)
	logs := slices.Clone(fileHir.Logs)

	if exceedsAddressSpace(len(code), target) {
		code = nil
		logs = append(logs, compiler_errors.NewError(compiler_errors.ExcessiveBytecode{}))
	}

	return CompilerOutput{
		FileText: fileHir.FileText,
		Bytecode: code,
		Logs:     logs,
	}
}

// exceedsAddressSpace reports whether a program of size bytes cannot be
// addressed by a target pointer. Targets at least as wide as the host are
// never checked.
func exceedsAddressSpace(size int, target bytecode.Target) bool {
	targetBits := target.Bits()
	return targetBits < bits.UintSize && uint64(size) >= uint64(1)<<targetBits
}

type Emitter struct {
	target bytecode.Target

	bytecode []byte
}

func NewEmitter(target bytecode.Target) *Emitter {
	return &Emitter{
		target: target,
	}
}

func (e *Emitter) Emit(root hir.ExprHir) []byte {
	e.bytecode = append(make([]byte, 0, 64), e.target.Header()...)

	e.emitExpr(root)
	e.emitTerminal(root.ExprType())

	return e.bytecode
}

func (e *Emitter) emitTerminal(rootType hir_types.Type) {
	if !rootType.IsValue() {
		return
	}

	if e.target.PrintResult {
		e.emitOp(byType(rootType, bytecode.PrintInt, bytecode.PrintByte))
	} else {
		e.emitOp(byType(rootType, bytecode.PopInt, bytecode.PopByte))
	}
}

func (e *Emitter) emitExpr(expr hir.ExprHir) {
	switch expr := expr.(type) {
	case *hir.IntExprHir:
		e.emitOp(bytecode.PushInt)
		e.bytecode = bytecode.AppendLE(e.bytecode, expr.Value, bytecode.IntSize)
	case *hir.BoolExprHir:
		e.emitOp(bytecode.PushByte)
		if expr.Value {
			e.bytecode = append(e.bytecode, 1)
		} else {
			e.bytecode = append(e.bytecode, 0)
		}
	case *hir.GroupingExprHir:
		e.emitExpr(expr.Inner)
	case *hir.UnaryExprHir:
		e.emitUnaryExpr(expr)
	case *hir.BinaryExprHir:
		e.emitBinaryExpr(expr)
	case *hir.ExprListHir:
		for _, member := range expr.Exprs {
			e.emitExpr(member)
		}
	case *hir.StmtExprHir:
		e.emitStmtExpr(expr)
	case *hir.UnitExprHir:
	default:
		panic(fmt.Sprintf("emitExpr(): unexpected node %T", expr))
	}
}

func (e *Emitter) emitUnaryExpr(expr *hir.UnaryExprHir) {
	e.emitExpr(expr.Operand)

	switch expr.Op {
	case hir.Neg:
		e.emitOp(bytecode.MinusInt)
	case hir.Complement:
		e.emitOp(bytecode.ComplementInt)
	case hir.Not:
		e.emitOp(bytecode.Not)
	default:
		panic(fmt.Sprintf("emitUnaryExpr(): unexpected operator %d", expr.Op))
	}
}

func (e *Emitter) emitBinaryExpr(expr *hir.BinaryExprHir) {
	e.emitExpr(expr.Left)
	e.emitExpr(expr.Right)

	switch expr.Op {
	case hir.Add:
		e.emitOp(bytecode.AddInt)
	case hir.Sub:
		e.emitOp(bytecode.SubtractInt)
	case hir.Mul:
		e.emitOp(bytecode.MultiplyInt)
	case hir.Div:
		e.emitOp(bytecode.DivideInt)
		e.emitPosition(expr)
	case hir.Mod:
		e.emitOp(bytecode.ModuloInt)
		e.emitPosition(expr)
	case hir.Band:
		e.emitOp(byType(expr.Type, bytecode.AndInt, bytecode.AndByte))
	case hir.Xor:
		e.emitOp(byType(expr.Type, bytecode.XorInt, bytecode.XorByte))
	case hir.Bor:
		e.emitOp(byType(expr.Type, bytecode.OrInt, bytecode.OrByte))
	case hir.Shl:
		e.emitOp(bytecode.LeftShiftInt)
	case hir.Shr:
		e.emitOp(bytecode.RightShiftInt)
	case hir.Lt:
		e.emitOp(bytecode.LessInt)
	case hir.Le:
		e.emitOp(bytecode.LessEqualInt)
	case hir.Gt:
		e.emitOp(bytecode.GreaterInt)
	case hir.Ge:
		e.emitOp(bytecode.GreaterEqualInt)
	case hir.Eq:
		e.emitOp(byType(expr.Left.ExprType(), bytecode.EqualityInt, bytecode.EqualityByte))
	case hir.Ne:
		e.emitOp(byType(expr.Left.ExprType(), bytecode.InequalityInt, bytecode.InequalityByte))
	default:
		panic(fmt.Sprintf("emitBinaryExpr(): unexpected operator %d", expr.Op))
	}
}

// emitPosition appends the operator's line and then its column, each
// exactly one target word wide.
func (e *Emitter) emitPosition(expr *hir.BinaryExprHir) {
	if expr.OpToken == nil {
		panic("emitPosition(): operator has no token")
	}

	width := int(e.target.WordWidth)
	e.bytecode = bytecode.AppendLE(e.bytecode, uint(expr.OpToken.Metadata.Line), width)
	e.bytecode = bytecode.AppendLE(e.bytecode, uint(expr.OpToken.Metadata.Column), width)
}

func (e *Emitter) emitStmtExpr(expr *hir.StmtExprHir) {
	e.emitExpr(expr.Expr)

	if exprType := expr.Expr.ExprType(); exprType.IsValue() {
		e.emitOp(byType(exprType, bytecode.PopInt, bytecode.PopByte))
	}
}

func (e *Emitter) emitOp(op bytecode.OpCode) {
	e.bytecode = append(e.bytecode, byte(op))
}

func byType(t hir_types.Type, intOp, boolOp bytecode.OpCode) bytecode.OpCode {
	switch t {
	case hir_types.Int:
		return intOp
	case hir_types.Bool:
		return boolOp
	default:
		panic(fmt.Sprintf("byType(): no opcode over %s", t))
	}
}
