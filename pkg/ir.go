package ember

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// ValueLookup binds variable names to SSA values for one block.
type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Inherit(t2 *ValueLookup) {
	for k, v := range t2.vals {
		l.Set(k, v)
	}
}

func (l *ValueLookup) Get(id string) (value.Value, error) {
	if val, ok := l.vals[id]; ok {
		return val, nil
	}

	return nil, &UndefinedVariableError{Name: id}
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

// LLVMIRBuilder lowers statements into a single function returning double.
// Every value is a double; integer division floors and exponentiation calls
// the llvm.pow intrinsic.
type LLVMIRBuilder struct {
	mod    *ir.Module
	fn     *ir.Func
	block  *ir.Block
	values *ValueLookup

	floor *ir.Func
	pow   *ir.Func
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	return &LLVMIRBuilder{
		mod:    ir.NewModule(),
		values: NewValueLookup(),
	}
}

// Lower emits a function called name whose body is stmt and returns the module.
func Lower(name string, stmt Statement) (*ir.Module, error) {
	b := NewLLVMIRBuilder()
	if err := b.Function(name, stmt); err != nil {
		return nil, err
	}

	return b.Module(), nil
}

func (b *LLVMIRBuilder) Module() *ir.Module {
	return b.mod
}

func (b *LLVMIRBuilder) Function(name string, body Statement) error {
	b.fn = b.mod.NewFunc(name, types.Double)
	b.block = b.fn.NewBlock("entry")

	if err := b.statement(body); err != nil {
		return err
	}

	if b.block.Term == nil {
		b.block.NewRet(constant.NewFloat(types.Double, 0))
	}

	return nil
}

func (b *LLVMIRBuilder) statement(stmt Statement) error {
	if b.block.Term != nil {
		return nil // Unreachable after return
	}

	switch s := stmt.(type) {
	case *AssignmentStmt:
		return b.assignment(s)
	case *ReturnStmt:
		if s == nil {
			return nil
		}

		v, err := b.expression(s.Expression)
		if err != nil {
			return err
		}

		b.block.NewRet(v)
		return nil
	case *BlockStmt:
		return b.blockStmt(s)
	}

	return nil
}

func (b *LLVMIRBuilder) blockStmt(stmt *BlockStmt) error {
	if stmt == nil || stmt.Scope == nil {
		return nil
	}

	prevVals := b.values
	b.values = NewValueLookup()
	b.values.Inherit(prevVals)

	defer func() {
		b.values = prevVals
	}()

	for _, child := range stmt.Scope.Values() {
		if err := b.statement(child); err != nil {
			return err
		}
	}

	return nil
}

func (b *LLVMIRBuilder) assignment(stmt *AssignmentStmt) error {
	if stmt == nil || stmt.Variable == nil {
		return nil
	}

	v, err := b.expression(stmt.Expression)
	if err != nil {
		return err
	}

	b.values.Set(stmt.Variable.Name, v)
	return nil
}

func (b *LLVMIRBuilder) expression(expr Expression) (value.Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		if e != nil {
			return constant.NewFloat(types.Double, float64(e.Value)), nil
		}
	case *VariableExpr:
		if e != nil {
			return b.values.Get(e.Name)
		}
	case *BinaryExpr:
		if e != nil {
			return b.binaryExpression(e)
		}
	}

	// Only the absent nodes of NullBuilder get here
	return constant.NewFloat(types.Double, 0), nil
}

func (b *LLVMIRBuilder) binaryExpression(expr *BinaryExpr) (value.Value, error) {
	v1, err := b.expression(expr.Left)
	if err != nil {
		return nil, err
	}

	v2, err := b.expression(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operation {
	case BinaryPlus:
		return b.block.NewFAdd(v1, v2), nil
	case BinaryMinus:
		return b.block.NewFSub(v1, v2), nil
	case BinaryTimes:
		return b.block.NewFMul(v1, v2), nil
	case BinaryFloatDiv:
		return b.block.NewFDiv(v1, v2), nil
	case BinaryIntDiv:
		q := b.block.NewFDiv(v1, v2)
		return b.block.NewCall(b.floorFunc(), q), nil
	case BinaryModulus:
		return b.block.NewFRem(v1, v2), nil
	case BinaryExponentiation:
		return b.block.NewCall(b.powFunc(), v1, v2), nil
	default:
		return nil, &UnknownOperatorError{Op: string(expr.Operation)}
	}
}

func (b *LLVMIRBuilder) floorFunc() *ir.Func {
	if b.floor == nil {
		b.floor = b.mod.NewFunc("llvm.floor.f64", types.Double, ir.NewParam("x", types.Double))
	}

	return b.floor
}

func (b *LLVMIRBuilder) powFunc() *ir.Func {
	if b.pow == nil {
		b.pow = b.mod.NewFunc("llvm.pow.f64", types.Double,
			ir.NewParam("x", types.Double),
			ir.NewParam("y", types.Double))
	}

	return b.pow
}
