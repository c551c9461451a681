package ember

import (
	"fmt"
	"io"
	"math"
)

// NodeFactory constructs AST nodes. Callers depend only on this interface so
// the construction policy can be swapped without touching call sites.
type NodeFactory interface {
	CreateLiteralNode(value interface{}) (*LiteralExpr, error)
	CreateVariableNode(name string) *VariableExpr

	CreatePlusNode(left, right Expression) *BinaryExpr
	CreateMinusNode(left, right Expression) *BinaryExpr
	CreateTimesNode(left, right Expression) *BinaryExpr
	CreateFloatDivNode(left, right Expression) *BinaryExpr
	CreateIntDivNode(left, right Expression) *BinaryExpr
	CreateModulusNode(left, right Expression) *BinaryExpr
	CreateExponentiationNode(left, right Expression) *BinaryExpr

	CreateAssignmentStmt(variable *VariableExpr, expression Expression) *AssignmentStmt
	CreateReturnStmt(expression Expression) *ReturnStmt
	CreateBlockStmt(scope *SymbolTable[string, Statement]) *BlockStmt
}

// CreateBinaryNode dispatches op to the matching factory method.
func CreateBinaryNode(f NodeFactory, op BinaryOp, left, right Expression) (*BinaryExpr, error) {
	switch op {
	case BinaryPlus:
		return f.CreatePlusNode(left, right), nil
	case BinaryMinus:
		return f.CreateMinusNode(left, right), nil
	case BinaryTimes:
		return f.CreateTimesNode(left, right), nil
	case BinaryFloatDiv:
		return f.CreateFloatDivNode(left, right), nil
	case BinaryIntDiv:
		return f.CreateIntDivNode(left, right), nil
	case BinaryModulus:
		return f.CreateModulusNode(left, right), nil
	case BinaryExponentiation:
		return f.CreateExponentiationNode(left, right), nil
	default:
		return nil, &UnknownOperatorError{Op: string(op)}
	}
}

// ProductionBuilder builds real nodes.
type ProductionBuilder struct{}

func NewProductionBuilder() *ProductionBuilder {
	return &ProductionBuilder{}
}

func (b *ProductionBuilder) CreateLiteralNode(value interface{}) (*LiteralExpr, error) {
	v, ok := toInt(value)
	if !ok {
		return nil, &InvalidArgumentError{Value: value}
	}

	return &LiteralExpr{Value: v}, nil
}

func (b *ProductionBuilder) CreateVariableNode(name string) *VariableExpr {
	return &VariableExpr{Name: name}
}

func (b *ProductionBuilder) CreatePlusNode(left, right Expression) *BinaryExpr {
	return b.binary(BinaryPlus, left, right)
}

func (b *ProductionBuilder) CreateMinusNode(left, right Expression) *BinaryExpr {
	return b.binary(BinaryMinus, left, right)
}

func (b *ProductionBuilder) CreateTimesNode(left, right Expression) *BinaryExpr {
	return b.binary(BinaryTimes, left, right)
}

func (b *ProductionBuilder) CreateFloatDivNode(left, right Expression) *BinaryExpr {
	return b.binary(BinaryFloatDiv, left, right)
}

func (b *ProductionBuilder) CreateIntDivNode(left, right Expression) *BinaryExpr {
	return b.binary(BinaryIntDiv, left, right)
}

func (b *ProductionBuilder) CreateModulusNode(left, right Expression) *BinaryExpr {
	return b.binary(BinaryModulus, left, right)
}

func (b *ProductionBuilder) CreateExponentiationNode(left, right Expression) *BinaryExpr {
	return b.binary(BinaryExponentiation, left, right)
}

func (b *ProductionBuilder) CreateAssignmentStmt(variable *VariableExpr, expression Expression) *AssignmentStmt {
	return &AssignmentStmt{
		Variable:   variable,
		Expression: expression,
	}
}

func (b *ProductionBuilder) CreateReturnStmt(expression Expression) *ReturnStmt {
	return &ReturnStmt{Expression: expression}
}

func (b *ProductionBuilder) CreateBlockStmt(scope *SymbolTable[string, Statement]) *BlockStmt {
	return &BlockStmt{Scope: scope}
}

func (b *ProductionBuilder) binary(op BinaryOp, left, right Expression) *BinaryExpr {
	return &BinaryExpr{
		Operation: op,
		Left:      left,
		Right:     right,
	}
}

func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		if uint64(v) > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	}

	return 0, false
}

// TracingBuilder writes a line per call to its output, then delegates to a
// ProductionBuilder. The returned nodes are the production ones.
type TracingBuilder struct {
	out   io.Writer
	inner *ProductionBuilder
}

func NewTracingBuilder(out io.Writer) *TracingBuilder {
	return &TracingBuilder{
		out:   out,
		inner: NewProductionBuilder(),
	}
}

func (b *TracingBuilder) CreateLiteralNode(value interface{}) (*LiteralExpr, error) {
	b.tracef("CreateLiteralNode(%v)", value)
	return b.inner.CreateLiteralNode(value)
}

func (b *TracingBuilder) CreateVariableNode(name string) *VariableExpr {
	b.tracef("CreateVariableNode(%s)", name)
	return b.inner.CreateVariableNode(name)
}

func (b *TracingBuilder) CreatePlusNode(left, right Expression) *BinaryExpr {
	b.traceBinary("CreatePlusNode", left, right)
	return b.inner.CreatePlusNode(left, right)
}

func (b *TracingBuilder) CreateMinusNode(left, right Expression) *BinaryExpr {
	b.traceBinary("CreateMinusNode", left, right)
	return b.inner.CreateMinusNode(left, right)
}

func (b *TracingBuilder) CreateTimesNode(left, right Expression) *BinaryExpr {
	b.traceBinary("CreateTimesNode", left, right)
	return b.inner.CreateTimesNode(left, right)
}

func (b *TracingBuilder) CreateFloatDivNode(left, right Expression) *BinaryExpr {
	b.traceBinary("CreateFloatDivNode", left, right)
	return b.inner.CreateFloatDivNode(left, right)
}

func (b *TracingBuilder) CreateIntDivNode(left, right Expression) *BinaryExpr {
	b.traceBinary("CreateIntDivNode", left, right)
	return b.inner.CreateIntDivNode(left, right)
}

func (b *TracingBuilder) CreateModulusNode(left, right Expression) *BinaryExpr {
	b.traceBinary("CreateModulusNode", left, right)
	return b.inner.CreateModulusNode(left, right)
}

func (b *TracingBuilder) CreateExponentiationNode(left, right Expression) *BinaryExpr {
	b.traceBinary("CreateExponentiationNode", left, right)
	return b.inner.CreateExponentiationNode(left, right)
}

func (b *TracingBuilder) CreateAssignmentStmt(variable *VariableExpr, expression Expression) *AssignmentStmt {
	b.tracef("CreateAssignmentStmt(%s, %s)", Unparse(variable, 0), Unparse(expression, 0))
	return b.inner.CreateAssignmentStmt(variable, expression)
}

func (b *TracingBuilder) CreateReturnStmt(expression Expression) *ReturnStmt {
	b.tracef("CreateReturnStmt(%s)", Unparse(expression, 0))
	return b.inner.CreateReturnStmt(expression)
}

func (b *TracingBuilder) CreateBlockStmt(scope *SymbolTable[string, Statement]) *BlockStmt {
	n := 0
	if scope != nil {
		n = scope.Len()
	}

	b.tracef("CreateBlockStmt(%d statements)", n)
	return b.inner.CreateBlockStmt(scope)
}

func (b *TracingBuilder) traceBinary(name string, left, right Expression) {
	b.tracef("%s(%s, %s)", name, Unparse(left, 0), Unparse(right, 0))
}

func (b *TracingBuilder) tracef(format string, args ...interface{}) {
	if b.out == nil {
		return
	}

	_, _ = fmt.Fprintf(b.out, format+"\n", args...)
}

// NullBuilder builds nothing. Every method returns nil without validating its
// input.
type NullBuilder struct{}

func NewNullBuilder() *NullBuilder {
	return &NullBuilder{}
}

func (NullBuilder) CreateLiteralNode(interface{}) (*LiteralExpr, error) { return nil, nil }
func (NullBuilder) CreateVariableNode(string) *VariableExpr { return nil }
func (NullBuilder) CreatePlusNode(Expression, Expression) *BinaryExpr { return nil }
func (NullBuilder) CreateMinusNode(Expression, Expression) *BinaryExpr { return nil }
func (NullBuilder) CreateTimesNode(Expression, Expression) *BinaryExpr { return nil }
func (NullBuilder) CreateFloatDivNode(Expression, Expression) *BinaryExpr { return nil }
func (NullBuilder) CreateIntDivNode(Expression, Expression) *BinaryExpr { return nil }
func (NullBuilder) CreateModulusNode(Expression, Expression) *BinaryExpr { return nil }
func (NullBuilder) CreateExponentiationNode(Expression, Expression) *BinaryExpr { return nil }

func (NullBuilder) CreateAssignmentStmt(*VariableExpr, Expression) *AssignmentStmt { return nil }
func (NullBuilder) CreateReturnStmt(Expression) *ReturnStmt { return nil }
func (NullBuilder) CreateBlockStmt(*SymbolTable[string, Statement]) *BlockStmt { return nil }

var (
	_ NodeFactory = (*ProductionBuilder)(nil)
	_ NodeFactory = (*TracingBuilder)(nil)
	_ NodeFactory = (*NullBuilder)(nil)
)
