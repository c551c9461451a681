package ember

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionBuilderLiteral(t *testing.T) {
	b := NewProductionBuilder()

	cases := []struct {
		value  interface{}
		fail   bool
		expect int
	}{
		{5, false, 5},
		{int8(-3), false, -3},
		{int64(1 << 30), false, 1 << 30},
		{uint16(7), false, 7},
		{uint64(math.MaxUint64), true, 0},
		{5.0, true, 0},
		{"5", true, 0},
		{nil, true, 0},
		{true, true, 0},
	}

	for _, c := range cases {
		node, err := b.CreateLiteralNode(c.value)
		if c.fail {
			var invalid *InvalidArgumentError
			assert.True(t, errors.As(err, &invalid), "%v", c.value)
			assert.Nil(t, node)
			continue
		}

		require.NoError(t, err)
		assert.Equal(t, &LiteralExpr{Value: c.expect}, node)
	}
}

func TestProductionBuilderExpressions(t *testing.T) {
	b := NewProductionBuilder()

	five, err := b.CreateLiteralNode(5)
	require.NoError(t, err)
	three, err := b.CreateLiteralNode(3)
	require.NoError(t, err)

	assert.Equal(t, "(5 + 3)", b.CreatePlusNode(five, three).Unparse(0))

	two, _ := b.CreateLiteralNode(2)
	four, _ := b.CreateLiteralNode(4)
	one, _ := b.CreateLiteralNode(1)
	nested := b.CreateTimesNode(b.CreatePlusNode(two, three), b.CreateMinusNode(four, one))
	assert.Equal(t, "((2 + 3) * (4 - 1))", nested.Unparse(0))

	x := b.CreateVariableNode("x")
	cases := []struct {
		node   *BinaryExpr
		expect string
	}{
		{b.CreateFloatDivNode(x, two), "(x / 2)"},
		{b.CreateIntDivNode(x, two), "(x // 2)"},
		{b.CreateModulusNode(x, two), "(x % 2)"},
		{b.CreateExponentiationNode(x, two), "(x ** 2)"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, c.node.Unparse(0))
	}
}

func TestProductionBuilderStatements(t *testing.T) {
	b := NewProductionBuilder()

	hundred, err := b.CreateLiteralNode(100)
	require.NoError(t, err)
	assign := b.CreateAssignmentStmt(b.CreateVariableNode("x"), hundred)
	assert.Equal(t, "        x = 100", assign.Unparse(2))

	scope := NewSymbolTable[string, Statement]()
	ten, _ := b.CreateLiteralNode(10)
	require.NoError(t, scope.Add("s0", b.CreateAssignmentStmt(b.CreateVariableNode("x"), ten)))
	require.NoError(t, scope.Add("s1", b.CreateReturnStmt(b.CreateVariableNode("x"))))

	block := b.CreateBlockStmt(scope)
	assert.Same(t, scope, block.Scope)
	assert.Equal(t, "{\n    x = 10\n    return x\n}", block.Unparse(0))
}

func TestCreateBinaryNode(t *testing.T) {
	b := NewProductionBuilder()
	left, right := b.CreateVariableNode("a"), b.CreateVariableNode("b")

	for _, op := range BinaryOps {
		node, err := CreateBinaryNode(b, op, left, right)
		require.NoError(t, err)
		assert.Equal(t, op, node.Operation)
	}

	_, err := CreateBinaryNode(b, "^", left, right)
	var unknown *UnknownOperatorError
	assert.True(t, errors.As(err, &unknown))
}

func TestTracingBuilder(t *testing.T) {
	var out bytes.Buffer
	b := NewTracingBuilder(&out)

	five, err := b.CreateLiteralNode(5)
	require.NoError(t, err)
	three, err := b.CreateLiteralNode(3)
	require.NoError(t, err)

	plus := b.CreatePlusNode(five, three)
	assert.Equal(t, NewProductionBuilder().CreatePlusNode(five, three), plus)

	x := b.CreateVariableNode("x")
	b.CreateExponentiationNode(plus, x)
	assign := b.CreateAssignmentStmt(x, plus)
	ret := b.CreateReturnStmt(x)

	scope := NewSymbolTable[string, Statement]()
	require.NoError(t, scope.Add("a", assign))
	require.NoError(t, scope.Add("r", ret))
	b.CreateBlockStmt(scope)

	_, err = b.CreateLiteralNode("nope")
	assert.Error(t, err)

	assert.Equal(t, []string{
		"CreateLiteralNode(5)",
		"CreateLiteralNode(3)",
		"CreatePlusNode(5, 3)",
		"CreateVariableNode(x)",
		"CreateExponentiationNode((5 + 3), x)",
		"CreateAssignmentStmt(x, (5 + 3))",
		"CreateReturnStmt(x)",
		"CreateBlockStmt(2 statements)",
		"CreateLiteralNode(nope)",
	}, strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n"))
}

func TestTracingBuilderEveryBinaryOperator(t *testing.T) {
	var out bytes.Buffer
	b := NewTracingBuilder(&out)
	left, right := &LiteralExpr{Value: 1}, &LiteralExpr{Value: 2}

	b.CreateMinusNode(left, right)
	b.CreateTimesNode(left, right)
	b.CreateFloatDivNode(left, right)
	b.CreateIntDivNode(left, right)
	b.CreateModulusNode(left, right)

	assert.Equal(t, "CreateMinusNode(1, 2)\n"+
		"CreateTimesNode(1, 2)\n"+
		"CreateFloatDivNode(1, 2)\n"+
		"CreateIntDivNode(1, 2)\n"+
		"CreateModulusNode(1, 2)\n", out.String())
}

func TestTracingBuilderWithoutOutput(t *testing.T) {
	b := NewTracingBuilder(nil)
	assert.Equal(t, &VariableExpr{Name: "x"}, b.CreateVariableNode("x"))
}

func TestNullBuilder(t *testing.T) {
	var f NodeFactory = NewNullBuilder()

	lit, err := f.CreateLiteralNode("not an integer")
	assert.NoError(t, err)
	assert.Nil(t, lit)

	assert.Nil(t, f.CreateVariableNode("x"))
	assert.Nil(t, f.CreatePlusNode(nil, nil))
	assert.Nil(t, f.CreateMinusNode(nil, nil))
	assert.Nil(t, f.CreateTimesNode(nil, nil))
	assert.Nil(t, f.CreateFloatDivNode(nil, nil))
	assert.Nil(t, f.CreateIntDivNode(nil, nil))
	assert.Nil(t, f.CreateModulusNode(nil, nil))
	assert.Nil(t, f.CreateExponentiationNode(nil, nil))
	assert.Nil(t, f.CreateAssignmentStmt(nil, nil))
	assert.Nil(t, f.CreateReturnStmt(nil))
	assert.Nil(t, f.CreateBlockStmt(NewSymbolTable[string, Statement]()))
}
