package ember

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `
block:
  - assign: {var: x, expr: {lit: 10}}
  - label: inner
    block:
      - assign:
          var: y
          expr: {op: "**", left: {var: x}, right: {lit: 2}}
  - return: {op: "//", left: {var: x}, right: {lit: 3}}
`

func TestLoadDocument(t *testing.T) {
	stmt, err := LoadDocument(strings.NewReader(sampleDocument), NewProductionBuilder())
	require.NoError(t, err)

	blk, ok := stmt.(*BlockStmt)
	require.True(t, ok)
	assert.True(t, blk.Scope.IsRoot())
	assert.Equal(t, []string{"s0", "inner", "s2"}, blk.Scope.Keys())

	inner, err := blk.Scope.Get("inner")
	require.NoError(t, err)
	assert.Same(t, blk.Scope, inner.(*BlockStmt).Scope.Parent())

	assert.Equal(t, "{\n"+
		"    x = 10\n"+
		"    {\n"+
		"        y = (x ** 2)\n"+
		"    }\n"+
		"    return (x // 3)\n"+
		"}", stmt.Unparse(0))
}

func TestLoadDocumentErrors(t *testing.T) {
	cases := []struct {
		data   string
		target interface{}
	}{
		{"return: {lit: 1.5}", new(*InvalidArgumentError)},
		{"return: {lit: \"x\"}", new(*InvalidArgumentError)},
		{"return: {op: \"^\", left: {lit: 1}, right: {lit: 2}}", new(*UnknownOperatorError)},
		{"block:\n  - {label: a, return: {lit: 1}}\n  - {label: a, return: {lit: 2}}\n", new(*DuplicateKeyError)},
	}

	for _, c := range cases {
		_, err := LoadDocument(strings.NewReader(c.data), NewProductionBuilder())
		require.Error(t, err, c.data)
		assert.True(t, errors.As(err, c.target), c.data)
	}

	for _, data := range []string{
		"",
		"return: {}",
		"return: {op: \"+\", left: {lit: 1}}",
		"assign: {expr: {lit: 1}}",
		"label: nothing",
		"return: {lit: 1}\nassign: {var: x, expr: {lit: 1}}",
		"block: [",
		"return: {lit: 1, var: x, op: \"+\"}",
		"return: {lit: 1, var: x}",
		"return: {var: x, op: \"+\", left: {lit: 1}, right: {lit: 2}}",
		"return: {lit: 1, left: {lit: 2}}",
	} {
		_, err := LoadDocument(strings.NewReader(data), NewProductionBuilder())
		assert.Error(t, err, data)
	}
}

func TestLoadDocumentTracing(t *testing.T) {
	var trace bytes.Buffer
	stmt, err := LoadDocument(strings.NewReader("return: {op: \"-\", left: {lit: 4}, right: {var: n}}"), NewTracingBuilder(&trace))
	require.NoError(t, err)

	assert.Equal(t, "return (4 - n)", stmt.Unparse(0))
	assert.Equal(t, "CreateLiteralNode(4)\n"+
		"CreateVariableNode(n)\n"+
		"CreateMinusNode(4, n)\n"+
		"CreateReturnStmt((4 - n))\n", trace.String())
}

func TestLoadDocumentNullBuilder(t *testing.T) {
	// The null builder does no validation, so a non-integer literal passes
	stmt, err := LoadDocument(strings.NewReader("block:\n  - return: {lit: 1.5}\n"), NewNullBuilder())
	require.NoError(t, err)
	assert.Equal(t, "<nil>", Unparse(stmt, 0))
}
