package ember

import (
	"fmt"
	"strconv"
	"strings"
)

// IndentWidth is the number of spaces per unparse level.
const IndentWidth = 4

// Node is anything that can be rendered back to source-like text.
type Node interface {
	Unparse(level int) string
}

// Expression is implemented only by the expression nodes of this package.
// Level is ignored by expressions.
type Expression interface {
	Node
	exprNode()
}

// Statement is implemented only by the statement nodes of this package.
type Statement interface {
	Node
	stmtNode()
}

type LiteralExpr struct {
	Value int
}

type VariableExpr struct {
	Name string
}

type BinaryOp string

const (
	BinaryPlus           BinaryOp = "+"
	BinaryMinus          BinaryOp = "-"
	BinaryTimes          BinaryOp = "*"
	BinaryFloatDiv       BinaryOp = "/"
	BinaryIntDiv         BinaryOp = "//"
	BinaryModulus        BinaryOp = "%"
	BinaryExponentiation BinaryOp = "**"
)

// BinaryOps lists every binary operator in declaration order.
var BinaryOps = []BinaryOp{
	BinaryPlus,
	BinaryMinus,
	BinaryTimes,
	BinaryFloatDiv,
	BinaryIntDiv,
	BinaryModulus,
	BinaryExponentiation,
}

// Valid reports whether op is one of the seven binary operators.
func (op BinaryOp) Valid() bool {
	switch op {
	case BinaryPlus, BinaryMinus, BinaryTimes, BinaryFloatDiv, BinaryIntDiv, BinaryModulus, BinaryExponentiation:
		return true
	}

	return false
}

// BinaryExpr owns its operands; they are never shared with another node.
type BinaryExpr struct {
	Operation BinaryOp
	Left      Expression
	Right     Expression
}

type AssignmentStmt struct {
	Variable   *VariableExpr
	Expression Expression
}

type ReturnStmt struct {
	Expression Expression
}

// BlockStmt owns its scope. Child statements are rendered in the scope's
// insertion order.
type BlockStmt struct {
	Scope *SymbolTable[string, Statement]
}

func (*LiteralExpr) exprNode()  {}
func (*VariableExpr) exprNode() {}
func (*BinaryExpr) exprNode()   {}

func (*AssignmentStmt) stmtNode() {}
func (*ReturnStmt) stmtNode()     {}
func (*BlockStmt) stmtNode()      {}

func (e *LiteralExpr) Unparse(_ int) string {
	return strconv.Itoa(e.Value)
}

func (e *VariableExpr) Unparse(_ int) string {
	return e.Name
}

func (e *BinaryExpr) Unparse(level int) string {
	return fmt.Sprintf("(%s %s %s)", Unparse(e.Left, level), e.Operation, Unparse(e.Right, level))
}

func (s *AssignmentStmt) Unparse(level int) string {
	return indent(level) + Unparse(s.Variable, level) + " = " + Unparse(s.Expression, level)
}

func (s *ReturnStmt) Unparse(level int) string {
	return indent(level) + "return " + Unparse(s.Expression, level)
}

func (s *BlockStmt) Unparse(level int) string {
	var str strings.Builder
	str.WriteString(indent(level))
	str.WriteString("{\n")

	if s.Scope != nil {
		s.Scope.Range(func(_ string, child Statement) bool {
			str.WriteString(Unparse(child, level+1))
			str.WriteString("\n")
			return true
		})
	}

	str.WriteString(indent(level))
	str.WriteString("}")

	return str.String()
}

// Unparse renders n at level, tolerating the absent nodes handed out by
// NullBuilder.
func Unparse(n Node, level int) string {
	switch v := n.(type) {
	case nil:
		return "<nil>"
	case *LiteralExpr:
		if v == nil {
			return "<nil>"
		}
	case *VariableExpr:
		if v == nil {
			return "<nil>"
		}
	case *BinaryExpr:
		if v == nil {
			return "<nil>"
		}
	case *AssignmentStmt:
		if v == nil {
			return indent(level) + "<nil>"
		}
	case *ReturnStmt:
		if v == nil {
			return indent(level) + "<nil>"
		}
	case *BlockStmt:
		if v == nil {
			return indent(level) + "<nil>"
		}
	}

	return n.Unparse(level)
}

func indent(level int) string {
	if level <= 0 {
		return ""
	}

	return strings.Repeat(" ", level*IndentWidth)
}
