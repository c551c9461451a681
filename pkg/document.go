package ember

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// A document describes one statement tree in YAML, for example:
//
//	block:
//	  - assign: {var: x, expr: {lit: 10}}
//	  - label: result
//	    return: {op: "*", left: {var: x}, right: {lit: 2}}
//
// Exactly one of assign, return or block is set per statement, and exactly
// one of lit, var or op per expression.
type stmtDoc struct {
	Label  string     `yaml:"label"`
	Assign *assignDoc `yaml:"assign"`
	Return *exprDoc   `yaml:"return"`
	Block  []stmtDoc  `yaml:"block"`
}

type assignDoc struct {
	Var  string   `yaml:"var"`
	Expr *exprDoc `yaml:"expr"`
}

type exprDoc struct {
	Lit   interface{} `yaml:"lit"`
	Var   string      `yaml:"var"`
	Op    string      `yaml:"op"`
	Left  *exprDoc    `yaml:"left"`
	Right *exprDoc    `yaml:"right"`
}

// LoadDocument decodes a statement document and builds it with f. Nested
// blocks get scopes chained to the scope of the enclosing block.
func LoadDocument(r io.Reader, f NodeFactory) (Statement, error) {
	var doc stmtDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.New("document: empty input")
		}

		return nil, errors.Wrap(err, "document: decode")
	}

	return doc.build(f, nil)
}

func (d *stmtDoc) build(f NodeFactory, scope *SymbolTable[string, Statement]) (Statement, error) {
	set := 0
	if d.Assign != nil {
		set++
	}
	if d.Return != nil {
		set++
	}
	if d.Block != nil {
		set++
	}

	if set != 1 {
		return nil, errors.Errorf("document: statement %q must have exactly one of assign, return, block", d.Label)
	}

	switch {
	case d.Assign != nil:
		if d.Assign.Var == "" {
			return nil, errors.Errorf("document: assignment %q has no variable", d.Label)
		}

		expr, err := d.Assign.Expr.build(f)
		if err != nil {
			return nil, err
		}

		return f.CreateAssignmentStmt(f.CreateVariableNode(d.Assign.Var), expr), nil
	case d.Return != nil:
		expr, err := d.Return.build(f)
		if err != nil {
			return nil, err
		}

		return f.CreateReturnStmt(expr), nil
	default:
		child := NewChildSymbolTable(scope)
		for i := range d.Block {
			label := d.Block[i].Label
			if label == "" {
				label = fmt.Sprintf("s%d", i)
			}

			stmt, err := d.Block[i].build(f, child)
			if err != nil {
				return nil, err
			}

			if err := child.Add(label, stmt); err != nil {
				return nil, errors.Wrapf(err, "document: block statement %d", i)
			}
		}

		return f.CreateBlockStmt(child), nil
	}
}

func (d *exprDoc) build(f NodeFactory) (Expression, error) {
	if d == nil {
		return nil, errors.New("document: missing expression")
	}

	set := 0
	if d.Lit != nil {
		set++
	}
	if d.Var != "" {
		set++
	}
	if d.Op != "" {
		set++
	}

	if set != 1 {
		return nil, errors.New("document: expression must have exactly one of lit, var, op")
	}
	if d.Op == "" && (d.Left != nil || d.Right != nil) {
		return nil, errors.New("document: left and right need an op")
	}

	switch {
	case d.Lit != nil:
		lit, err := f.CreateLiteralNode(d.Lit)
		if err != nil {
			return nil, errors.Wrap(err, "document")
		}

		return lit, nil
	case d.Var != "":
		return f.CreateVariableNode(d.Var), nil
	default:
		left, err := d.Left.build(f)
		if err != nil {
			return nil, err
		}

		right, err := d.Right.build(f)
		if err != nil {
			return nil, err
		}

		bin, err := CreateBinaryNode(f, BinaryOp(d.Op), left, right)
		if err != nil {
			return nil, errors.Wrap(err, "document")
		}

		return bin, nil
	}
}
