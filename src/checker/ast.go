// Package checker implements the type checker of the expression engine:
// the untyped AST, the typed Expr tree it compiles to, and the
// unification/casting machinery that bridges them.
package checker

import (
	"github.com/exprengine/scalar/src/column"
	"github.com/exprengine/scalar/src/types"
)

// Ast is the untyped surface syntax the checker consumes: a literal, a
// column reference, or a function call. There is no parser in this
// engine - callers construct an Ast tree directly, the way an upstream
// planner would.
type Ast interface {
	isAst()
}

// LiteralAst is a constant value with its declared type. Untyped NULL is
// LiteralAst{Value: column.NullScalar{}, Type: types.NullType()}.
type LiteralAst struct {
	Value column.Scalar
	Type  types.DataType
}

func (LiteralAst) isAst() {}

// ColumnRefAst names a column whose type comes from the schema passed to
// Check.
type ColumnRefAst struct {
	Name string
}

func (ColumnRefAst) isAst() {}

// CallAst is a function call by name over zero or more argument ASTs.
type CallAst struct {
	Name string
	Args []Ast
}

func (CallAst) isAst() {}
