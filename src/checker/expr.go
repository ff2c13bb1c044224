package checker

import (
	"github.com/exprengine/scalar/src/column"
	"github.com/exprengine/scalar/src/function"
	"github.com/exprengine/scalar/src/types"
)

// Expr is the typed tree Check produces from an Ast: every node carries
// its fully resolved (generic-free) DataType, and every implicit
// widening the original Ast needed has been made an explicit Cast node
//.
type Expr interface {
	isExpr()
	Type() types.DataType
	String() string
}

// LiteralExpr is a type-checked constant.
type LiteralExpr struct {
	Value column.Scalar
	Ty    types.DataType
}

func (LiteralExpr) isExpr()          {}
func (e LiteralExpr) Type() types.DataType { return e.Ty }
func (e LiteralExpr) String() string       { return e.Value.String() }

// ColumnRefExpr is a type-checked column reference.
type ColumnRefExpr struct {
	Name string
	Ty   types.DataType
}

func (ColumnRefExpr) isExpr()          {}
func (e ColumnRefExpr) Type() types.DataType { return e.Ty }
func (e ColumnRefExpr) String() string       { return e.Name }

// CastExpr wraps Inner with an explicit widening to Ty.
type CastExpr struct {
	Inner Expr
	Ty    types.DataType
}

func (CastExpr) isExpr()          {}
func (e CastExpr) Type() types.DataType { return e.Ty }
func (e CastExpr) String() string       { return "CAST(" + e.Inner.String() + " AS " + e.Ty.String() + ")" }

// CallExpr is a type-checked function call: Overload names the concrete
// resolved overload, Generics is the dense binding that resolved any
// Generic(k) in its signature, and Ty is the call's resolved return type.
type CallExpr struct {
	Name     string
	Overload function.Overload
	Args     []Expr
	Generics column.GenericMap
	Ty       types.DataType
}

func (CallExpr) isExpr()          {}
func (e CallExpr) Type() types.DataType { return e.Ty }
func (e CallExpr) String() string {
	s := e.Name + "("
	for i, a := range e.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}
