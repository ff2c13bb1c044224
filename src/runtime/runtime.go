// Package runtime implements the vectorized evaluator of the expression
// engine: it walks a checker.Expr tree and produces the
// erased column.Value it denotes, the way kokes-smda's expr.Evaluate
// walks its Expression tree against columnData (src/query/expr/eval.go),
// generalized from a fixed-grammar tree to the checker's typed one.
package runtime

import (
	"errors"
	"fmt"

	"github.com/exprengine/scalar/src/checker"
	"github.com/exprengine/scalar/src/column"
)

var (
	errColumnNotFound        = errors.New("column not found in runtime environment")
	errFunctionHasNoEvaluator = errors.New("function overload has no evaluator")
)

// Env supplies the column.Value backing each ColumnRefExpr an Expr tree
// references - the runtime's counterpart to kokes-smda's columnData map.
type Env map[string]column.Value

// Run evaluates expr against env and returns the resulting Value
// (Scalar or Column). It is the expression engine's single evaluation
// entry point, to be called only on Check's output - never on a raw Ast.
func Run(expr checker.Expr, env Env) (column.Value, error) {
	switch e := expr.(type) {
	case checker.LiteralExpr:
		return e.Value, nil
	case checker.ColumnRefExpr:
		v, ok := env[e.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", errColumnNotFound, e.Name)
		}
		return v, nil
	case checker.CastExpr:
		inner, err := Run(e.Inner, env)
		if err != nil {
			return nil, err
		}
		return RunCast(inner, e.Inner.Type(), e.Ty)
	case checker.CallExpr:
		if e.Overload.Eval == nil {
			return nil, fmt.Errorf("%w: %s", errFunctionHasNoEvaluator, e.Name)
		}
		args := make([]column.Value, len(e.Args))
		for i, a := range e.Args {
			v, err := Run(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return e.Overload.Eval(args, e.Generics)
	default:
		return nil, fmt.Errorf("unrecognized expr node %T", expr)
	}
}
