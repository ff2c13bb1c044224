// Package function implements the function catalog of the expression
// engine: signatures, the erased evaluator type, and the
// registry the checker consults to resolve a call to a concrete overload.
package function

import (
	"fmt"

	"github.com/exprengine/scalar/src/column"
	"github.com/exprengine/scalar/src/types"
)

// Signature describes one overload's shape. Params/Return may contain
// types.Generic(k) placeholders; the checker resolves them per call site
// via unification.
type Signature struct {
	Name     string
	Params   []types.DataType
	Variadic bool // the last Param type repeats 0+ times
	Return   types.DataType
}

func (s Signature) String() string {
	params := ""
	for i, p := range s.Params {
		if i > 0 {
			params += ", "
		}
		params += p.String()
	}
	if s.Variadic {
		params += "..."
	}
	return fmt.Sprintf("%s(%s) -> %s", s.Name, params, s.Return)
}

// Eval is the erased evaluator body of one overload: it receives already
// generic-resolved argument values and the GenericMap that resolved them,
// and returns the erased result value.
type Eval func(args []column.Value, generics column.GenericMap) (column.Value, error)

// Overload pairs a concrete (or generic) signature with its evaluator.
type Overload struct {
	Signature Signature
	Eval      Eval
}

// Factory produces an Overload tailored to the argument types (and, for
// functions like get_tuple whose shape depends on a constant argument,
// the constant values) observed at a particular call site. Used for
// variable-arity or constant-parameterized functions that a fixed
// Signature can't describe.
type Factory func(argTypes []types.DataType, constArgs []column.Scalar) (*Overload, error)
