package function

import (
	"fmt"

	"github.com/exprengine/scalar/src/column"
	"github.com/exprengine/scalar/src/types"
	"github.com/exprengine/scalar/src/vectorize"
)

var errUnknownFunction = fmt.Errorf("unknown function")

// Registry holds every overload (builtin or factory-produced) the checker
// can resolve a call against, grounded on kokes-smda's single-package
// function dispatch (src/column/functions.go, projections.go) but made
// data-driven instead of a big switch in Evaluate.
type Registry struct {
	builtins  map[string][]Overload
	factories map[string]Factory
}

// NewRegistry returns an empty registry. Use builtins.Register to
// populate the reference catalog.
func NewRegistry() *Registry {
	return &Registry{
		builtins:  make(map[string][]Overload),
		factories: make(map[string]Factory),
	}
}

// RegisterBuiltin adds one fixed-signature overload under its name.
func (r *Registry) RegisterBuiltin(o Overload) {
	r.builtins[o.Signature.Name] = append(r.builtins[o.Signature.Name], o)
}

// RegisterFactory adds a call-site-dependent overload producer under name.
func (r *Registry) RegisterFactory(name string, f Factory) {
	r.factories[name] = f
}

// Candidates returns every fixed-signature overload registered for name,
// the set the checker's unification tries in order.
func (r *Registry) Candidates(name string) ([]Overload, error) {
	cs, ok := r.builtins[name]
	if !ok {
		if _, ok := r.factories[name]; ok {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", errUnknownFunction, name)
	}
	return cs, nil
}

// FactoryFor returns the factory registered for name, if any.
func (r *Registry) FactoryFor(name string) (Factory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

// Known reports whether name is registered at all (builtin or factory).
// The checker uses it to reject an unregistered name up front, with the
// same "no overload matches these argument types" error it gives a known
// name whose overloads all fail.
func (r *Registry) Known(name string) bool {
	if _, ok := r.builtins[name]; ok {
		return true
	}
	_, ok := r.factories[name]
	return ok
}

// RegisterNArg registers a homogeneous fixed-arity function's reference
// implementation plus two overload families the checker can fall back to
// automatically, registered in this order:
//
//   - the core overload itself, operating on non-nullable arguments;
//   - an all-Null overload (every param is plain Null) that returns Null
//     without invoking core at all - covering calls like
//     and(NULL, NULL) where neither argument ever carries a real type;
//   - a nullable pass-through overload (every param and the return type
//     wrapped in Nullable<>) that short-circuits to NULL for any row
//     with a null argument and otherwise defers to core.
//
// The all-Null overload precedes the nullable one because the checker
// tries candidates in registration order and a Null argument can also be
// cast to any Nullable<T>.
func RegisterNArg(r *Registry, name string, params []types.DataType, ret types.DataType, eval Eval) {
	core := Overload{Signature: Signature{Name: name, Params: params, Return: ret}, Eval: Vectorize(ret, eval)}
	r.RegisterBuiltin(core)

	allNullParams := make([]types.DataType, len(params))
	for i := range allNullParams {
		allNullParams[i] = types.NullType()
	}
	r.RegisterBuiltin(Overload{
		Signature: Signature{Name: name, Params: allNullParams, Return: types.NullType()},
		Eval:      allNullShortCircuit,
	})

	nullableParams := make([]types.DataType, len(params))
	for i, p := range params {
		nullableParams[i] = types.Nullable(p)
	}
	r.RegisterBuiltin(Overload{
		Signature: Signature{Name: name, Params: nullableParams, Return: types.Nullable(ret)},
		Eval:      nullablePassThrough(core),
	})
}

// Vectorize wraps a kernel written against a single row of scalars so it
// also accepts column.Column arguments. When every argument is a bare
// Scalar it calls eval directly and passes its Scalar result straight
// through - the single-row shape every kernel in this package is
// naturally written against. Once any argument is a Column it runs eval
// once per output row via vectorize.VariadicArg, which also broadcasts
// any length-1 argument as a literal.
func Vectorize(ret types.DataType, eval Eval) Eval {
	return func(args []column.Value, generics column.GenericMap) (column.Value, error) {
		scalarOnly := true
		for _, a := range args {
			if column.IsColumn(a) {
				scalarOnly = false
				break
			}
		}
		if scalarOnly {
			return eval(args, generics)
		}
		concreteRet := column.ConcreteType(ret, generics)
		return vectorize.VariadicArg(concreteRet, generics, args, func(row []column.Scalar) (column.Scalar, error) {
			rowArgs := make([]column.Value, len(row))
			for i, s := range row {
				rowArgs[i] = s
			}
			res, err := eval(rowArgs, generics)
			if err != nil {
				return nil, err
			}
			s, ok := res.(column.Scalar)
			if !ok {
				return nil, fmt.Errorf("vectorized kernel returned a non-scalar %T for a single row", res)
			}
			return s, nil
		})
	}
}

func allNullShortCircuit(args []column.Value, _ column.GenericMap) (column.Value, error) {
	if allScalar(args) {
		return column.NullScalar{}, nil
	}
	n := 1
	for _, a := range args {
		if l := column.ValueLen(a); l > n {
			n = l
		}
	}
	return column.NewNullColumn(n), nil
}

func allScalar(args []column.Value) bool {
	for _, a := range args {
		if column.IsColumn(a) {
			return false
		}
	}
	return true
}

// nullablePassThrough wraps core so every argument is checked for a null
// before core ever runs; a null anywhere propagates straight to a null
// result. When every argument is a bare Scalar this short-circuits to a
// Scalar result (NullScalar{} on a null argument, otherwise core's own
// scalar result) rather than building a length-1 Column, mirroring
// Vectorize's scalar-only branch - a caller evaluating and(NULL, false)
// needs back a Scalar(Null), not a one-row Column.
func nullablePassThrough(core Overload) Eval {
	return func(args []column.Value, generics column.GenericMap) (column.Value, error) {
		if allScalar(args) {
			rowArgs := make([]column.Value, len(args))
			for i, a := range args {
				if _, isNull := a.(column.NullScalar); isNull {
					return column.NullScalar{}, nil
				}
				rowArgs[i] = a
			}
			return core.Eval(rowArgs, generics)
		}

		n := 1
		for _, a := range args {
			if l := column.ValueLen(a); l > n {
				n = l
			}
		}
		retType := column.ConcreteType(core.Signature.Return, generics)
		b := column.NewBuilder(types.Nullable(retType), n, nil)
		rowArgs := make([]column.Value, len(args))
		for i := 0; i < n; i++ {
			anyNull := false
			for j, a := range args {
				idx := i
				if column.ValueLen(a) == 1 {
					idx = 0
				}
				s := column.ValueIndex(a, idx)
				if _, isNull := s.(column.NullScalar); isNull {
					anyNull = true
					break
				}
				rowArgs[j] = s
			}
			if anyNull {
				b.PushDefault()
				continue
			}
			res, err := core.Eval(rowArgs, generics)
			if err != nil {
				return nil, err
			}
			resultIdx := 0
			if column.ValueLen(res) > 1 {
				resultIdx = i
			}
			if err := b.Push(column.ValueIndex(res, resultIdx)); err != nil {
				return nil, err
			}
		}
		return b.Build(), nil
	}
}
