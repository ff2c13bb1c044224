package checker

import (
	"errors"
	"fmt"

	"github.com/exprengine/scalar/src/column"
	"github.com/exprengine/scalar/src/function"
	"github.com/exprengine/scalar/src/types"
)

var (
	errUnknownColumn      = errors.New("unknown column")
	errNoMatchingOverload = errors.New("no overload matches these argument types")
)

// Schema maps column names to their declared type - the environment a
// ColumnRefAst is checked against.
type Schema map[string]types.DataType

// Check type-checks ast against registry and schema, producing a typed
// Expr tree with every implicit widening made an explicit CastExpr node
//. This is the expression engine's single entry point for
// turning untyped input into something the runtime can evaluate.
func Check(ast Ast, registry *function.Registry, schema Schema) (Expr, error) {
	switch a := ast.(type) {
	case LiteralAst:
		return LiteralExpr{Value: a.Value, Ty: a.Type}, nil
	case ColumnRefAst:
		ty, ok := schema[a.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", errUnknownColumn, a.Name)
		}
		return ColumnRefExpr{Name: a.Name, Ty: ty}, nil
	case CallAst:
		return checkCall(a, registry, schema)
	default:
		return nil, fmt.Errorf("unrecognized ast node %T", ast)
	}
}

func checkCall(a CallAst, registry *function.Registry, schema Schema) (Expr, error) {
	args := make([]Expr, len(a.Args))
	argTypes := make([]types.DataType, len(a.Args))
	for i, raw := range a.Args {
		e, err := Check(raw, registry, schema)
		if err != nil {
			return nil, err
		}
		args[i] = e
		argTypes[i] = e.Type()
	}

	if !registry.Known(a.Name) {
		return nil, fmt.Errorf("%w: %s", errNoMatchingOverload, a.Name)
	}

	// Fixed-signature overloads first.
	candidates, err := registry.Candidates(a.Name)
	if err != nil {
		return nil, err
	}
	for _, o := range candidates {
		if expr, ok := tryCheckFunction(a.Name, o, args, argTypes); ok {
			return expr, nil
		}
	}

	// Fall back to a call-site factory (variable arity / constant params).
	if factory, ok := registry.FactoryFor(a.Name); ok {
		constArgs := literalArgs(args)
		o, err := factory(argTypes, constArgs)
		if err != nil {
			return nil, err
		}
		if expr, ok := tryCheckFunction(a.Name, *o, args, argTypes); ok {
			return expr, nil
		}
		return nil, fmt.Errorf("%w: %s%v", errNoMatchingOverload, a.Name, argTypes)
	}

	return nil, fmt.Errorf("%w: %s%v", errNoMatchingOverload, a.Name, argTypes)
}

// literalArgs extracts the constant Scalar behind any LiteralExpr
// argument (nil for non-literal positions) - the "constant-index"
// parameter a factory like get_tuple needs to pick its overload shape.
func literalArgs(args []Expr) []column.Scalar {
	out := make([]column.Scalar, len(args))
	for i, a := range args {
		if lit, ok := a.(LiteralExpr); ok {
			out[i] = lit.Value
		}
	}
	return out
}

// tryCheckFunction attempts to resolve one overload against argTypes,
// first via exact unification (no casts), then by binding each generic to
// the common super type of its occurrences and inserting a cast on every
// argument (generic-bound or not) whose type differs from its parameter's.
func tryCheckFunction(name string, o function.Overload, args []Expr, argTypes []types.DataType) (Expr, bool) {
	params, ok := expandVariadic(o.Signature, len(argTypes))
	if !ok {
		return nil, false
	}

	bindings := map[int]types.DataType{}
	exactOK := true
	for i, at := range argTypes {
		if !unify(at, params[i], bindings) {
			exactOK = false
			break
		}
	}
	if exactOK {
		return buildCallExpr(name, o, args, argTypes, bindings), true
	}

	bindings, ok = resolveGenericsWithCasts(argTypes, params)
	if !ok {
		return nil, false
	}
	casted := make([]types.DataType, len(argTypes))
	for i, at := range argTypes {
		concrete := column.ConcreteType(params[i], toGenericMap(bindings))
		if containsGeneric(concrete) {
			return nil, false
		}
		switch {
		case at.Equal(concrete):
			casted[i] = concrete
		case CanCastTo(at, concrete):
			casted[i] = concrete
		default:
			return nil, false
		}
	}
	return buildCallExpr(name, o, insertCasts(args, casted), casted, bindings), true
}

// resolveGenericsWithCasts binds every Generic(k) mentioned in params to
// the common super type of the argTypes observed at its occurrences,
// allowing params to be reached via an inserted cast rather than an
// exact structural match.
func resolveGenericsWithCasts(argTypes, params []types.DataType) (map[int]types.DataType, bool) {
	candidates := map[int][]types.DataType{}
	for i, p := range params {
		if !collectGenericCandidates(argTypes[i], p, candidates) {
			return nil, false
		}
	}
	bindings := map[int]types.DataType{}
	for k, cs := range candidates {
		merged := cs[0]
		for _, c := range cs[1:] {
			m, err := CommonSuperType(merged, c)
			if err != nil {
				return nil, false
			}
			merged = m
		}
		bindings[k] = merged
	}
	return bindings, true
}

// collectGenericCandidates walks p alongside a, recording - for every
// Generic(k) position in p - the sub-type of a occupying that position,
// and reports whether a is even shape-compatible with p. A Null argument
// contributes no candidate under a Nullable<T> or Array<T>/Tuple<...>
// wrapper (it carries no type information beyond "nullable"), letting
// the wrapper still resolve its generic from other occurrences. A bare
// Generic(k) - no enclosing Nullable wrapper in p - must NOT absorb a
// Nullable/Null argument: that would let the core (non-nullable)
// overload silently swallow nullability that only the nullable-pass-
// through overload is meant to handle, so this reports failure instead.
func collectGenericCandidates(a, p types.DataType, candidates map[int][]types.DataType) bool {
	if p.Kind() == types.KindGeneric {
		if a.IsNullable() {
			return false
		}
		k, _ := p.GenericIndex()
		candidates[k] = append(candidates[k], a)
		return true
	}
	switch p.Kind() {
	case types.KindNullable:
		inner, _ := p.Inner()
		if a.Kind() == types.KindNullable {
			ai, _ := a.Inner()
			return collectGenericCandidates(ai, inner, candidates)
		}
		if a.Kind() == types.KindNull {
			return true
		}
		return collectGenericCandidates(a, inner, candidates)
	case types.KindArray:
		if a.Kind() == types.KindEmptyArray {
			return true
		}
		if a.Kind() == types.KindArray {
			inner, _ := p.Inner()
			ai, _ := a.Inner()
			return collectGenericCandidates(ai, inner, candidates)
		}
		return false
	case types.KindTuple:
		if a.Kind() != types.KindTuple {
			return false
		}
		pf, af := p.Fields(), a.Fields()
		if len(pf) != len(af) {
			return false
		}
		for i := range pf {
			if !collectGenericCandidates(af[i], pf[i], candidates) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func expandVariadic(sig function.Signature, n int) ([]types.DataType, bool) {
	if !sig.Variadic {
		if len(sig.Params) != n {
			return nil, false
		}
		return sig.Params, true
	}
	if len(sig.Params) == 0 || n < len(sig.Params)-1 {
		return nil, false
	}
	out := make([]types.DataType, n)
	copy(out, sig.Params[:len(sig.Params)-1])
	last := sig.Params[len(sig.Params)-1]
	for i := len(sig.Params) - 1; i < n; i++ {
		out[i] = last
	}
	return out, true
}

func insertCasts(args []Expr, targets []types.DataType) []Expr {
	out := make([]Expr, len(args))
	for i, a := range args {
		if a.Type().Equal(targets[i]) {
			out[i] = a
			continue
		}
		out[i] = CastExpr{Inner: a, Ty: targets[i]}
	}
	return out
}

func buildCallExpr(name string, o function.Overload, args []Expr, argTypes []types.DataType, bindings map[int]types.DataType) Expr {
	generics := toGenericMap(bindings)
	ret := column.ConcreteType(o.Signature.Return, generics)
	return CallExpr{Name: name, Overload: o, Args: args, Generics: generics, Ty: ret}
}

func toGenericMap(bindings map[int]types.DataType) column.GenericMap {
	if len(bindings) == 0 {
		return nil
	}
	max := -1
	for k := range bindings {
		if k > max {
			max = k
		}
	}
	g := make(column.GenericMap, max+1)
	for k, v := range bindings {
		g[k] = v
	}
	return g
}
