package checker

import "github.com/exprengine/scalar/src/types"

// unify binds sig's Generic(k) placeholders against the concrete src
// type. It is asymmetric: src must already be generic-free (an argument
// type observed at a call site), while sig is a function signature
// possibly containing Generic(k) at any depth. Returns false
// on a structural mismatch or a generic bound to two different types.
func unify(src, sig types.DataType, bindings map[int]types.DataType) bool {
	if sig.Kind() == types.KindGeneric {
		k, _ := sig.GenericIndex()
		if existing, ok := bindings[k]; ok {
			return existing.Equal(src)
		}
		bindings[k] = src
		return true
	}
	if src.Kind() != sig.Kind() {
		return false
	}
	switch sig.Kind() {
	case types.KindNullable, types.KindArray:
		si, _ := src.Inner()
		gi, _ := sig.Inner()
		return unify(si, gi, bindings)
	case types.KindTuple:
		sf, gf := src.Fields(), sig.Fields()
		if len(sf) != len(gf) {
			return false
		}
		for i := range sf {
			if !unify(sf[i], gf[i], bindings) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// containsGeneric reports whether t mentions Generic(k) anywhere in its
// structure - used to decide whether a parameter must be resolved via
// unification or may instead accept an inserted cast.
func containsGeneric(t types.DataType) bool {
	switch t.Kind() {
	case types.KindGeneric:
		return true
	case types.KindNullable, types.KindArray:
		inner, _ := t.Inner()
		return containsGeneric(inner)
	case types.KindTuple:
		for _, f := range t.Fields() {
			if containsGeneric(f) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
