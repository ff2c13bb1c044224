package checker

import (
	"testing"

	"github.com/exprengine/scalar/src/types"
)

func TestUnifyBindsGeneric(t *testing.T) {
	bindings := map[int]types.DataType{}
	if !unify(types.Int16(), types.Generic(0), bindings) {
		t.Fatal("expected Int16 to unify against T0")
	}
	if !bindings[0].Equal(types.Int16()) {
		t.Errorf("expected T0 bound to Int16, got %v", bindings[0])
	}
}

func TestUnifyRejectsConflictingBinding(t *testing.T) {
	bindings := map[int]types.DataType{0: types.Int16()}
	if unify(types.UInt8(), types.Generic(0), bindings) {
		t.Error("expected a conflicting generic binding to fail unification")
	}
}

func TestUnifyStructural(t *testing.T) {
	bindings := map[int]types.DataType{}
	sig := types.ArrayOf(types.Generic(0))
	if !unify(types.ArrayOf(types.StringType()), sig, bindings) {
		t.Fatal("expected Array<String> to unify against Array<T0>")
	}
	if !bindings[0].Equal(types.StringType()) {
		t.Errorf("expected T0 bound to String, got %v", bindings[0])
	}
	if unify(types.Boolean(), sig, map[int]types.DataType{}) {
		t.Error("expected a non-array to fail unification against Array<T0>")
	}
}

func TestContainsGeneric(t *testing.T) {
	if containsGeneric(types.UInt8()) {
		t.Error("UInt8 should not contain a generic")
	}
	if !containsGeneric(types.Nullable(types.Generic(0))) {
		t.Error("Nullable<T0> should contain a generic")
	}
	if !containsGeneric(types.TupleOf(types.Boolean(), types.Generic(1))) {
		t.Error("(Boolean, T1) should contain a generic")
	}
}
