package builtins

import (
	"testing"

	"github.com/exprengine/scalar/src/checker"
	"github.com/exprengine/scalar/src/column"
	"github.com/exprengine/scalar/src/function"
	"github.com/exprengine/scalar/src/runtime"
	"github.com/exprengine/scalar/src/types"
)

func newRegistry() *function.Registry {
	r := function.NewRegistry()
	Register(r)
	return r
}

func evalAst(t *testing.T, r *function.Registry, schema checker.Schema, env runtime.Env, ast checker.Ast) column.Value {
	t.Helper()
	expr, err := checker.Check(ast, r, schema)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	v, err := runtime.Run(expr, env)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return v
}

func lit(v column.Scalar, dt types.DataType) checker.Ast {
	return checker.LiteralAst{Value: v, Type: dt}
}

func TestAndTrueFalse(t *testing.T) {
	r := newRegistry()
	v := evalAst(t, r, nil, nil, checker.CallAst{Name: "and", Args: []checker.Ast{
		lit(column.BooleanScalar(true), types.Boolean()),
		lit(column.BooleanScalar(false), types.Boolean()),
	}})
	if !v.(column.Scalar).Equal(column.BooleanScalar(false)) {
		t.Errorf("expected FALSE, got %v", v)
	}
}

func TestAndNullFalse(t *testing.T) {
	r := newRegistry()
	v := evalAst(t, r, nil, nil, checker.CallAst{Name: "and", Args: []checker.Ast{
		lit(column.NullScalar{}, types.NullType()),
		lit(column.BooleanScalar(false), types.Boolean()),
	}})
	if !v.(column.Scalar).Equal(column.NullScalar{}) {
		t.Errorf("expected NULL, got %v", v)
	}
}

func TestPlusWithNullableColumn(t *testing.T) {
	r := newRegistry()
	b := column.NewBuilder(types.Nullable(types.UInt8()), 3, nil)
	for _, v := range []column.Scalar{
		column.IntegerScalar[uint8]{Value: 10},
		column.NullScalar{},
		column.IntegerScalar[uint8]{Value: 200},
	} {
		if err := b.Push(v); err != nil {
			t.Fatal(err)
		}
	}
	col := b.Build()
	schema := checker.Schema{"a": types.Nullable(types.UInt8())}
	env := runtime.Env{"a": col}
	// plus is pinned to Int16, so the Nullable<UInt8> column and the
	// UInt8 literal both widen to Nullable<Int16> through the nullable
	// pass-through overload's cast-insertion path.
	v := evalAst(t, r, schema, env, checker.CallAst{Name: "plus", Args: []checker.Ast{
		checker.ColumnRefAst{Name: "a"},
		lit(column.IntegerScalar[uint8]{Value: 5}, types.UInt8()),
	}})
	out := v.(column.Column)
	if !out.Index(0).Equal(column.IntegerScalar[int16]{Value: 15}) {
		t.Errorf("row 0: expected 15, got %v", out.Index(0))
	}
	if !out.Index(1).Equal(column.NullScalar{}) {
		t.Errorf("row 1: expected NULL, got %v", out.Index(1))
	}
}

func TestNotOnNullableBooleanColumn(t *testing.T) {
	r := newRegistry()
	b := column.NewBuilder(types.Nullable(types.Boolean()), 2, nil)
	if err := b.Push(column.BooleanScalar(true)); err != nil {
		t.Fatal(err)
	}
	if err := b.Push(column.NullScalar{}); err != nil {
		t.Fatal(err)
	}
	col := b.Build()
	schema := checker.Schema{"a": types.Nullable(types.Boolean())}
	env := runtime.Env{"a": col}
	v := evalAst(t, r, schema, env, checker.CallAst{Name: "not", Args: []checker.Ast{checker.ColumnRefAst{Name: "a"}}})
	out := v.(column.Column)
	if !out.Index(0).Equal(column.BooleanScalar(false)) {
		t.Errorf("row 0: expected FALSE, got %v", out.Index(0))
	}
	if !out.Index(1).Equal(column.NullScalar{}) {
		t.Errorf("row 1: expected NULL, got %v", out.Index(1))
	}
}

func TestLeastOfFour(t *testing.T) {
	r := newRegistry()
	// least's factory pins every argument to Int16 (spec §6:
	// least(Int16...) -> Int16), so UInt8 literals widen on the way in
	// and the result comes back as Int16(10), not UInt8(10).
	v := evalAst(t, r, nil, nil, checker.CallAst{Name: "least", Args: []checker.Ast{
		lit(column.IntegerScalar[uint8]{Value: 10}, types.UInt8()),
		lit(column.IntegerScalar[uint8]{Value: 20}, types.UInt8()),
		lit(column.IntegerScalar[uint8]{Value: 30}, types.UInt8()),
		lit(column.IntegerScalar[uint8]{Value: 40}, types.UInt8()),
	}})
	if !v.(column.Scalar).Equal(column.IntegerScalar[int16]{Value: 10}) {
		t.Errorf("expected 10, got %v", v)
	}
}

func TestGetTupleOfCreateTuple(t *testing.T) {
	r := newRegistry()
	v := evalAst(t, r, nil, nil, checker.CallAst{Name: "get_tuple", Args: []checker.Ast{
		checker.CallAst{Name: "create_tuple", Args: []checker.Ast{
			lit(column.IntegerScalar[uint8]{Value: 1}, types.UInt8()),
			lit(column.BooleanScalar(true), types.Boolean()),
		}},
		lit(column.IntegerScalar[int16]{Value: 1}, types.Int16()),
	}})
	if !v.(column.Scalar).Equal(column.BooleanScalar(true)) {
		t.Errorf("expected TRUE, got %v", v)
	}
}

// get_tuple's factory reads its index literal before any cast-insertion
// runs, so a UInt8 index (e.g. get_tuple(t, 0u8), the form exprdemo's own
// help text uses) must resolve on its own width, not only an Int16 one.
func TestGetTupleWithUInt8Index(t *testing.T) {
	r := newRegistry()
	v := evalAst(t, r, nil, nil, checker.CallAst{Name: "get_tuple", Args: []checker.Ast{
		checker.CallAst{Name: "create_tuple", Args: []checker.Ast{
			lit(column.IntegerScalar[uint8]{Value: 1}, types.UInt8()),
			lit(column.BooleanScalar(true), types.Boolean()),
		}},
		lit(column.IntegerScalar[uint8]{Value: 0}, types.UInt8()),
	}})
	if !v.(column.Scalar).Equal(column.IntegerScalar[uint8]{Value: 1}) {
		t.Errorf("expected 1, got %v", v)
	}
}

func TestGetOfCreateArray(t *testing.T) {
	r := newRegistry()
	v := evalAst(t, r, nil, nil, checker.CallAst{Name: "get", Args: []checker.Ast{
		checker.CallAst{Name: "create_array", Args: []checker.Ast{
			lit(column.IntegerScalar[uint8]{Value: 11}, types.UInt8()),
			lit(column.IntegerScalar[uint8]{Value: 22}, types.UInt8()),
		}},
		lit(column.IntegerScalar[int16]{Value: 1}, types.Int16()),
	}})
	if !v.(column.Scalar).Equal(column.IntegerScalar[uint8]{Value: 22}) {
		t.Errorf("expected 22, got %v", v)
	}
}
