package checker

import (
	"testing"

	"github.com/exprengine/scalar/src/column"
	"github.com/exprengine/scalar/src/function"
	"github.com/exprengine/scalar/src/types"
)

func testRegistry() *function.Registry {
	r := function.NewRegistry()
	function.RegisterNArg(r, "and", []types.DataType{types.Boolean(), types.Boolean()}, types.Boolean(),
		func(args []column.Value, _ column.GenericMap) (column.Value, error) {
			a := args[0].(column.Scalar).(column.BooleanScalar)
			b := args[1].(column.Scalar).(column.BooleanScalar)
			return column.BooleanScalar(bool(a) && bool(b)), nil
		})
	function.RegisterNArg(r, "plus", []types.DataType{types.Generic(0), types.Generic(0)}, types.Generic(0),
		func(args []column.Value, _ column.GenericMap) (column.Value, error) {
			a := args[0].(column.Scalar).(column.IntegerScalar[uint8])
			b := args[1].(column.Scalar).(column.IntegerScalar[uint8])
			return column.IntegerScalar[uint8]{Value: a.Value + b.Value}, nil
		})
	return r
}

func TestCheckLiteralAndColumnRef(t *testing.T) {
	r := testRegistry()
	schema := Schema{"a": types.UInt8()}

	e, err := Check(ColumnRefAst{Name: "a"}, r, schema)
	if err != nil {
		t.Fatal(err)
	}
	if !e.Type().Equal(types.UInt8()) {
		t.Errorf("expected UInt8, got %v", e.Type())
	}

	if _, err := Check(ColumnRefAst{Name: "missing"}, r, schema); err == nil {
		t.Error("expected an error for an unknown column")
	}
}

func TestCheckCallExactMatch(t *testing.T) {
	r := testRegistry()
	ast := CallAst{Name: "and", Args: []Ast{
		LiteralAst{Value: column.BooleanScalar(true), Type: types.Boolean()},
		LiteralAst{Value: column.BooleanScalar(false), Type: types.Boolean()},
	}}
	e, err := Check(ast, r, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !e.Type().Equal(types.Boolean()) {
		t.Errorf("expected Boolean, got %v", e.Type())
	}
	call := e.(CallExpr)
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 checked args, got %d", len(call.Args))
	}
}

func TestCheckCallWithNullPropagatesToNullableOverload(t *testing.T) {
	r := testRegistry()
	ast := CallAst{Name: "and", Args: []Ast{
		LiteralAst{Value: column.NullScalar{}, Type: types.NullType()},
		LiteralAst{Value: column.BooleanScalar(false), Type: types.Boolean()},
	}}
	e, err := Check(ast, r, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !e.Type().Equal(types.Nullable(types.Boolean())) {
		t.Errorf("expected Nullable<Boolean>, got %v", e.Type())
	}
	call := e.(CallExpr)
	if _, ok := call.Args[0].(CastExpr); !ok {
		t.Errorf("expected the Null argument to be wrapped in a cast, got %T", call.Args[0])
	}
}

func TestCheckCallResolvesGeneric(t *testing.T) {
	r := testRegistry()
	ast := CallAst{Name: "plus", Args: []Ast{
		LiteralAst{Value: column.IntegerScalar[uint8]{Value: 1}, Type: types.UInt8()},
		LiteralAst{Value: column.IntegerScalar[uint8]{Value: 2}, Type: types.UInt8()},
	}}
	e, err := Check(ast, r, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !e.Type().Equal(types.UInt8()) {
		t.Errorf("expected UInt8, got %v", e.Type())
	}
}

func TestCheckCallUnknownFunction(t *testing.T) {
	r := testRegistry()
	ast := CallAst{Name: "nope", Args: nil}
	if _, err := Check(ast, r, nil); err == nil {
		t.Error("expected an error for an unknown function")
	}
}

func TestCheckCallNoMatchingOverload(t *testing.T) {
	r := testRegistry()
	ast := CallAst{Name: "and", Args: []Ast{
		LiteralAst{Value: column.StringScalar("x"), Type: types.StringType()},
		LiteralAst{Value: column.BooleanScalar(false), Type: types.Boolean()},
	}}
	if _, err := Check(ast, r, nil); err == nil {
		t.Error("expected an error when no overload matches")
	}
}
