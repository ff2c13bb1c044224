package runtime

import (
	"testing"

	"github.com/exprengine/scalar/src/checker"
	"github.com/exprengine/scalar/src/column"
	"github.com/exprengine/scalar/src/function"
	"github.com/exprengine/scalar/src/types"
)

func TestRunLiteralAndColumnRef(t *testing.T) {
	lit, err := Run(checker.LiteralExpr{Value: column.IntegerScalar[uint8]{Value: 7}, Ty: types.UInt8()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !lit.(column.Scalar).Equal(column.IntegerScalar[uint8]{Value: 7}) {
		t.Errorf("expected 7, got %v", lit)
	}

	env := Env{"a": column.IntegerScalar[uint8]{Value: 9}}
	v, err := Run(checker.ColumnRefExpr{Name: "a", Ty: types.UInt8()}, env)
	if err != nil {
		t.Fatal(err)
	}
	if !v.(column.Scalar).Equal(column.IntegerScalar[uint8]{Value: 9}) {
		t.Errorf("expected 9, got %v", v)
	}

	if _, err := Run(checker.ColumnRefExpr{Name: "missing", Ty: types.UInt8()}, env); err == nil {
		t.Error("expected an error for a missing column")
	}
}

func TestRunCallExpr(t *testing.T) {
	overload := function.Overload{
		Signature: function.Signature{Name: "plus", Params: []types.DataType{types.UInt8(), types.UInt8()}, Return: types.UInt8()},
		Eval: func(args []column.Value, _ column.GenericMap) (column.Value, error) {
			a := args[0].(column.Scalar).(column.IntegerScalar[uint8])
			b := args[1].(column.Scalar).(column.IntegerScalar[uint8])
			return column.IntegerScalar[uint8]{Value: a.Value + b.Value}, nil
		},
	}
	call := checker.CallExpr{
		Name:     "plus",
		Overload: overload,
		Args: []checker.Expr{
			checker.LiteralExpr{Value: column.IntegerScalar[uint8]{Value: 3}, Ty: types.UInt8()},
			checker.LiteralExpr{Value: column.IntegerScalar[uint8]{Value: 4}, Ty: types.UInt8()},
		},
		Ty: types.UInt8(),
	}
	v, err := Run(call, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !v.(column.Scalar).Equal(column.IntegerScalar[uint8]{Value: 7}) {
		t.Errorf("expected 7, got %v", v)
	}
}

func TestRunCastExpr(t *testing.T) {
	cast := checker.CastExpr{
		Inner: checker.LiteralExpr{Value: column.IntegerScalar[uint8]{Value: 5}, Ty: types.UInt8()},
		Ty:    types.Int16(),
	}
	v, err := Run(cast, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !v.(column.Scalar).Equal(column.IntegerScalar[int16]{Value: 5}) {
		t.Errorf("expected Int16(5), got %v", v)
	}
}
