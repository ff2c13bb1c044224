package checker

import (
	"testing"

	"github.com/exprengine/scalar/src/types"
)

func TestCanCastTo(t *testing.T) {
	tests := []struct {
		from, to types.DataType
		exp      bool
	}{
		{types.UInt8(), types.UInt8(), true},
		{types.UInt8(), types.UInt16(), true},
		{types.UInt8(), types.Int16(), true},
		{types.UInt16(), types.UInt8(), false},
		{types.Int8(), types.Int16(), true},
		{types.Int16(), types.UInt16(), false},
		{types.NullType(), types.Nullable(types.Boolean()), true},
		{types.Boolean(), types.Nullable(types.Boolean()), true},
		{types.Nullable(types.Boolean()), types.Boolean(), false},
		{types.EmptyArrayType(), types.ArrayOf(types.StringType()), true},
		{types.ArrayOf(types.UInt8()), types.ArrayOf(types.UInt16()), true},
		{types.StringType(), types.Boolean(), false},
	}
	for _, test := range tests {
		if got := CanCastTo(test.from, test.to); got != test.exp {
			t.Errorf("CanCastTo(%v, %v) = %v, expected %v", test.from, test.to, got, test.exp)
		}
	}
}

func TestCommonSuperType(t *testing.T) {
	tests := []struct {
		a, b types.DataType
		exp  types.DataType
		err  bool
	}{
		{types.Int16(), types.Int16(), types.Int16(), false},
		{types.NullType(), types.Boolean(), types.Nullable(types.Boolean()), false},
		{types.Boolean(), types.NullType(), types.Nullable(types.Boolean()), false},
		{types.UInt8(), types.UInt16(), types.UInt16(), false},
		{types.Boolean(), types.StringType(), types.DataType{}, true},
		{types.Nullable(types.UInt8()), types.UInt16(), types.Nullable(types.UInt16()), false},
	}
	for _, test := range tests {
		got, err := CommonSuperType(test.a, test.b)
		if test.err {
			if err == nil {
				t.Errorf("expected an error for common_super_type(%v, %v)", test.a, test.b)
			}
			continue
		}
		if err != nil {
			t.Fatalf("common_super_type(%v, %v): %v", test.a, test.b, err)
		}
		if !got.Equal(test.exp) {
			t.Errorf("common_super_type(%v, %v) = %v, expected %v", test.a, test.b, got, test.exp)
		}
	}
}
