package types

import (
	"encoding/json"
	"testing"
)

func TestDataTypeStringer(t *testing.T) {
	tests := []struct {
		dt  DataType
		str string
	}{
		{Boolean(), "Boolean"},
		{StringType(), "String"},
		{UInt8(), "UInt8"},
		{UInt16(), "UInt16"},
		{Int8(), "Int8"},
		{Int16(), "Int16"},
		{NullType(), "Null"},
		{EmptyArrayType(), "EmptyArray"},
		{Nullable(Int16()), "Nullable<Int16>"},
		{ArrayOf(StringType()), "Array<String>"},
		{TupleOf(Boolean(), Int16()), "(Boolean, Int16)"},
		{TupleOf(), "()"},
		{Generic(0), "T0"},
		{Generic(3), "T3"},
	}
	for _, test := range tests {
		if got := test.dt.String(); got != test.str {
			t.Errorf("expected %+v to stringify to %v, got %v", test.dt, test.str, got)
		}
	}
}

func TestNullableCollapses(t *testing.T) {
	nested := Nullable(Nullable(Int16()))
	if !nested.Equal(Nullable(Int16())) {
		t.Errorf("Nullable<Nullable<T>> must collapse to Nullable<T>, got %v", nested)
	}
	if !Nullable(NullType()).Equal(NullType()) {
		t.Errorf("Nullable<Null> must collapse to Null, got %v", Nullable(NullType()))
	}
}

func TestDataTypeEqual(t *testing.T) {
	tests := []struct {
		a, b DataType
		eq   bool
	}{
		{Int16(), Int16(), true},
		{Int16(), UInt16(), false},
		{Nullable(Int16()), Nullable(Int16()), true},
		{Nullable(Int16()), Nullable(UInt16()), false},
		{ArrayOf(StringType()), ArrayOf(StringType()), true},
		{TupleOf(Int16(), StringType()), TupleOf(Int16(), StringType()), true},
		{TupleOf(Int16()), TupleOf(Int16(), StringType()), false},
		{Generic(0), Generic(0), true},
		{Generic(0), Generic(1), false},
	}
	for _, test := range tests {
		if got := test.a.Equal(test.b); got != test.eq {
			t.Errorf("%v.Equal(%v) = %v, expected %v", test.a, test.b, got, test.eq)
		}
	}
}

func TestDataTypeJSONRoundtrip(t *testing.T) {
	types := []DataType{
		Boolean(), StringType(), UInt8(), UInt16(), Int8(), Int16(), NullType(), EmptyArrayType(),
		Nullable(Int16()), ArrayOf(Nullable(StringType())), TupleOf(Int16(), ArrayOf(Boolean())), TupleOf(),
	}
	for _, dt := range types {
		bt, err := json.Marshal(dt)
		if err != nil {
			t.Fatal(err)
		}
		var dt2 DataType
		if err := json.Unmarshal(bt, &dt2); err != nil {
			t.Fatal(err)
		}
		if !dt.Equal(dt2) {
			t.Errorf("roundtrip failed for %v: got %v", dt, dt2)
		}
	}
}

func TestIsNullableAndNumeric(t *testing.T) {
	if !NullType().IsNullable() {
		t.Error("Null should be nullable")
	}
	if !Nullable(Int16()).IsNullable() {
		t.Error("Nullable<Int16> should be nullable")
	}
	if Int16().IsNullable() {
		t.Error("Int16 should not be nullable")
	}
	if !Int16().IsInteger() || !Nullable(UInt8()).IsInteger() {
		t.Error("Int16 and Nullable<UInt8> should be integer types")
	}
	if StringType().IsInteger() {
		t.Error("String should not be an integer type")
	}
}
