package types

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// DataType's String() form is the wire/debug text every other package's
// golden tests piggyback on, so it gets its own snapshot baseline here.
func TestDataTypeStringGolden(t *testing.T) {
	cases := []struct {
		name string
		dt   DataType
	}{
		{"boolean", Boolean()},
		{"string", StringType()},
		{"uint8", UInt8()},
		{"int16", Int16()},
		{"null", NullType()},
		{"empty_array", EmptyArrayType()},
		{"nullable_uint8", Nullable(UInt8())},
		{"array_of_string", ArrayOf(StringType())},
		{"array_of_nullable_int8", ArrayOf(Nullable(Int8()))},
		{"tuple_empty", TupleOf()},
		{"tuple_mixed", TupleOf(UInt8(), Boolean(), StringType())},
		{"nested_tuple_of_arrays", TupleOf(ArrayOf(UInt16()), Nullable(Boolean()))},
		{"generic", Generic(0)},
		{"nullable_generic", Nullable(Generic(1))},
	}
	for _, c := range cases {
		snaps.MatchSnapshot(t, c.name, c.dt.String())
	}
}
