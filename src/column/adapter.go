package column

// This file holds the typed adapters: statically-typed façades bridging
// the erased Scalar/Column interfaces to kernels written against
// concrete Go types. Go's interfaces, type assertions and generics
// already give us try_downcast/upcast for free - there's no separate
// adapter object hierarchy, just these small named helpers.

// TryInteger downcasts s to IntegerScalar[T], the statically-typed view a
// kernel written for one integer width expects.
func TryInteger[T Integer](s Scalar) (IntegerScalar[T], bool) {
	v, ok := s.(IntegerScalar[T])
	return v, ok
}

// TryBoolean downcasts s to BooleanScalar.
func TryBoolean(s Scalar) (BooleanScalar, bool) {
	v, ok := s.(BooleanScalar)
	return v, ok
}

// TryString downcasts s to StringScalar.
func TryString(s Scalar) (StringScalar, bool) {
	v, ok := s.(StringScalar)
	return v, ok
}

// TryArray downcasts s to ArrayScalar.
func TryArray(s Scalar) (ArrayScalar, bool) {
	v, ok := s.(ArrayScalar)
	return v, ok
}

// TryTuple downcasts s to TupleScalar.
func TryTuple(s Scalar) (TupleScalar, bool) {
	v, ok := s.(TupleScalar)
	return v, ok
}

// AsInteger upcasts a concrete integer value to the erased Scalar - the
// inverse of TryInteger. Named for symmetry even though in Go this is
// just a conversion through the interface.
func AsInteger[T Integer](v T) Scalar { return IntegerScalar[T]{Value: v} }

// TryIntegerColumn downcasts c to *IntegerColumn[T].
func TryIntegerColumn[T Integer](c Column) (*IntegerColumn[T], bool) {
	v, ok := c.(*IntegerColumn[T])
	return v, ok
}

// TryNullableColumn downcasts c to *NullableColumn.
func TryNullableColumn(c Column) (*NullableColumn, bool) {
	v, ok := c.(*NullableColumn)
	return v, ok
}

// TryArrayColumn downcasts c to *ArrayColumn.
func TryArrayColumn(c Column) (*ArrayColumn, bool) {
	v, ok := c.(*ArrayColumn)
	return v, ok
}

// TryTupleColumn downcasts c to *TupleColumn.
func TryTupleColumn(c Column) (*TupleColumn, bool) {
	v, ok := c.(*TupleColumn)
	return v, ok
}

// TryBooleanColumn downcasts c to *BooleanColumn.
func TryBooleanColumn(c Column) (*BooleanColumn, bool) {
	v, ok := c.(*BooleanColumn)
	return v, ok
}

// TryStringColumn downcasts c to *StringColumn.
func TryStringColumn(c Column) (*StringColumn, bool) {
	v, ok := c.(*StringColumn)
	return v, ok
}
