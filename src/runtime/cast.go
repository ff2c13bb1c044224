package runtime

import (
	"fmt"

	"github.com/exprengine/scalar/src/column"
	"github.com/exprengine/scalar/src/types"
)

// RunCast converts v (of declared type from) to to. It is the single
// central casting table: every widening the checker is willing to
// insert a CastExpr for, this function knows how to actually perform,
// at both the scalar and column level. A cast the checker would never
// have produced reaching here is an engine bug, not a user-facing
// error, so it panics rather than returning one.
func RunCast(v column.Value, from, to types.DataType) (column.Value, error) {
	if from.Equal(to) {
		return v, nil
	}
	if col, ok := v.(column.Column); ok {
		b := column.NewBuilder(to, col.Len(), nil)
		for i := 0; i < col.Len(); i++ {
			s, err := castScalar(col.Index(i), from, to)
			if err != nil {
				return nil, err
			}
			if err := b.Push(s); err != nil {
				return nil, err
			}
		}
		return b.Build(), nil
	}
	s, ok := v.(column.Scalar)
	if !ok {
		panic(fmt.Sprintf("RunCast: value %v is neither Scalar nor Column", v))
	}
	return castScalar(s, from, to)
}

func castScalar(s column.Scalar, from, to types.DataType) (column.Scalar, error) {
	if _, isNull := s.(column.NullScalar); isNull {
		if to.IsNullable() {
			return column.NullScalar{}, nil
		}
		panic(fmt.Sprintf("unsupported cast: NULL has no representation in %v", to))
	}

	if to.Kind() == types.KindNullable {
		inner, _ := to.Inner()
		fromInner := from
		if from.Kind() == types.KindNullable {
			fromInner, _ = from.Inner()
		}
		return castScalar(s, fromInner, inner)
	}
	fromInner := from
	if from.Kind() == types.KindNullable {
		fromInner, _ = from.Inner()
	}
	from = fromInner

	if from.Equal(to) {
		return s, nil
	}

	if from.Kind() == types.KindEmptyArray && to.Kind() == types.KindArray {
		innerTo, _ := to.Inner()
		return column.ArrayScalar{Values: column.NewBuilder(innerTo, 0, nil).Build()}, nil
	}
	if from.Kind() == types.KindArray && to.Kind() == types.KindArray {
		arr := s.(column.ArrayScalar)
		fi, _ := from.Inner()
		ti, _ := to.Inner()
		casted, err := RunCast(arr.Values, fi, ti)
		if err != nil {
			return nil, err
		}
		return column.ArrayScalar{Values: casted.(column.Column)}, nil
	}
	if from.Kind() == types.KindTuple && to.Kind() == types.KindTuple {
		tup := s.(column.TupleScalar)
		ff, tf := from.Fields(), to.Fields()
		vals := make([]column.Scalar, len(tup.Values))
		for i := range tup.Values {
			v, err := castScalar(tup.Values[i], ff[i], tf[i])
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		return column.TupleScalar{Values: vals}, nil
	}

	switch v := s.(type) {
	case column.IntegerScalar[uint8]:
		switch to.Kind() {
		case types.KindUInt16:
			return column.IntegerScalar[uint16]{Value: uint16(v.Value)}, nil
		case types.KindInt16:
			return column.IntegerScalar[int16]{Value: int16(v.Value)}, nil
		}
	case column.IntegerScalar[int8]:
		if to.Kind() == types.KindInt16 {
			return column.IntegerScalar[int16]{Value: int16(v.Value)}, nil
		}
	}

	panic(fmt.Sprintf("unsupported cast from %v to %v", from, to))
}
