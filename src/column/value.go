package column

import (
	"fmt"
)

// Value is the erased union of Scalar and Column - the evaluator's
// argument and result type. It carries no methods
// of its own: any Scalar or Column already satisfies it, so there is no
// separate wrapper type to construct or unwrap.
type Value interface{}

var errNotAValue = fmt.Errorf("value is neither a Scalar nor a Column")

// ValueLen returns the row count of v: 1 for a Scalar (a scalar
// broadcasts across any column length), or the column's length.
func ValueLen(v Value) int {
	switch vv := v.(type) {
	case Column:
		return vv.Len()
	case Scalar:
		return 1
	default:
		panic(errNotAValue)
	}
}

// ValueIndex returns the scalar at row i, broadcasting if v is itself a
// Scalar.
func ValueIndex(v Value, i int) Scalar {
	switch vv := v.(type) {
	case Column:
		return vv.Index(i)
	case Scalar:
		return vv
	default:
		panic(errNotAValue)
	}
}

// IsColumn reports whether v is a Column rather than a bare Scalar.
func IsColumn(v Value) bool {
	_, ok := v.(Column)
	return ok
}
