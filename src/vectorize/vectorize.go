// Package vectorize implements the row-broadcasting helpers that turn a scalar-at-a-time kernel into one that runs over whole
// columns, literal-broadcasting any length-1 argument the way
// kokes-smda's compFactoryInts/compFactoryFloats broadcast an isLiteral
// chunk against a dense one.
package vectorize

import (
	"github.com/exprengine/scalar/src/column"
	"github.com/exprengine/scalar/src/types"
)

// outputLength returns the common row count of args, treating any
// length-1 argument as a broadcastable literal.
func outputLength(args ...column.Value) int {
	n := 1
	for _, a := range args {
		if l := column.ValueLen(a); l > n {
			n = l
		}
	}
	return n
}

func broadcastIndex(a column.Value, i int) int {
	if column.ValueLen(a) == 1 {
		return 0
	}
	return i
}

// Unary1Arg runs kernel row-by-row over a single argument, returning a
// column of type ret.
func Unary1Arg(ret types.DataType, generics column.GenericMap, arg column.Value, kernel func(column.Scalar) (column.Scalar, error)) (column.Value, error) {
	n := outputLength(arg)
	b := column.NewBuilder(ret, n, generics)
	for i := 0; i < n; i++ {
		v, err := kernel(column.ValueIndex(arg, broadcastIndex(arg, i)))
		if err != nil {
			return nil, err
		}
		if err := b.Push(v); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// Binary2Arg runs kernel row-by-row over two arguments, broadcasting
// whichever side is length-1 - the direct generalization of kokes-smda's
// compFactoryInts/compFactoryFloats duplication, the kind of duplication
// its own "ARCH" TODO in projections.go called out for generics.
func Binary2Arg(ret types.DataType, generics column.GenericMap, a, b column.Value, kernel func(column.Scalar, column.Scalar) (column.Scalar, error)) (column.Value, error) {
	n := outputLength(a, b)
	out := column.NewBuilder(ret, n, generics)
	for i := 0; i < n; i++ {
		v, err := kernel(column.ValueIndex(a, broadcastIndex(a, i)), column.ValueIndex(b, broadcastIndex(b, i)))
		if err != nil {
			return nil, err
		}
		if err := out.Push(v); err != nil {
			return nil, err
		}
	}
	return out.Build(), nil
}

// VariadicArg runs kernel over one row's worth of scalars drawn from an
// arbitrary number of arguments - the vectorized shape least/create_array
// and friends need.
func VariadicArg(ret types.DataType, generics column.GenericMap, args []column.Value, kernel func([]column.Scalar) (column.Scalar, error)) (column.Value, error) {
	n := outputLength(args...)
	out := column.NewBuilder(ret, n, generics)
	row := make([]column.Scalar, len(args))
	for i := 0; i < n; i++ {
		for j, a := range args {
			row[j] = column.ValueIndex(a, broadcastIndex(a, i))
		}
		v, err := kernel(row)
		if err != nil {
			return nil, err
		}
		if err := out.Push(v); err != nil {
			return nil, err
		}
	}
	return out.Build(), nil
}
