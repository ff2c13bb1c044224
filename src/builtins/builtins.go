// Package builtins registers the expression engine's reference function
// catalog into a function.Registry: the boolean connectives,
// arithmetic, least, and the array/tuple constructors and accessors.
// Naming and error style follow kokes-smda's query/expr package
// (errWrongNumberofArguments, errWrongArgumentType and friends).
package builtins

import (
	"errors"
	"fmt"

	"github.com/exprengine/scalar/src/column"
	"github.com/exprengine/scalar/src/function"
	"github.com/exprengine/scalar/src/types"
)

var (
	errWrongArgumentType = errors.New("wrong argument type passed to a function")
	errEmptyTuple        = errors.New("tuple cannot be empty")
	errIndexOutOfBounds  = errors.New("index out of bounds")
	errIndexNotConstant  = errors.New("get_tuple's second argument must be a constant integer literal")
	errLeastRequiresArg  = errors.New("least requires at least one argument")
)

// Register populates r with every function this package implements. A
// fresh registry should call this once before any checker.Check call.
func Register(r *function.Registry) {
	registerBoolean(r)
	registerArithmetic(r)
	registerLeast(r)
	registerArray(r)
	registerTuple(r)
}

func registerBoolean(r *function.Registry) {
	function.RegisterNArg(r, "and", []types.DataType{types.Boolean(), types.Boolean()}, types.Boolean(),
		func(args []column.Value, _ column.GenericMap) (column.Value, error) {
			a, ok1 := column.TryBoolean(args[0].(column.Scalar))
			b, ok2 := column.TryBoolean(args[1].(column.Scalar))
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("%w: and(%T, %T)", errWrongArgumentType, args[0], args[1])
			}
			return column.BooleanScalar(bool(a) && bool(b)), nil
		})

	function.RegisterNArg(r, "not", []types.DataType{types.Boolean()}, types.Boolean(),
		func(args []column.Value, _ column.GenericMap) (column.Value, error) {
			a, ok := column.TryBoolean(args[0].(column.Scalar))
			if !ok {
				return nil, fmt.Errorf("%w: not(%T)", errWrongArgumentType, args[0])
			}
			return column.BooleanScalar(!bool(a)), nil
		})
}

// integerBinOp applies op to two Int16 scalars - plus and minus are
// pinned to the reference catalog's Int16 signature, so narrower
// arguments arrive here already widened by the checker's cast-insertion
// path.
func integerBinOp(name string, op func(a, b int16) int16) function.Eval {
	return func(args []column.Value, _ column.GenericMap) (column.Value, error) {
		a, aOk := args[0].(column.Scalar).(column.IntegerScalar[int16])
		b, bOk := args[1].(column.Scalar).(column.IntegerScalar[int16])
		if !aOk || !bOk {
			return nil, fmt.Errorf("%w: %s(%T, %T)", errWrongArgumentType, name, args[0], args[1])
		}
		return column.IntegerScalar[int16]{Value: op(a.Value, b.Value)}, nil
	}
}

// plus and minus are pinned to the reference catalog's declared
// (Int16, Int16) -> Int16 signature (original_source/src/main.rs:
// register_2_arg::<Int16Type, Int16Type, Int16Type>), not a generic
// Generic(0) -> Generic(0) shape: a narrower argument (e.g. plus(1u8,
// 2u8)) widens to Int16 through the checker's cast-insertion path, the
// same way it already does for any other fixed-signature overload.
func registerArithmetic(r *function.Registry) {
	function.RegisterNArg(r, "plus", []types.DataType{types.Int16(), types.Int16()}, types.Int16(),
		integerBinOp("plus", func(a, b int16) int16 { return a + b }))

	// minus/negate round out the reference catalog with the arithmetic
	// inverse, grounded on kokes-smda's Prefix/Infix arithmetic operators
	// (query/expr/types.go).
	function.RegisterNArg(r, "minus", []types.DataType{types.Int16(), types.Int16()}, types.Int16(),
		integerBinOp("minus", func(a, b int16) int16 { return a - b }))

	function.RegisterNArg(r, "negate", []types.DataType{types.Generic(0)}, types.Generic(0),
		func(args []column.Value, _ column.GenericMap) (column.Value, error) {
			switch v := args[0].(column.Scalar).(type) {
			case column.IntegerScalar[int8]:
				return column.IntegerScalar[int8]{Value: -v.Value}, nil
			case column.IntegerScalar[int16]:
				return column.IntegerScalar[int16]{Value: -v.Value}, nil
			default:
				return nil, fmt.Errorf("%w: negate(%T)", errWrongArgumentType, args[0])
			}
		})
}

// registerLeast registers least as a call-site factory rather than a
// fixed RegisterNArg overload: the reference catalog declares
// least(Int16...) -> Int16 (original_source/src/main.rs registers it
// with args_type: vec![DataType::Int16; n], return_type: Int16), so any
// narrower integer argument widens to Int16 via the checker's ordinary
// cast-insertion path rather than the call's own return type tracking
// whatever width happened to be passed in.
func registerLeast(r *function.Registry) {
	r.RegisterFactory("least", func(argTypes []types.DataType, _ []column.Scalar) (*function.Overload, error) {
		if len(argTypes) == 0 {
			return nil, errLeastRequiresArg
		}
		params := make([]types.DataType, len(argTypes))
		for i := range params {
			params[i] = types.Int16()
		}
		return &function.Overload{
			Signature: function.Signature{Name: "least", Params: params, Return: types.Int16()},
			Eval: function.Vectorize(types.Int16(), func(args []column.Value, _ column.GenericMap) (column.Value, error) {
				min, ok := args[0].(column.Scalar).(column.IntegerScalar[int16])
				if !ok {
					return nil, fmt.Errorf("%w: least(%T, ...)", errWrongArgumentType, args[0])
				}
				for _, a := range args[1:] {
					v, ok := a.(column.Scalar).(column.IntegerScalar[int16])
					if !ok {
						return nil, fmt.Errorf("%w: least(_, %T)", errWrongArgumentType, a)
					}
					if v.Value < min.Value {
						min = v
					}
				}
				return min, nil
			}),
		}, nil
	})
}

func registerArray(r *function.Registry) {
	// create_array() with zero arguments always yields EmptyArray.
	r.RegisterBuiltin(function.Overload{
		Signature: function.Signature{Name: "create_array", Params: nil, Return: types.EmptyArrayType()},
		Eval: func(args []column.Value, _ column.GenericMap) (column.Value, error) {
			return column.EmptyArrayScalar{}, nil
		},
	})
	r.RegisterFactory("create_array", func(argTypes []types.DataType, _ []column.Scalar) (*function.Overload, error) {
		if len(argTypes) == 0 {
			return nil, errLeastRequiresArg
		}
		elem := argTypes[0]
		for _, t := range argTypes[1:] {
			merged, err := mergeSuperType(elem, t)
			if err != nil {
				return nil, fmt.Errorf("create_array: %w", err)
			}
			elem = merged
		}
		params := make([]types.DataType, len(argTypes))
		for i := range params {
			params[i] = elem
		}
		ret := types.ArrayOf(elem)
		return &function.Overload{
			Signature: function.Signature{Name: "create_array", Params: params, Return: ret},
			Eval: function.Vectorize(ret, func(args []column.Value, generics column.GenericMap) (column.Value, error) {
				b := column.NewBuilder(elem, len(args), nil)
				for _, a := range args {
					if err := b.Push(a.(column.Scalar)); err != nil {
						return nil, err
					}
				}
				return column.ArrayScalar{Values: b.Build()}, nil
			}),
		}, nil
	})

	// get's index parameter is Int16, matching the original's usize/Int16
	// accessor convention (spec §6: get(Array<T0>, Int16) -> T0).
	r.RegisterBuiltin(function.Overload{
		Signature: function.Signature{
			Name:   "get",
			Params: []types.DataType{types.ArrayOf(types.Generic(0)), types.Int16()},
			Return: types.Generic(0),
		},
		Eval: function.Vectorize(types.Generic(0), func(args []column.Value, _ column.GenericMap) (column.Value, error) {
			arr, ok := column.TryArray(args[0].(column.Scalar))
			if !ok {
				return nil, fmt.Errorf("%w: get(%T, _)", errWrongArgumentType, args[0])
			}
			idx, ok := column.TryInteger[int16](args[1].(column.Scalar))
			if !ok {
				return nil, fmt.Errorf("%w: get(_, %T)", errWrongArgumentType, args[1])
			}
			if idx.Value < 0 || int(idx.Value) >= arr.Values.Len() {
				return nil, fmt.Errorf("%w: index %d, length %d", errIndexOutOfBounds, idx.Value, arr.Values.Len())
			}
			return arr.Values.Index(int(idx.Value)), nil
		}),
	})
}

// mergeSuperType picks create_array's common element type from two
// argument types without importing the checker package (which itself
// imports function, so builtins can't depend on checker without an import
// cycle). It accepts only equal types, and Null alongside a type T (giving
// Nullable<T>); unlike CommonSuperType it does not widen integers,
// distribute Nullable, or merge EmptyArray with Array<T>, and it returns
// an error for every other pair.
func mergeSuperType(a, b types.DataType) (types.DataType, error) {
	if a.Equal(b) {
		return a, nil
	}
	if a.Kind() == types.KindNull {
		return types.Nullable(b), nil
	}
	if b.Kind() == types.KindNull {
		return types.Nullable(a), nil
	}
	return types.DataType{}, fmt.Errorf("create_array: elements of different types %v and %v", a, b)
}

// integerScalarToInt reads the value out of any integer-width Scalar, used
// by get_tuple's factory to accept a constant index literal regardless of
// which integer type the caller wrote it as.
func integerScalarToInt(s column.Scalar) (int, bool) {
	switch v := s.(type) {
	case column.IntegerScalar[uint8]:
		return int(v.Value), true
	case column.IntegerScalar[uint16]:
		return int(v.Value), true
	case column.IntegerScalar[int8]:
		return int(v.Value), true
	case column.IntegerScalar[int16]:
		return int(v.Value), true
	default:
		return 0, false
	}
}

func registerTuple(r *function.Registry) {
	r.RegisterBuiltin(function.Overload{
		Signature: function.Signature{Name: "create_tuple", Params: nil, Return: types.TupleOf()},
		Eval: func(args []column.Value, _ column.GenericMap) (column.Value, error) {
			return column.TupleScalar{}, nil
		},
	})
	r.RegisterFactory("create_tuple", func(argTypes []types.DataType, _ []column.Scalar) (*function.Overload, error) {
		if len(argTypes) == 0 {
			return nil, errEmptyTuple
		}
		ret := types.TupleOf(argTypes...)
		return &function.Overload{
			Signature: function.Signature{Name: "create_tuple", Params: argTypes, Return: ret},
			Eval: function.Vectorize(ret, func(args []column.Value, _ column.GenericMap) (column.Value, error) {
				vals := make([]column.Scalar, len(args))
				for i, a := range args {
					vals[i] = a.(column.Scalar)
				}
				return column.TupleScalar{Values: vals}, nil
			}),
		}, nil
	})

	r.RegisterFactory("get_tuple", func(argTypes []types.DataType, constArgs []column.Scalar) (*function.Overload, error) {
		if len(argTypes) != 2 {
			return nil, fmt.Errorf("%w: get_tuple takes exactly 2 arguments", errWrongArgumentType)
		}
		if constArgs[1] == nil {
			return nil, errIndexNotConstant
		}
		// The index literal arrives here in whatever integer width the
		// caller wrote (e.g. 0u8) - cast-insertion only runs after the
		// factory picks a signature, so this reads the constant directly
		// rather than requiring it to already be Int16.
		idx, ok := integerScalarToInt(constArgs[1])
		if !ok {
			return nil, errIndexNotConstant
		}

		tupleType, nullable := argTypes[0], false
		if tupleType.Kind() == types.KindNullable {
			tupleType, _ = tupleType.Inner()
			nullable = true
		}
		if tupleType.Kind() != types.KindTuple {
			return nil, fmt.Errorf("%w: get_tuple's first argument must be a tuple, got %v", errWrongArgumentType, argTypes[0])
		}
		fields := tupleType.Fields()
		if idx < 0 || idx >= len(fields) {
			return nil, fmt.Errorf("%w: index %d, tuple has %d fields", errIndexOutOfBounds, idx, len(fields))
		}
		ret := fields[idx]
		if nullable {
			ret = types.Nullable(ret)
		}
		return &function.Overload{
			Signature: function.Signature{Name: "get_tuple", Params: []types.DataType{argTypes[0], types.Int16()}, Return: ret},
			Eval: function.Vectorize(ret, func(args []column.Value, _ column.GenericMap) (column.Value, error) {
				s := args[0].(column.Scalar)
				if _, isNull := s.(column.NullScalar); isNull {
					return column.NullScalar{}, nil
				}
				tup, ok := column.TryTuple(s)
				if !ok {
					return nil, fmt.Errorf("%w: get_tuple(%T, _)", errWrongArgumentType, args[0])
				}
				return tup.Values[idx], nil
			}),
		}, nil
	})
}
