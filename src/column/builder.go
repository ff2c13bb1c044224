package column

import (
	"fmt"

	"github.com/exprengine/scalar/src/bitmap"
	"github.com/exprengine/scalar/src/types"
)

// GenericMap resolves a function signature's Generic(k) placeholders to
// concrete types, dense and zero-indexed.
type GenericMap []types.DataType

// Resolve looks up Generic(k); ok is false if k is out of range.
func (g GenericMap) Resolve(k int) (types.DataType, bool) {
	if k < 0 || k >= len(g) {
		return types.DataType{}, false
	}
	return g[k], true
}

// ConcreteType substitutes any Generic(k) appearing in dt (at any depth)
// using g. It panics if dt still contains a Generic(k) with no entry in g -
// a leftover Generic(k) at evaluation time is an engine-side bug, not a
// user-facing error.
func ConcreteType(dt types.DataType, g GenericMap) types.DataType {
	switch dt.Kind() {
	case types.KindGeneric:
		k, _ := dt.GenericIndex()
		resolved, ok := g.Resolve(k)
		if !ok {
			panic(fmt.Sprintf("unresolved generic type variable T%d", k))
		}
		return resolved
	case types.KindNullable:
		inner, _ := dt.Inner()
		return types.Nullable(ConcreteType(inner, g))
	case types.KindArray:
		inner, _ := dt.Inner()
		return types.ArrayOf(ConcreteType(inner, g))
	case types.KindTuple:
		fields := dt.Fields()
		out := make([]types.DataType, len(fields))
		for i, f := range fields {
			out[i] = ConcreteType(f, g)
		}
		return types.TupleOf(out...)
	default:
		return dt
	}
}

// ColumnBuilder accumulates scalars into a Column. Implementations are
// the typed adapters' append-side counterpart: not safe
// for concurrent use, single-owner until Build is called.
type ColumnBuilder interface {
	// Push appends one value. It returns an error if v's runtime type doesn't match the builder's declared element
	// type.
	Push(v Scalar) error
	// PushDefault appends a type-appropriate placeholder value.
	PushDefault()
	// Len reports how many values have been pushed so far.
	Len() int
	// Build finalizes the builder into an immutable Column. The builder
	// must not be reused afterwards.
	Build() Column
}

var errScalarTypeMismatch = fmt.Errorf("scalar does not match builder's declared type")

// NewBuilder is the single generic-adapter dispatch point: a handwritten
// switch over known data types, materializing the dispatch an erased
// caller (the evaluator, a cast routine, a deserializer) needs without
// per-call type assertions scattered around.
func NewBuilder(dt types.DataType, capacity int, generics GenericMap) ColumnBuilder {
	dt = ConcreteType(dt, generics)
	switch dt.Kind() {
	case types.KindNull:
		return &nullBuilder{}
	case types.KindEmptyArray:
		return &emptyArrayBuilder{}
	case types.KindBoolean:
		return &booleanBuilder{data: bitmap.NewBitmap(0)}
	case types.KindString:
		b := &stringBuilder{offsets: make([]uint32, 1, capacity+1)}
		b.offsets[0] = 0
		return b
	case types.KindUInt8:
		return newIntegerBuilder[uint8](dt, capacity)
	case types.KindUInt16:
		return newIntegerBuilder[uint16](dt, capacity)
	case types.KindInt8:
		return newIntegerBuilder[int8](dt, capacity)
	case types.KindInt16:
		return newIntegerBuilder[int16](dt, capacity)
	case types.KindNullable:
		inner, _ := dt.Inner()
		return &nullableBuilder{
			child:    NewBuilder(inner, capacity, nil),
			validity: bitmap.NewBitmap(0),
			innerDt:  inner,
		}
	case types.KindArray:
		inner, _ := dt.Inner()
		return &arrayBuilder{
			child:   NewBuilder(inner, capacity, nil),
			offsets: []uint32{0},
		}
	case types.KindTuple:
		fields := dt.Fields()
		builders := make([]ColumnBuilder, len(fields))
		for i, f := range fields {
			builders[i] = NewBuilder(f, capacity, nil)
		}
		return &tupleBuilder{fields: builders, fieldTypes: fields}
	default:
		panic(fmt.Sprintf("no builder for data type %v", dt))
	}
}

type nullBuilder struct{ length int }

func (b *nullBuilder) Push(v Scalar) error {
	if _, ok := v.(NullScalar); !ok {
		return fmt.Errorf("%w: expected Null, got %v", errScalarTypeMismatch, v)
	}
	b.length++
	return nil
}
func (b *nullBuilder) PushDefault() { b.length++ }
func (b *nullBuilder) Len() int     { return b.length }
func (b *nullBuilder) Build() Column { return &NullColumn{length: b.length} }

type emptyArrayBuilder struct{ length int }

func (b *emptyArrayBuilder) Push(v Scalar) error {
	if _, ok := v.(EmptyArrayScalar); !ok {
		return fmt.Errorf("%w: expected EmptyArray, got %v", errScalarTypeMismatch, v)
	}
	b.length++
	return nil
}
func (b *emptyArrayBuilder) PushDefault() { b.length++ }
func (b *emptyArrayBuilder) Len() int     { return b.length }
func (b *emptyArrayBuilder) Build() Column { return &EmptyArrayColumn{length: b.length} }

type booleanBuilder struct {
	data   *bitmap.Bitmap
	length int
}

func (b *booleanBuilder) Push(v Scalar) error {
	s, ok := v.(BooleanScalar)
	if !ok {
		return fmt.Errorf("%w: expected Boolean, got %v", errScalarTypeMismatch, v)
	}
	b.data.Set(b.length, bool(s))
	b.length++
	return nil
}
func (b *booleanBuilder) PushDefault() {
	b.data.Set(b.length, false)
	b.length++
}
func (b *booleanBuilder) Len() int { return b.length }
func (b *booleanBuilder) Build() Column {
	return &BooleanColumn{data: b.data, length: b.length}
}

type stringBuilder struct {
	data    []byte
	offsets []uint32
}

func (b *stringBuilder) Push(v Scalar) error {
	s, ok := v.(StringScalar)
	if !ok {
		return fmt.Errorf("%w: expected String, got %v", errScalarTypeMismatch, v)
	}
	b.data = append(b.data, s...)
	b.offsets = append(b.offsets, uint32(len(b.data)))
	return nil
}
func (b *stringBuilder) PushDefault() {
	b.offsets = append(b.offsets, uint32(len(b.data)))
}
func (b *stringBuilder) Len() int { return len(b.offsets) - 1 }
func (b *stringBuilder) Build() Column {
	return &StringColumn{data: b.data, offsets: b.offsets}
}

type integerBuilder[T Integer] struct {
	data []T
	dt   types.DataType
}

func newIntegerBuilder[T Integer](dt types.DataType, capacity int) *integerBuilder[T] {
	return &integerBuilder[T]{data: make([]T, 0, capacity), dt: dt}
}

func (b *integerBuilder[T]) Push(v Scalar) error {
	s, ok := v.(IntegerScalar[T])
	if !ok {
		return fmt.Errorf("%w: expected %v, got %v", errScalarTypeMismatch, b.dt, v)
	}
	b.data = append(b.data, s.Value)
	return nil
}
func (b *integerBuilder[T]) PushDefault() { b.data = append(b.data, T(0)) }
func (b *integerBuilder[T]) Len() int     { return len(b.data) }
func (b *integerBuilder[T]) Build() Column {
	return &IntegerColumn[T]{data: b.data, dt: b.dt}
}

type nullableBuilder struct {
	child    ColumnBuilder
	validity *bitmap.Bitmap
	innerDt  types.DataType
	length   int
}

func (b *nullableBuilder) Push(v Scalar) error {
	if _, ok := v.(NullScalar); ok {
		b.validity.Set(b.length, false)
		b.child.PushDefault()
		b.length++
		return nil
	}
	if err := b.child.Push(v); err != nil {
		return err
	}
	b.validity.Set(b.length, true)
	b.length++
	return nil
}
func (b *nullableBuilder) PushDefault() {
	b.validity.Set(b.length, false)
	b.child.PushDefault()
	b.length++
}
func (b *nullableBuilder) Len() int { return b.length }
func (b *nullableBuilder) Build() Column {
	return &NullableColumn{child: b.child.Build(), validity: b.validity}
}

type arrayBuilder struct {
	child   ColumnBuilder
	offsets []uint32
}

func (b *arrayBuilder) Push(v Scalar) error {
	switch s := v.(type) {
	case EmptyArrayScalar:
		b.offsets = append(b.offsets, uint32(b.child.Len()))
		return nil
	case ArrayScalar:
		for i := 0; i < s.Values.Len(); i++ {
			if err := b.child.Push(s.Values.Index(i)); err != nil {
				return err
			}
		}
		b.offsets = append(b.offsets, uint32(b.child.Len()))
		return nil
	default:
		return fmt.Errorf("%w: expected Array, got %v", errScalarTypeMismatch, v)
	}
}
func (b *arrayBuilder) PushDefault() {
	b.offsets = append(b.offsets, uint32(b.child.Len()))
}
func (b *arrayBuilder) Len() int { return len(b.offsets) - 1 }
func (b *arrayBuilder) Build() Column {
	return &ArrayColumn{child: b.child.Build(), offsets: b.offsets}
}

type tupleBuilder struct {
	fields     []ColumnBuilder
	fieldTypes []types.DataType
	length     int
}

func (b *tupleBuilder) Push(v Scalar) error {
	s, ok := v.(TupleScalar)
	if !ok || len(s.Values) != len(b.fields) {
		return fmt.Errorf("%w: expected Tuple of arity %d, got %v", errScalarTypeMismatch, len(b.fields), v)
	}
	for i, f := range b.fields {
		if err := f.Push(s.Values[i]); err != nil {
			return err
		}
	}
	b.length++
	return nil
}
func (b *tupleBuilder) PushDefault() {
	for _, f := range b.fields {
		f.PushDefault()
	}
	b.length++
}
func (b *tupleBuilder) Len() int { return b.length }
func (b *tupleBuilder) Build() Column {
	fields := make([]Column, len(b.fields))
	for i, f := range b.fields {
		fields[i] = f.Build()
	}
	return &TupleColumn{fields: fields, length: b.length}
}

// BuildScalar materializes a single-row column around v and returns it as
// a Column - used where a broadcastable scalar literal needs to enter the
// vectorized evaluator as a length-1 column.
func BuildScalar(dt types.DataType, v Scalar) Column {
	b := NewBuilder(dt, 1, nil)
	if err := b.Push(v); err != nil {
		panic(err)
	}
	return b.Build()
}
