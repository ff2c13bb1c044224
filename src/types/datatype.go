// Package types implements the data type system of the expression engine:
// a closed sum of primitive, null, empty-array, nullable, array, tuple and
// generic-variable type constructors, with structural equality and a
// SQL-like display form.
package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind denotes which constructor a DataType was built with.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBoolean
	KindString
	KindUInt8
	KindUInt16
	KindInt8
	KindInt16
	KindNull
	KindEmptyArray
	KindNullable
	KindArray
	KindTuple
	KindGeneric
	kindMax
)

func (k Kind) String() string {
	names := [...]string{"invalid", "boolean", "string", "uint8", "uint16", "int8", "int16",
		"null", "emptyarray", "nullable", "array", "tuple", "generic"}
	if int(k) >= len(names) {
		return "unknown"
	}
	return names[k]
}

// DataType is a closed, immutable sum type. Construct it via the package
// constructors (Boolean, StringType, Nullable, ArrayOf, ...) rather than a
// struct literal - the zero value is KindInvalid and is not a valid type.
type DataType struct {
	kind    Kind
	inner   *DataType  // Nullable<T>, Array<T>
	fields  []DataType // Tuple<T1,...,Tn>
	generic int        // Generic(k)
}

var (
	errNegativeIndex   = errors.New("generic index must be non-negative")
	errUnparseableType = errors.New("cannot parse data type")
)

func Boolean() DataType  { return DataType{kind: KindBoolean} }
func StringType() DataType { return DataType{kind: KindString} }
func UInt8() DataType    { return DataType{kind: KindUInt8} }
func UInt16() DataType   { return DataType{kind: KindUInt16} }
func Int8() DataType     { return DataType{kind: KindInt8} }
func Int16() DataType    { return DataType{kind: KindInt16} }
func NullType() DataType { return DataType{kind: KindNull} }
func EmptyArrayType() DataType { return DataType{kind: KindEmptyArray} }

// Nullable wraps t with a null inhabitant. It collapses Nullable<Nullable<T>>
// into Nullable<T> and Nullable<Null> into Null, so the invariant "never
// nested" holds by construction.
func Nullable(t DataType) DataType {
	if t.kind == KindNullable {
		return t
	}
	if t.kind == KindNull {
		return t
	}
	cp := t
	return DataType{kind: KindNullable, inner: &cp}
}

// ArrayOf builds Array<T>.
func ArrayOf(t DataType) DataType {
	cp := t
	return DataType{kind: KindArray, inner: &cp}
}

// TupleOf builds Tuple<T1,...,Tn>, n >= 0.
func TupleOf(fields ...DataType) DataType {
	cp := make([]DataType, len(fields))
	copy(cp, fields)
	return DataType{kind: KindTuple, fields: cp}
}

// Generic builds the type variable Generic(k), k >= 0. Only valid in
// function signatures; checker inputs must never contain one.
func Generic(k int) DataType {
	if k < 0 {
		panic(errNegativeIndex)
	}
	return DataType{kind: KindGeneric, generic: k}
}

func (t DataType) Kind() Kind { return t.kind }

// Inner returns the wrapped type of Nullable<T>/Array<T>, or false for any
// other kind.
func (t DataType) Inner() (DataType, bool) {
	if (t.kind == KindNullable || t.kind == KindArray) && t.inner != nil {
		return *t.inner, true
	}
	return DataType{}, false
}

// Fields returns the field types of Tuple<...>, or nil for any other kind.
func (t DataType) Fields() []DataType {
	if t.kind != KindTuple {
		return nil
	}
	return t.fields
}

// GenericIndex returns the index k of Generic(k), or (-1, false) otherwise.
func (t DataType) GenericIndex() (int, bool) {
	if t.kind != KindGeneric {
		return -1, false
	}
	return t.generic, true
}

// IsNullable reports whether t admits a null value directly - either Null
// itself or a Nullable<T> wrapper.
func (t DataType) IsNullable() bool {
	return t.kind == KindNull || t.kind == KindNullable
}

// IsNumeric reports whether t (ignoring nullability) is one of the integer
// primitives.
func (t DataType) IsNumeric() bool {
	return t.IsInteger()
}

// IsInteger reports whether t (ignoring nullability) is UInt8/UInt16/Int8/Int16.
func (t DataType) IsInteger() bool {
	base := t
	if base.kind == KindNullable {
		base = *base.inner
	}
	switch base.kind {
	case KindUInt8, KindUInt16, KindInt8, KindInt16:
		return true
	}
	return false
}

// Equal reports structural equality.
func (t DataType) Equal(o DataType) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case KindNullable, KindArray:
		return t.inner.Equal(*o.inner)
	case KindTuple:
		if len(t.fields) != len(o.fields) {
			return false
		}
		for i := range t.fields {
			if !t.fields[i].Equal(o.fields[i]) {
				return false
			}
		}
		return true
	case KindGeneric:
		return t.generic == o.generic
	default:
		return true
	}
}

// String renders the SQL-like display form used throughout the engine
// (and relied upon by golden-file tests).
func (t DataType) String() string {
	switch t.kind {
	case KindBoolean:
		return "Boolean"
	case KindString:
		return "String"
	case KindUInt8:
		return "UInt8"
	case KindUInt16:
		return "UInt16"
	case KindInt8:
		return "Int8"
	case KindInt16:
		return "Int16"
	case KindNull:
		return "Null"
	case KindEmptyArray:
		return "EmptyArray"
	case KindNullable:
		return "Nullable<" + t.inner.String() + ">"
	case KindArray:
		return "Array<" + t.inner.String() + ">"
	case KindTuple:
		parts := make([]string, len(t.fields))
		for i, f := range t.fields {
			parts[i] = f.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindGeneric:
		return "T" + strconv.Itoa(t.generic)
	default:
		return "Invalid"
	}
}

// MarshalJSON marshals a DataType as its quoted display string, the way
// kokes-smda's flat Dtype marshals itself - generalized here since the
// type is now recursive rather than a single enum byte.
func (t DataType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (t *DataType) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Parse reads back the display form produced by String(). It is a small
// recursive-descent reader over the handful of shapes String() can emit.
func Parse(s string) (DataType, error) {
	p := &typeParser{s: s}
	t, err := p.parseType()
	if err != nil {
		return DataType{}, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return DataType{}, fmt.Errorf("%w: trailing input %q", errUnparseableType, p.s[p.pos:])
	}
	return t, nil
}

type typeParser struct {
	s   string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *typeParser) parseType() (DataType, error) {
	p.skipSpace()
	switch {
	case strings.HasPrefix(p.s[p.pos:], "Nullable<"):
		p.pos += len("Nullable<")
		inner, err := p.parseType()
		if err != nil {
			return DataType{}, err
		}
		if err := p.expect('>'); err != nil {
			return DataType{}, err
		}
		return Nullable(inner), nil
	case strings.HasPrefix(p.s[p.pos:], "Array<"):
		p.pos += len("Array<")
		inner, err := p.parseType()
		if err != nil {
			return DataType{}, err
		}
		if err := p.expect('>'); err != nil {
			return DataType{}, err
		}
		return ArrayOf(inner), nil
	case p.peek() == '(':
		p.pos++
		var fields []DataType
		p.skipSpace()
		if p.peek() == ')' {
			p.pos++
			return TupleOf(), nil
		}
		for {
			f, err := p.parseType()
			if err != nil {
				return DataType{}, err
			}
			fields = append(fields, f)
			p.skipSpace()
			if p.peek() == ',' {
				p.pos++
				continue
			}
			break
		}
		if err := p.expect(')'); err != nil {
			return DataType{}, err
		}
		return TupleOf(fields...), nil
	case p.peek() == 'T' && p.pos+1 < len(p.s) && p.s[p.pos+1] >= '0' && p.s[p.pos+1] <= '9':
		start := p.pos + 1
		end := start
		for end < len(p.s) && p.s[end] >= '0' && p.s[end] <= '9' {
			end++
		}
		n, err := strconv.Atoi(p.s[start:end])
		if err != nil {
			return DataType{}, err
		}
		p.pos = end
		return Generic(n), nil
	default:
		for _, word := range []struct {
			name string
			t    DataType
		}{
			{"Boolean", Boolean()}, {"String", StringType()}, {"UInt8", UInt8()}, {"UInt16", UInt16()},
			{"Int8", Int8()}, {"Int16", Int16()}, {"EmptyArray", EmptyArrayType()}, {"Null", NullType()},
		} {
			if strings.HasPrefix(p.s[p.pos:], word.name) {
				p.pos += len(word.name)
				return word.t, nil
			}
		}
	}
	return DataType{}, fmt.Errorf("%w: at %q", errUnparseableType, p.s[p.pos:])
}

func (p *typeParser) expect(b byte) error {
	p.skipSpace()
	if p.peek() != b {
		return fmt.Errorf("%w: expected %q at %q", errUnparseableType, b, p.s[p.pos:])
	}
	p.pos++
	return nil
}
