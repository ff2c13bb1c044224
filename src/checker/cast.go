package checker

import (
	"fmt"

	"github.com/exprengine/scalar/src/types"
)

var errNoCommonSuperType = fmt.Errorf("no common super type")

// integerWidenings lists the lossless integer promotions available
// between this engine's four closed-set integer primitives. UInt16 and
// Int16 are the "widest" representable widths here, so neither widens
// further.
var integerWidenings = map[types.Kind][]types.Kind{
	types.KindUInt8: {types.KindUInt16, types.KindInt16},
	types.KindInt8:  {types.KindInt16},
}

// CanCastTo reports whether a value of type from may be cast to to,
// reflexively and via a conservative set of widening rules: not-null T
// widens to Nullable<T> (a cast may only ever make a type accept
// strictly more values, never fewer), Null widens to any Nullable<T>,
// EmptyArray widens to any Array<T>, and Array/Tuple casts are
// congruent over their elements/fields.
func CanCastTo(from, to types.DataType) bool {
	if from.Equal(to) {
		return true
	}
	if to.Kind() == types.KindNullable {
		inner, _ := to.Inner()
		if from.Kind() == types.KindNull {
			return true
		}
		if from.Kind() == types.KindNullable {
			fi, _ := from.Inner()
			return CanCastTo(fi, inner)
		}
		return CanCastTo(from, inner)
	}
	if from.Kind() == types.KindEmptyArray && to.Kind() == types.KindArray {
		return true
	}
	if from.Kind() == types.KindArray && to.Kind() == types.KindArray {
		fi, _ := from.Inner()
		ti, _ := to.Inner()
		return CanCastTo(fi, ti)
	}
	if from.Kind() == types.KindTuple && to.Kind() == types.KindTuple {
		ff, tf := from.Fields(), to.Fields()
		if len(ff) != len(tf) {
			return false
		}
		for i := range ff {
			if !CanCastTo(ff[i], tf[i]) {
				return false
			}
		}
		return true
	}
	for _, w := range integerWidenings[from.Kind()] {
		if w == to.Kind() {
			return true
		}
	}
	return false
}

// stripNullable returns t's inner type and true if t is Nullable<T>,
// otherwise t itself and false (a Null t is returned unchanged, with false).
func stripNullable(t types.DataType) (types.DataType, bool) {
	if t.Kind() == types.KindNullable {
		inner, _ := t.Inner()
		return inner, true
	}
	return t, false
}

// CommonSuperType returns the narrowest type both a and b can be cast to,
// commutatively. Null combines with any T into Nullable<T>;
// two otherwise-unrelated types have no common super type.
func CommonSuperType(a, b types.DataType) (types.DataType, error) {
	if a.Equal(b) {
		return a, nil
	}
	if a.Kind() == types.KindNull {
		if b.IsNullable() {
			return b, nil
		}
		return types.Nullable(b), nil
	}
	if b.Kind() == types.KindNull {
		return CommonSuperType(b, a)
	}
	if CanCastTo(a, b) {
		return b, nil
	}
	if CanCastTo(b, a) {
		return a, nil
	}
	aInner, aNullable := stripNullable(a)
	bInner, bNullable := stripNullable(b)
	if aNullable || bNullable {
		inner, err := CommonSuperType(aInner, bInner)
		if err != nil {
			return types.DataType{}, err
		}
		return types.Nullable(inner), nil
	}
	return types.DataType{}, fmt.Errorf("%w: %v and %v", errNoCommonSuperType, a, b)
}
