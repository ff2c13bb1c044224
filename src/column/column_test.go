package column

import (
	"testing"

	"github.com/exprengine/scalar/src/types"
)

func buildInts(vals ...uint8) Column {
	b := NewBuilder(types.UInt8(), len(vals), nil)
	for _, v := range vals {
		if err := b.Push(IntegerScalar[uint8]{Value: v}); err != nil {
			panic(err)
		}
	}
	return b.Build()
}

func TestColumnSlicePreservesIdentity(t *testing.T) {
	c := buildInts(10, 20, 30, 40, 50)
	s := c.Slice(1, 4)
	if s.Len() != 3 {
		t.Fatalf("expected slice length 3, got %d", s.Len())
	}
	exp := []uint8{20, 30, 40}
	for i, e := range exp {
		got := s.Index(i).(IntegerScalar[uint8]).Value
		if got != e {
			t.Errorf("row %d: expected %d, got %d", i, e, got)
		}
	}
}

func TestStringColumnSlice(t *testing.T) {
	b := NewBuilder(types.StringType(), 3, nil)
	for _, v := range []string{"alpha", "beta", "gamma"} {
		if err := b.Push(StringScalar(v)); err != nil {
			t.Fatal(err)
		}
	}
	c := b.Build()
	s := c.Slice(1, 3)
	if s.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", s.Len())
	}
	if s.Index(0).(StringScalar) != "beta" {
		t.Errorf("expected beta, got %v", s.Index(0))
	}
	if s.Index(1).(StringScalar) != "gamma" {
		t.Errorf("expected gamma, got %v", s.Index(1))
	}
}

func TestBooleanColumnRoundtrip(t *testing.T) {
	b := NewBuilder(types.Boolean(), 4, nil)
	vals := []bool{true, false, true, true}
	for _, v := range vals {
		if err := b.Push(BooleanScalar(v)); err != nil {
			t.Fatal(err)
		}
	}
	c := b.Build()
	for i, v := range vals {
		got := bool(c.Index(i).(BooleanScalar))
		if got != v {
			t.Errorf("row %d: expected %v, got %v", i, v, got)
		}
	}
}

func TestIntegerColumnOutOfRangePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected out-of-range Index to panic")
		}
	}()
	c := buildInts(1, 2, 3)
	c.Index(5)
}

func TestNullColumnAndEmptyArrayColumn(t *testing.T) {
	nc := NewNullColumn(3)
	if nc.Len() != 3 || !nc.DataType().Equal(types.NullType()) {
		t.Errorf("unexpected NullColumn: len=%d dt=%v", nc.Len(), nc.DataType())
	}
	for i := 0; i < nc.Len(); i++ {
		if !nc.Index(i).Equal(NullScalar{}) {
			t.Errorf("row %d: expected NULL", i)
		}
	}
	ec := NewEmptyArrayColumn(2)
	for i := 0; i < ec.Len(); i++ {
		if !ec.Index(i).Equal(EmptyArrayScalar{}) {
			t.Errorf("row %d: expected []", i)
		}
	}
}

func TestArrayColumnOffsets(t *testing.T) {
	strs := NewBuilder(types.StringType(), 5, nil)
	for _, v := range []string{"a", "b", "c", "d", "e"} {
		if err := strs.Push(StringScalar(v)); err != nil {
			t.Fatal(err)
		}
	}
	child := strs.Build()
	ac := NewArrayColumn(child, []uint32{0, 2, 2, 5})
	if ac.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", ac.Len())
	}
	row0 := ac.Index(0).(ArrayScalar)
	if row0.Values.Len() != 2 {
		t.Errorf("expected row 0 to have 2 elements, got %d", row0.Values.Len())
	}
	row1 := ac.Index(1).(ArrayScalar)
	if row1.Values.Len() != 0 {
		t.Errorf("expected row 1 to be empty, got %d", row1.Values.Len())
	}
	row2 := ac.Index(2).(ArrayScalar)
	if row2.Values.Len() != 3 {
		t.Errorf("expected row 2 to have 3 elements, got %d", row2.Values.Len())
	}
}

func TestColumnCloneIsIndependent(t *testing.T) {
	c := buildInts(1, 2, 3).(*IntegerColumn[uint8])
	clone := c.Clone().(*IntegerColumn[uint8])
	clone.data[0] = 99
	if c.data[0] == 99 {
		t.Error("expected Clone to be independent of the original")
	}
}
