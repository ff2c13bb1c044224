package cmd

import (
	"testing"

	"github.com/exprengine/scalar/src/checker"
	"github.com/exprengine/scalar/src/column"
	"github.com/exprengine/scalar/src/types"
)

func TestParseAstLiterals(t *testing.T) {
	tt := []struct {
		source   string
		expected checker.Ast
	}{
		{"5u8", checker.LiteralAst{Value: column.IntegerScalar[uint8]{Value: 5}, Type: types.UInt8()}},
		{"300u16", checker.LiteralAst{Value: column.IntegerScalar[uint16]{Value: 300}, Type: types.UInt16()}},
		{"-5i8", checker.LiteralAst{Value: column.IntegerScalar[int8]{Value: -5}, Type: types.Int8()}},
		{"-300i16", checker.LiteralAst{Value: column.IntegerScalar[int16]{Value: -300}, Type: types.Int16()}},
		{"true", checker.LiteralAst{Value: column.BooleanScalar(true), Type: types.Boolean()}},
		{"false", checker.LiteralAst{Value: column.BooleanScalar(false), Type: types.Boolean()}},
		{"null", checker.LiteralAst{Value: column.NullScalar{}, Type: types.NullType()}},
		{`"hello"`, checker.LiteralAst{Value: column.StringScalar("hello"), Type: types.StringType()}},
	}
	for _, test := range tt {
		got, err := parseAst(test.source)
		if err != nil {
			t.Errorf("%q: %v", test.source, err)
			continue
		}
		lit, ok := got.(checker.LiteralAst)
		if !ok {
			t.Errorf("%q: expected a LiteralAst, got %T", test.source, got)
			continue
		}
		want := test.expected.(checker.LiteralAst)
		if !lit.Value.Equal(want.Value) || !lit.Type.Equal(want.Type) {
			t.Errorf("%q: expected %v %v, got %v %v", test.source, want.Value, want.Type, lit.Value, lit.Type)
		}
	}
}

func TestParseAstColumnRef(t *testing.T) {
	got, err := parseAst("@foo")
	if err != nil {
		t.Fatal(err)
	}
	ref, ok := got.(checker.ColumnRefAst)
	if !ok || ref.Name != "foo" {
		t.Errorf("expected ColumnRefAst{foo}, got %+v", got)
	}
}

func TestParseAstNestedCall(t *testing.T) {
	got, err := parseAst("plus(@a, negate(5u8))")
	if err != nil {
		t.Fatal(err)
	}
	call, ok := got.(checker.CallAst)
	if !ok || call.Name != "plus" || len(call.Args) != 2 {
		t.Fatalf("expected a 2-arg plus call, got %+v", got)
	}
	if _, ok := call.Args[0].(checker.ColumnRefAst); !ok {
		t.Errorf("expected first arg to be a column ref, got %T", call.Args[0])
	}
	inner, ok := call.Args[1].(checker.CallAst)
	if !ok || inner.Name != "negate" {
		t.Errorf("expected second arg to be negate(...), got %+v", call.Args[1])
	}
}

func TestParseAstZeroArgCall(t *testing.T) {
	got, err := parseAst("create_array()")
	if err != nil {
		t.Fatal(err)
	}
	call, ok := got.(checker.CallAst)
	if !ok || call.Name != "create_array" || len(call.Args) != 0 {
		t.Errorf("expected a 0-arg create_array call, got %+v", got)
	}
}

func TestParseAstRejectsBareIdentifier(t *testing.T) {
	if _, err := parseAst("foo"); err == nil {
		t.Error("expected an error for a bare, non-@, non-call identifier")
	}
}

func TestParseAstRejectsTrailingInput(t *testing.T) {
	if _, err := parseAst("true true"); err == nil {
		t.Error("expected an error for trailing input after a complete expression")
	}
}

func TestParseAstRejectsBadNumberSuffix(t *testing.T) {
	if _, err := parseAst("5"); err == nil {
		t.Error("expected an error for a number literal missing its width suffix")
	}
}
