package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/exprengine/scalar/src/checker"
	"github.com/exprengine/scalar/src/column"
	"github.com/exprengine/scalar/src/runtime"
	"github.com/exprengine/scalar/src/types"
)

// loadColumns reads a CSV-ish column file: a header row of name:Type
// pairs (Type in the same display syntax types.Parse reads back) followed
// by data rows, one cell per column, an empty cell meaning NULL for a
// Nullable column. It has no ambition beyond feeding eval something to
// run against - there is no column file format in the engine itself,
// which works purely in memory.
//
// encoding/csv is used here (rather than a hand-rolled strings.Split) for
// the same reason kokes-smda reaches for encoding/csv in its own
// ingestion path: quoted fields containing commas need real escaping,
// and there is no third-party CSV library in this module's dependency
// set worth pulling in for a single demo-only reader.
var (
	errEmptyColumnFile = errors.New("column file has no header row")
	errHeaderShape     = errors.New("column header must be name:Type")
	errRowShape        = errors.New("data row has a different number of cells than the header")
	errNullNotAllowed  = errors.New("empty cell in a non-nullable column")
	errUnsupportedType = errors.New("column file does not support this data type")
)

func loadColumns(path string) (checker.Schema, runtime.Env, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, errEmptyColumnFile
		}
		return nil, nil, err
	}
	names, dts, err := parseHeader(header)
	if err != nil {
		return nil, nil, err
	}

	builders := make([]column.ColumnBuilder, len(names))
	for i, dt := range dts {
		builders[i] = column.NewBuilder(dt, 0, nil)
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if len(row) != len(names) {
			return nil, nil, fmt.Errorf("%w: header has %d columns, row has %d", errRowShape, len(names), len(row))
		}
		for i, cell := range row {
			s, err := parseCell(dts[i], cell)
			if err != nil {
				return nil, nil, fmt.Errorf("column %q: %w", names[i], err)
			}
			if err := builders[i].Push(s); err != nil {
				return nil, nil, fmt.Errorf("column %q: %w", names[i], err)
			}
		}
	}

	schema := make(checker.Schema, len(names))
	env := make(runtime.Env, len(names))
	for i, name := range names {
		schema[name] = dts[i]
		env[name] = builders[i].Build()
	}
	return schema, env, nil
}

func parseHeader(header []string) ([]string, []types.DataType, error) {
	names := make([]string, len(header))
	dts := make([]types.DataType, len(header))
	for i, h := range header {
		name, typeStr, ok := strings.Cut(h, ":")
		if !ok {
			return nil, nil, fmt.Errorf("%w: got %q", errHeaderShape, h)
		}
		dt, err := types.Parse(strings.TrimSpace(typeStr))
		if err != nil {
			return nil, nil, fmt.Errorf("column %q: %w", name, err)
		}
		names[i] = strings.TrimSpace(name)
		dts[i] = dt
	}
	return names, dts, nil
}

// loadSchema reads just a column file's header row, for check which only
// needs the declared types and never touches row data.
func loadSchema(path string) (checker.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errEmptyColumnFile
		}
		return nil, err
	}
	names, dts, err := parseHeader(header)
	if err != nil {
		return nil, err
	}
	schema := make(checker.Schema, len(names))
	for i, name := range names {
		schema[name] = dts[i]
	}
	return schema, nil
}

// parseCell converts one raw CSV cell into the Scalar dt requires. An
// empty cell is NULL under a Nullable (or plain Null) column and an error
// otherwise, since this format has no quoted-empty-string convention
// separate from "no value".
func parseCell(dt types.DataType, raw string) (column.Scalar, error) {
	if dt.Kind() == types.KindNull {
		if raw != "" {
			return nil, fmt.Errorf("%w: column is Null, got %q", errUnsupportedType, raw)
		}
		return column.NullScalar{}, nil
	}
	if dt.Kind() == types.KindNullable {
		if raw == "" {
			return column.NullScalar{}, nil
		}
		inner, _ := dt.Inner()
		return parseCell(inner, raw)
	}
	if raw == "" {
		return nil, fmt.Errorf("%w: %v", errNullNotAllowed, dt)
	}

	switch dt.Kind() {
	case types.KindBoolean:
		switch raw {
		case "true":
			return column.BooleanScalar(true), nil
		case "false":
			return column.BooleanScalar(false), nil
		default:
			return nil, fmt.Errorf("%w: expected true/false, got %q", errUnsupportedType, raw)
		}
	case types.KindString:
		return column.StringScalar(raw), nil
	case types.KindUInt8:
		v, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return nil, err
		}
		return column.IntegerScalar[uint8]{Value: uint8(v)}, nil
	case types.KindUInt16:
		v, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return nil, err
		}
		return column.IntegerScalar[uint16]{Value: uint16(v)}, nil
	case types.KindInt8:
		v, err := strconv.ParseInt(raw, 10, 8)
		if err != nil {
			return nil, err
		}
		return column.IntegerScalar[int8]{Value: int8(v)}, nil
	case types.KindInt16:
		v, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return nil, err
		}
		return column.IntegerScalar[int16]{Value: int16(v)}, nil
	default:
		return nil, fmt.Errorf("%w: %v", errUnsupportedType, dt)
	}
}
