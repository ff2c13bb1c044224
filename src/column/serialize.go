package column

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/exprengine/scalar/src/bitmap"
	"github.com/exprengine/scalar/src/types"
)

var errUnsupportedBinaryType = errors.New("data type has no binary representation")

// Serialize writes c's binary representation to w, snappy-compressed the
// way kokes-smda's on-disk stripes are (src/database/loader.go). The
// type isn't embedded in the stream - as with those stripes, the caller
// is expected to already know it (e.g. from a schema) when deserializing.
func Serialize(w io.Writer, c Column) (int, error) {
	sw := snappy.NewBufferedWriter(w)
	n, err := serializeInto(sw, c)
	if err != nil {
		sw.Close()
		return n, err
	}
	if err := sw.Close(); err != nil {
		return n, err
	}
	return n, nil
}

func serializeInto(w io.Writer, c Column) (int, error) {
	switch cc := c.(type) {
	case *NullColumn:
		buf := new(bytes.Buffer)
		if err := binary.Write(buf, binary.LittleEndian, uint32(cc.length)); err != nil {
			return 0, err
		}
		return w.Write(buf.Bytes())
	case *EmptyArrayColumn:
		buf := new(bytes.Buffer)
		if err := binary.Write(buf, binary.LittleEndian, uint32(cc.length)); err != nil {
			return 0, err
		}
		return w.Write(buf.Bytes())
	case *BooleanColumn:
		buf := new(bytes.Buffer)
		if err := binary.Write(buf, binary.LittleEndian, uint32(cc.length)); err != nil {
			return 0, err
		}
		if _, err := bitmap.Serialize(buf, cc.data); err != nil {
			return 0, err
		}
		return w.Write(buf.Bytes())
	case *StringColumn:
		buf := new(bytes.Buffer)
		if err := binary.Write(buf, binary.LittleEndian, uint32(len(cc.offsets))); err != nil {
			return 0, err
		}
		if err := binary.Write(buf, binary.LittleEndian, cc.offsets); err != nil {
			return 0, err
		}
		if err := binary.Write(buf, binary.LittleEndian, uint32(len(cc.data))); err != nil {
			return 0, err
		}
		buf.Write(cc.data)
		return w.Write(buf.Bytes())
	case *NullableColumn:
		buf := new(bytes.Buffer)
		if _, err := bitmap.Serialize(buf, cc.validity); err != nil {
			return 0, err
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return 0, err
		}
		return serializeInto(w, cc.child)
	case *ArrayColumn:
		buf := new(bytes.Buffer)
		if err := binary.Write(buf, binary.LittleEndian, uint32(len(cc.offsets))); err != nil {
			return 0, err
		}
		if err := binary.Write(buf, binary.LittleEndian, cc.offsets); err != nil {
			return 0, err
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return 0, err
		}
		return serializeInto(w, cc.child)
	case *TupleColumn:
		total := 0
		for _, f := range cc.fields {
			n, err := serializeInto(w, f)
			total += n
			if err != nil {
				return total, err
			}
		}
		return total, nil
	default:
		return writeIntegerColumn(w, c)
	}
}

func writeIntegerColumn(w io.Writer, c Column) (int, error) {
	buf := new(bytes.Buffer)
	var data any
	switch cc := c.(type) {
	case *IntegerColumn[uint8]:
		data = cc.data
	case *IntegerColumn[uint16]:
		data = cc.data
	case *IntegerColumn[int8]:
		data = cc.data
	case *IntegerColumn[int16]:
		data = cc.data
	default:
		return 0, fmt.Errorf("%w: %T", errUnsupportedBinaryType, c)
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(c.Len())); err != nil {
		return 0, err
	}
	if err := binary.Write(buf, binary.LittleEndian, data); err != nil {
		return 0, err
	}
	return w.Write(buf.Bytes())
}

// Deserialize is the inverse of Serialize. Like kokes-smda's own
// column.Deserialize, it requires the caller to supply the expected data
// type rather than recovering it from the stream.
func Deserialize(r io.Reader, dt types.DataType) (Column, error) {
	sr := snappy.NewReader(r)
	return deserializeAs(sr, dt)
}

func deserializeAs(r io.Reader, dt types.DataType) (Column, error) {
	switch dt.Kind() {
	case types.KindNull:
		var length uint32
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, err
		}
		return &NullColumn{length: int(length)}, nil
	case types.KindEmptyArray:
		var length uint32
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, err
		}
		return &EmptyArrayColumn{length: int(length)}, nil
	case types.KindBoolean:
		var length uint32
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, err
		}
		bm, err := bitmap.DeserializeBitmapFromReader(r)
		if err != nil {
			return nil, err
		}
		if bm == nil {
			bm = bitmap.NewBitmap(0)
		}
		return &BooleanColumn{data: bm, length: int(length)}, nil
	case types.KindString:
		var lenOffsets uint32
		if err := binary.Read(r, binary.LittleEndian, &lenOffsets); err != nil {
			return nil, err
		}
		offsets := make([]uint32, lenOffsets)
		if err := binary.Read(r, binary.LittleEndian, &offsets); err != nil {
			return nil, err
		}
		var lenData uint32
		if err := binary.Read(r, binary.LittleEndian, &lenData); err != nil {
			return nil, err
		}
		data := make([]byte, lenData)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, err
		}
		return &StringColumn{data: data, offsets: offsets}, nil
	case types.KindUInt8:
		return readIntegerColumn[uint8](r, dt)
	case types.KindUInt16:
		return readIntegerColumn[uint16](r, dt)
	case types.KindInt8:
		return readIntegerColumn[int8](r, dt)
	case types.KindInt16:
		return readIntegerColumn[int16](r, dt)
	case types.KindNullable:
		inner, _ := dt.Inner()
		validity, err := bitmap.DeserializeBitmapFromReader(r)
		if err != nil {
			return nil, err
		}
		if validity == nil {
			validity = bitmap.NewBitmap(0)
		}
		child, err := deserializeAs(r, inner)
		if err != nil {
			return nil, err
		}
		return &NullableColumn{child: child, validity: validity}, nil
	case types.KindArray:
		inner, _ := dt.Inner()
		var lenOffsets uint32
		if err := binary.Read(r, binary.LittleEndian, &lenOffsets); err != nil {
			return nil, err
		}
		offsets := make([]uint32, lenOffsets)
		if err := binary.Read(r, binary.LittleEndian, &offsets); err != nil {
			return nil, err
		}
		child, err := deserializeAs(r, inner)
		if err != nil {
			return nil, err
		}
		return &ArrayColumn{child: child, offsets: offsets}, nil
	case types.KindTuple:
		fieldTypes := dt.Fields()
		fields := make([]Column, len(fieldTypes))
		length := 0
		for i, ft := range fieldTypes {
			f, err := deserializeAs(r, ft)
			if err != nil {
				return nil, err
			}
			fields[i] = f
			length = f.Len()
		}
		return &TupleColumn{fields: fields, length: length}, nil
	default:
		return nil, fmt.Errorf("%w: %v", errUnsupportedBinaryType, dt)
	}
}

func readIntegerColumn[T Integer](r io.Reader, dt types.DataType) (Column, error) {
	var nelements uint32
	if err := binary.Read(r, binary.LittleEndian, &nelements); err != nil {
		return nil, err
	}
	data := make([]T, nelements)
	if err := binary.Read(r, binary.LittleEndian, &data); err != nil {
		return nil, err
	}
	return &IntegerColumn[T]{data: data, dt: dt}, nil
}
