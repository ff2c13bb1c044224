package column

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON renders any Column as a JSON array of its per-row values,
// the way kokes-smda's chunks implement json.Marshaler directly rather
// than going through an intermediate struct.
func MarshalJSON(c Column) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte('[')
	for i := 0; i < c.Len(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := marshalScalarJSON(c.Index(i))
		if err != nil {
			return nil, fmt.Errorf("cannot marshal row %d: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalScalarJSON(s Scalar) ([]byte, error) {
	switch v := s.(type) {
	case NullScalar:
		return []byte("null"), nil
	case EmptyArrayScalar:
		return []byte("[]"), nil
	case BooleanScalar:
		return json.Marshal(bool(v))
	case StringScalar:
		return json.Marshal(string(v))
	case IntegerScalar[uint8]:
		return json.Marshal(v.Value)
	case IntegerScalar[uint16]:
		return json.Marshal(v.Value)
	case IntegerScalar[int8]:
		return json.Marshal(v.Value)
	case IntegerScalar[int16]:
		return json.Marshal(v.Value)
	case ArrayScalar:
		return MarshalJSON(v.Values)
	case TupleScalar:
		buf := new(bytes.Buffer)
		buf.WriteByte('[')
		for i, fv := range v.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := marshalScalarJSON(fv)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("cannot marshal scalar of type %T to JSON", s)
	}
}
