package protocol

import (
	"errors"
	"fmt"
	"sort"
)

// ValueType tags one encoded property value.
type ValueType uint8

// Value type tags. Property values, invoke arguments, and ack results
// all use this codec.
const (
	ValueNull   ValueType = 0x00
	ValueBool   ValueType = 0x01
	ValueInt    ValueType = 0x02
	ValueFloat  ValueType = 0x03
	ValueString ValueType = 0x04
	ValueArray  ValueType = 0x05
	ValueObject ValueType = 0x06
)

// MaxValueDepth bounds nesting of arrays and objects on decode.
const MaxValueDepth = 32

// ErrValueTooDeep is returned when a decoded value nests past
// MaxValueDepth.
var ErrValueTooDeep = errors.New("protocol: value nesting too deep")

// EncodeValue appends a tagged value. Unsupported Go types encode as
// null; the mirror only ships the types this codec names.
func EncodeValue(e *Encoder, v any) {
	switch x := v.(type) {
	case nil:
		e.WriteByte(byte(ValueNull))
	case bool:
		e.WriteByte(byte(ValueBool))
		e.WriteBool(x)
	case int:
		e.WriteByte(byte(ValueInt))
		e.WriteSvarint(int64(x))
	case int32:
		e.WriteByte(byte(ValueInt))
		e.WriteSvarint(int64(x))
	case int64:
		e.WriteByte(byte(ValueInt))
		e.WriteSvarint(x)
	case uint:
		e.WriteByte(byte(ValueInt))
		e.WriteSvarint(int64(x))
	case float32:
		e.WriteByte(byte(ValueFloat))
		e.WriteFloat64(float64(x))
	case float64:
		e.WriteByte(byte(ValueFloat))
		e.WriteFloat64(x)
	case string:
		e.WriteByte(byte(ValueString))
		e.WriteString(x)
	case []any:
		e.WriteByte(byte(ValueArray))
		e.WriteUvarint(uint64(len(x)))
		for _, item := range x {
			EncodeValue(e, item)
		}
	case map[string]any:
		e.WriteByte(byte(ValueObject))
		e.WriteUvarint(uint64(len(x)))
		// Deterministic output for tests and replay.
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			e.WriteString(k)
			EncodeValue(e, x[k])
		}
	default:
		e.WriteByte(byte(ValueNull))
	}
}

// DecodeValue reads one tagged value. Integers decode as int64, floats
// as float64, objects as map[string]any.
func DecodeValue(d *Decoder) (any, error) {
	return decodeValue(d, 0)
}

func decodeValue(d *Decoder, depth int) (any, error) {
	if depth > MaxValueDepth {
		return nil, ErrValueTooDeep
	}
	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch ValueType(tag) {
	case ValueNull:
		return nil, nil
	case ValueBool:
		return d.ReadBool()
	case ValueInt:
		return d.ReadSvarint()
	case ValueFloat:
		return d.ReadFloat64()
	case ValueString:
		return d.ReadString()
	case ValueArray:
		n, err := d.ReadUvarint()
		if err != nil {
			return nil, err
		}
		if n > uint64(d.Remaining()) {
			return nil, ErrUnexpectedEOF
		}
		arr := make([]any, 0, n)
		for i := uint64(0); i < n; i++ {
			item, err := decodeValue(d, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, item)
		}
		return arr, nil
	case ValueObject:
		n, err := d.ReadUvarint()
		if err != nil {
			return nil, err
		}
		if n > uint64(d.Remaining()) {
			return nil, ErrUnexpectedEOF
		}
		obj := make(map[string]any, n)
		for i := uint64(0); i < n; i++ {
			k, err := d.ReadString()
			if err != nil {
				return nil, err
			}
			v, err := decodeValue(d, depth+1)
			if err != nil {
				return nil, err
			}
			obj[k] = v
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("protocol: unknown value tag 0x%02x", tag)
	}
}
