package protocol

import "fmt"

// ErrorCode classifies an error frame.
type ErrorCode uint16

// Error codes reported by either peer.
const (
	ErrCodeMalformedFrame ErrorCode = 0x0001
	ErrCodeUnknownCommand ErrorCode = 0x0002
	ErrCodeInvalidEvent   ErrorCode = 0x0003
	ErrCodeInternal       ErrorCode = 0x00FF
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeMalformedFrame:
		return "malformed-frame"
	case ErrCodeUnknownCommand:
		return "unknown-command"
	case ErrCodeInvalidEvent:
		return "invalid-event"
	case ErrCodeInternal:
		return "internal"
	default:
		return fmt.Sprintf("error(0x%04x)", uint16(c))
	}
}

// WireError is the payload of an error frame. It reports a peer-side
// failure without tearing down the connection.
type WireError struct {
	Code    ErrorCode
	Message string
}

// EncodeError serializes one wire error into a fresh buffer.
func EncodeError(we *WireError) []byte {
	e := NewEncoder()
	e.WriteUint16(uint16(we.Code))
	e.WriteString(we.Message)
	out := make([]byte, e.Len())
	copy(out, e.Bytes())
	return out
}

// DecodeError parses one wire error from data.
func DecodeError(data []byte) (*WireError, error) {
	d := NewDecoder(data)
	code, err := d.ReadUint16()
	if err != nil {
		return nil, err
	}
	msg, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	return &WireError{Code: ErrorCode(code), Message: msg}, nil
}
