package protocol

import (
	"errors"
	"fmt"
)

// FrameType identifies the payload carried by a frame.
type FrameType uint8

// Frame types. Commands flow mirror-to-host, events host-to-mirror,
// acks answer invoke commands, error frames report decode failures.
const (
	FrameCommand FrameType = 0x01
	FrameEvent   FrameType = 0x02
	FrameControl FrameType = 0x03
	FrameAck     FrameType = 0x04
	FrameError   FrameType = 0x05
)

// String returns the frame type name.
func (t FrameType) String() string {
	switch t {
	case FrameCommand:
		return "command"
	case FrameEvent:
		return "event"
	case FrameControl:
		return "control"
	case FrameAck:
		return "ack"
	case FrameError:
		return "error"
	default:
		return fmt.Sprintf("frame(0x%02x)", uint8(t))
	}
}

// MaxPayloadSize is the largest frame payload, bounded by the uint16
// length field.
const MaxPayloadSize = 65535

// Framing errors.
var (
	ErrPayloadTooLarge = errors.New("protocol: frame payload exceeds 64KiB")
	ErrShortFrame      = errors.New("protocol: truncated frame")
)

// frameHeaderSize is the fixed header: type byte, flags byte, uint16
// big-endian payload length.
const frameHeaderSize = 4

// Frame is one wire message: a typed header plus an opaque payload.
type Frame struct {
	Type    FrameType
	Flags   uint8
	Payload []byte
}

// Encode serializes the frame into a fresh buffer.
func (f *Frame) Encode() ([]byte, error) {
	if len(f.Payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(f.Payload))
	}
	buf := make([]byte, frameHeaderSize+len(f.Payload))
	buf[0] = byte(f.Type)
	buf[1] = f.Flags
	buf[2] = byte(len(f.Payload) >> 8)
	buf[3] = byte(len(f.Payload))
	copy(buf[frameHeaderSize:], f.Payload)
	return buf, nil
}

// DecodeFrame parses one frame from data. The payload aliases data.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < frameHeaderSize {
		return nil, ErrShortFrame
	}
	length := int(data[2])<<8 | int(data[3])
	if len(data) < frameHeaderSize+length {
		return nil, ErrShortFrame
	}
	return &Frame{
		Type:    FrameType(data[0]),
		Flags:   data[1],
		Payload: data[frameHeaderSize : frameHeaderSize+length],
	}, nil
}
