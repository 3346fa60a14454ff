package protocol

import "fmt"

// ControlType identifies a control frame payload.
type ControlType uint8

// Control message types.
const (
	ControlPing  ControlType = 0x01
	ControlPong  ControlType = 0x02
	ControlClose ControlType = 0x20
)

// String returns the control type name.
func (t ControlType) String() string {
	switch t {
	case ControlPing:
		return "ping"
	case ControlPong:
		return "pong"
	case ControlClose:
		return "close"
	default:
		return fmt.Sprintf("control(0x%02x)", uint8(t))
	}
}

// Control is a transport-level keepalive or shutdown message.
// Timestamp is the sender's unix-millisecond clock for ping/pong;
// Reason is the close explanation, empty otherwise.
type Control struct {
	Type      ControlType
	Timestamp uint64
	Reason    string
}

// EncodeControl serializes one control message into a fresh buffer.
func EncodeControl(c *Control) []byte {
	e := NewEncoder()
	e.WriteByte(byte(c.Type))
	e.WriteUvarint(c.Timestamp)
	e.WriteString(c.Reason)
	out := make([]byte, e.Len())
	copy(out, e.Bytes())
	return out
}

// DecodeControl parses one control message from data.
func DecodeControl(data []byte) (*Control, error) {
	d := NewDecoder(data)
	t, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	c := &Control{Type: ControlType(t)}
	if c.Timestamp, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if c.Reason, err = d.ReadString(); err != nil {
		return nil, err
	}
	return c, nil
}
