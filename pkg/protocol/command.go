package protocol

import (
	"errors"
	"fmt"
)

// CommandType identifies one mirror-to-host instruction.
type CommandType uint8

// Command types, one per host operation.
const (
	CmdCreateContainer CommandType = 0x01
	CmdCreateText      CommandType = 0x02
	CmdInsertChild     CommandType = 0x03
	CmdRemoveChild     CommandType = 0x04
	CmdSetProperty     CommandType = 0x05
	CmdSetTextValue    CommandType = 0x06
	CmdInvokeMethod    CommandType = 0x07
	CmdFinalizeCommit  CommandType = 0x08
)

// String returns the command type name.
func (t CommandType) String() string {
	switch t {
	case CmdCreateContainer:
		return "create-container"
	case CmdCreateText:
		return "create-text"
	case CmdInsertChild:
		return "insert-child"
	case CmdRemoveChild:
		return "remove-child"
	case CmdSetProperty:
		return "set-property"
	case CmdSetTextValue:
		return "set-text"
	case CmdInvokeMethod:
		return "invoke"
	case CmdFinalizeCommit:
		return "finalize"
	default:
		return fmt.Sprintf("command(0x%02x)", uint8(t))
	}
}

// ErrUnknownCommand is returned when decoding an unrecognized command
// type byte.
var ErrUnknownCommand = errors.New("protocol: unknown command type")

// Command is one mirror-to-host instruction. Field usage depends on
// Type; unused fields stay zero and are not encoded.
type Command struct {
	Type CommandType

	// Seq correlates InvokeMethod commands with Ack frames. Zero for
	// fire-and-forget commands.
	Seq uint64

	// ID is the instance the command addresses. For create commands it
	// is the identifier the mirror assigned to the new instance.
	ID string

	// ParentID addresses the parent for InsertChild and RemoveChild.
	ParentID string

	// TypeTag is the container type for CreateContainer.
	TypeTag string

	// Index is the insertion position for InsertChild; -1 appends.
	Index int

	// Key is the property key for SetProperty.
	Key string

	// Text is the content for CreateText and SetTextValue.
	Text string

	// Method and Args describe an InvokeMethod call.
	Method string
	Args   []any

	// Value is the property value for SetProperty.
	Value any
}

// EncodeCommand serializes one command into a fresh buffer.
func EncodeCommand(c *Command) []byte {
	e := NewEncoder()
	EncodeCommandTo(e, c)
	out := make([]byte, e.Len())
	copy(out, e.Bytes())
	return out
}

// EncodeCommandTo appends one command to the encoder.
func EncodeCommandTo(e *Encoder, c *Command) {
	e.WriteByte(byte(c.Type))
	switch c.Type {
	case CmdCreateContainer:
		e.WriteString(c.ID)
		e.WriteString(c.TypeTag)
	case CmdCreateText:
		e.WriteString(c.ID)
		e.WriteString(c.Text)
	case CmdInsertChild:
		e.WriteString(c.ParentID)
		e.WriteString(c.ID)
		e.WriteSvarint(int64(c.Index))
	case CmdRemoveChild:
		e.WriteString(c.ParentID)
		e.WriteString(c.ID)
	case CmdSetProperty:
		e.WriteString(c.ID)
		e.WriteString(c.Key)
		EncodeValue(e, c.Value)
	case CmdSetTextValue:
		e.WriteString(c.ID)
		e.WriteString(c.Text)
	case CmdInvokeMethod:
		e.WriteUvarint(c.Seq)
		e.WriteString(c.ID)
		e.WriteString(c.Method)
		e.WriteUvarint(uint64(len(c.Args)))
		for _, a := range c.Args {
			EncodeValue(e, a)
		}
	case CmdFinalizeCommit:
		// No body.
	}
}

// DecodeCommand parses one command from data.
func DecodeCommand(data []byte) (*Command, error) {
	return DecodeCommandFrom(NewDecoder(data))
}

// DecodeCommandFrom parses one command from the decoder, leaving the
// position after the command body.
func DecodeCommandFrom(d *Decoder) (*Command, error) {
	t, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	c := &Command{Type: CommandType(t)}
	switch c.Type {
	case CmdCreateContainer:
		if c.ID, err = d.ReadString(); err != nil {
			return nil, err
		}
		if c.TypeTag, err = d.ReadString(); err != nil {
			return nil, err
		}
	case CmdCreateText:
		if c.ID, err = d.ReadString(); err != nil {
			return nil, err
		}
		if c.Text, err = d.ReadString(); err != nil {
			return nil, err
		}
	case CmdInsertChild:
		if c.ParentID, err = d.ReadString(); err != nil {
			return nil, err
		}
		if c.ID, err = d.ReadString(); err != nil {
			return nil, err
		}
		idx, err := d.ReadSvarint()
		if err != nil {
			return nil, err
		}
		c.Index = int(idx)
	case CmdRemoveChild:
		if c.ParentID, err = d.ReadString(); err != nil {
			return nil, err
		}
		if c.ID, err = d.ReadString(); err != nil {
			return nil, err
		}
	case CmdSetProperty:
		if c.ID, err = d.ReadString(); err != nil {
			return nil, err
		}
		if c.Key, err = d.ReadString(); err != nil {
			return nil, err
		}
		if c.Value, err = DecodeValue(d); err != nil {
			return nil, err
		}
	case CmdSetTextValue:
		if c.ID, err = d.ReadString(); err != nil {
			return nil, err
		}
		if c.Text, err = d.ReadString(); err != nil {
			return nil, err
		}
	case CmdInvokeMethod:
		if c.Seq, err = d.ReadUvarint(); err != nil {
			return nil, err
		}
		if c.ID, err = d.ReadString(); err != nil {
			return nil, err
		}
		if c.Method, err = d.ReadString(); err != nil {
			return nil, err
		}
		n, err := d.ReadUvarint()
		if err != nil {
			return nil, err
		}
		if n > uint64(d.Remaining()) {
			return nil, ErrUnexpectedEOF
		}
		if n > 0 {
			c.Args = make([]any, 0, n)
			for i := uint64(0); i < n; i++ {
				a, err := DecodeValue(d)
				if err != nil {
					return nil, err
				}
				c.Args = append(c.Args, a)
			}
		}
	case CmdFinalizeCommit:
		// No body.
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownCommand, t)
	}
	return c, nil
}
