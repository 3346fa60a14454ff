package protocol

// ViewEvent is one host-to-mirror input event. NodeID names the
// dispatch target; Target and RelatedTarget carry the host's own
// target identifiers for best-effort resolution on the mirror side.
type ViewEvent struct {
	Seq     uint64
	NodeID  string
	Type    string
	Bubbles bool

	Target        string
	RelatedTarget string

	// Mouse fields.
	X, Y   int
	Button int

	// Keyboard fields.
	Key  string
	Code string

	// Extra carries host-specific fields outside the typed set.
	Extra map[string]any
}

// EncodeEvent serializes one view event into a fresh buffer.
func EncodeEvent(ev *ViewEvent) []byte {
	e := NewEncoder()
	EncodeEventTo(e, ev)
	out := make([]byte, e.Len())
	copy(out, e.Bytes())
	return out
}

// EncodeEventTo appends one view event to the encoder.
func EncodeEventTo(e *Encoder, ev *ViewEvent) {
	e.WriteUvarint(ev.Seq)
	e.WriteString(ev.NodeID)
	e.WriteString(ev.Type)
	e.WriteBool(ev.Bubbles)
	e.WriteString(ev.Target)
	e.WriteString(ev.RelatedTarget)
	e.WriteSvarint(int64(ev.X))
	e.WriteSvarint(int64(ev.Y))
	e.WriteSvarint(int64(ev.Button))
	e.WriteString(ev.Key)
	e.WriteString(ev.Code)
	if len(ev.Extra) == 0 {
		EncodeValue(e, nil)
	} else {
		EncodeValue(e, ev.Extra)
	}
}

// DecodeEvent parses one view event from data.
func DecodeEvent(data []byte) (*ViewEvent, error) {
	return DecodeEventFrom(NewDecoder(data))
}

// DecodeEventFrom parses one view event from the decoder.
func DecodeEventFrom(d *Decoder) (*ViewEvent, error) {
	ev := &ViewEvent{}
	var err error
	if ev.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if ev.NodeID, err = d.ReadString(); err != nil {
		return nil, err
	}
	if ev.Type, err = d.ReadString(); err != nil {
		return nil, err
	}
	if ev.Bubbles, err = d.ReadBool(); err != nil {
		return nil, err
	}
	if ev.Target, err = d.ReadString(); err != nil {
		return nil, err
	}
	if ev.RelatedTarget, err = d.ReadString(); err != nil {
		return nil, err
	}
	x, err := d.ReadSvarint()
	if err != nil {
		return nil, err
	}
	y, err := d.ReadSvarint()
	if err != nil {
		return nil, err
	}
	button, err := d.ReadSvarint()
	if err != nil {
		return nil, err
	}
	ev.X, ev.Y, ev.Button = int(x), int(y), int(button)
	if ev.Key, err = d.ReadString(); err != nil {
		return nil, err
	}
	if ev.Code, err = d.ReadString(); err != nil {
		return nil, err
	}
	extra, err := DecodeValue(d)
	if err != nil {
		return nil, err
	}
	if m, ok := extra.(map[string]any); ok {
		ev.Extra = m
	}
	return ev, nil
}
