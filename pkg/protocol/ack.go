package protocol

// Ack answers an InvokeMethod command. Seq matches the command's
// sequence number. On failure OK is false and Message carries the
// host-side error text.
type Ack struct {
	Seq     uint64
	OK      bool
	Result  any
	Message string
}

// EncodeAck serializes one ack into a fresh buffer.
func EncodeAck(a *Ack) []byte {
	e := NewEncoder()
	e.WriteUvarint(a.Seq)
	e.WriteBool(a.OK)
	EncodeValue(e, a.Result)
	e.WriteString(a.Message)
	out := make([]byte, e.Len())
	copy(out, e.Bytes())
	return out
}

// DecodeAck parses one ack from data.
func DecodeAck(data []byte) (*Ack, error) {
	d := NewDecoder(data)
	a := &Ack{}
	var err error
	if a.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if a.OK, err = d.ReadBool(); err != nil {
		return nil, err
	}
	if a.Result, err = DecodeValue(d); err != nil {
		return nil, err
	}
	if a.Message, err = d.ReadString(); err != nil {
		return nil, err
	}
	return a, nil
}
