package protocol

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMaxAllocation caps any single length-prefixed allocation read
// by a Decoder. Property values and identifiers are small; anything
// near this limit indicates a corrupt or hostile payload.
const DefaultMaxAllocation = 1 << 20

// Decoding errors.
var (
	ErrUnexpectedEOF  = errors.New("protocol: unexpected end of payload")
	ErrVarintOverflow = errors.New("protocol: varint overflows 64 bits")
	ErrAllocationCap  = errors.New("protocol: length exceeds allocation cap")
)

// Decoder reads binary data from a byte slice. It never copies the
// input; ReadString allocates, ReadLenBytes returns a subslice.
type Decoder struct {
	data []byte
	pos  int

	// maxAlloc caps length prefixes. Zero means DefaultMaxAllocation.
	maxAlloc int
}

// NewDecoder creates a decoder over data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// SetMaxAllocation overrides the per-read allocation cap.
func (d *Decoder) SetMaxAllocation(n int) {
	d.maxAlloc = n
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

func (d *Decoder) allocCap() int {
	if d.maxAlloc > 0 {
		return d.maxAlloc
	}
	return DefaultMaxAllocation
}

// ReadByte reads a single byte.
func (d *Decoder) ReadByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, ErrUnexpectedEOF
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

// ReadUvarint reads an unsigned varint.
func (d *Decoder) ReadUvarint() (uint64, error) {
	var v uint64
	var shift uint
	for {
		if shift >= 64 {
			return 0, ErrVarintOverflow
		}
		b, err := d.ReadByte()
		if err != nil {
			return 0, err
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
		shift += 7
	}
}

// ReadSvarint reads a zigzag-encoded signed varint.
func (d *Decoder) ReadSvarint() (int64, error) {
	uv, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	return int64(uv>>1) ^ -int64(uv&1), nil
}

// ReadString reads a length-prefixed string.
func (d *Decoder) ReadString() (string, error) {
	b, err := d.ReadLenBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadLenBytes reads length-prefixed bytes. The returned slice aliases
// the decoder input.
func (d *Decoder) ReadLenBytes() ([]byte, error) {
	n, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(d.allocCap()) {
		return nil, fmt.Errorf("%w: %d bytes", ErrAllocationCap, n)
	}
	if int(n) > d.Remaining() {
		return nil, ErrUnexpectedEOF
	}
	b := d.data[d.pos : d.pos+int(n)]
	d.pos += int(n)
	return b, nil
}

// ReadBool reads one byte as a boolean. Any non-zero value is true.
func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// ReadUint16 reads a big-endian uint16.
func (d *Decoder) ReadUint16() (uint16, error) {
	if d.Remaining() < 2 {
		return 0, ErrUnexpectedEOF
	}
	v := uint16(d.data[d.pos])<<8 | uint16(d.data[d.pos+1])
	d.pos += 2
	return v, nil
}

// ReadUint64 reads a big-endian uint64.
func (d *Decoder) ReadUint64() (uint64, error) {
	if d.Remaining() < 8 {
		return 0, ErrUnexpectedEOF
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(d.data[d.pos+i])
	}
	d.pos += 8
	return v, nil
}

// ReadFloat64 reads a big-endian IEEE 754 float64.
func (d *Decoder) ReadFloat64() (float64, error) {
	bits, err := d.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}
