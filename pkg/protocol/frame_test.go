package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	payload := EncodeCommand(&Command{Type: CmdCreateText, ID: "m1", Text: "hi"})
	f := &Frame{Type: FrameCommand, Flags: 0x01, Payload: payload}

	data, err := f.Encode()
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeFrame(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != FrameCommand || got.Flags != 0x01 {
		t.Errorf("header = %v/%#x", got.Type, got.Flags)
	}
	if !bytes.Equal(got.Payload, payload) {
		t.Error("payload mismatch")
	}
}

func TestFrameEmptyPayload(t *testing.T) {
	data, err := (&Frame{Type: FrameControl}).Encode()
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeFrame(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Payload) != 0 {
		t.Errorf("payload = %v", got.Payload)
	}
}

func TestFrameRejectsOversizedPayload(t *testing.T) {
	f := &Frame{Type: FrameEvent, Payload: make([]byte, MaxPayloadSize+1)}
	if _, err := f.Encode(); !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("err = %v, want ErrPayloadTooLarge", err)
	}
}

func TestFrameTruncated(t *testing.T) {
	data, err := (&Frame{Type: FrameAck, Payload: []byte("abcdef")}).Encode()
	if err != nil {
		t.Fatal(err)
	}
	for _, cut := range []int{0, 1, 3, len(data) - 1} {
		if _, err := DecodeFrame(data[:cut]); !errors.Is(err, ErrShortFrame) {
			t.Errorf("cut %d: err = %v, want ErrShortFrame", cut, err)
		}
	}
}

func TestFrameTypeString(t *testing.T) {
	for ft, want := range map[FrameType]string{
		FrameCommand: "command",
		FrameEvent:   "event",
		FrameControl: "control",
		FrameAck:     "ack",
		FrameError:   "error",
	} {
		if ft.String() != want {
			t.Errorf("%d.String() = %q, want %q", ft, ft.String(), want)
		}
	}
}
