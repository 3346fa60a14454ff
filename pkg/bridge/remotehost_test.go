package bridge

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/canopy-ui/canopy/pkg/protocol"
)

// recordingWriter captures frames instead of writing to a socket.
type recordingWriter struct {
	mu     sync.Mutex
	frames []recordedFrame
	err    error
}

type recordedFrame struct {
	typ     protocol.FrameType
	payload []byte
}

func (w *recordingWriter) WriteFrame(t protocol.FrameType, payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	p := make([]byte, len(payload))
	copy(p, payload)
	w.frames = append(w.frames, recordedFrame{typ: t, payload: p})
	return nil
}

func (w *recordingWriter) commands(t *testing.T) []*protocol.Command {
	t.Helper()
	w.mu.Lock()
	defer w.mu.Unlock()
	var cmds []*protocol.Command
	for _, f := range w.frames {
		if f.typ != protocol.FrameCommand {
			t.Fatalf("unexpected frame type %v", f.typ)
		}
		c, err := protocol.DecodeCommand(f.payload)
		if err != nil {
			t.Fatalf("decode command: %v", err)
		}
		cmds = append(cmds, c)
	}
	return cmds
}

func TestRemoteHostAllocatesSequentialIDs(t *testing.T) {
	w := &recordingWriter{}
	h := NewRemoteHost(w)

	id1, err := h.CreateContainerInstance("box")
	if err != nil {
		t.Fatal(err)
	}
	id2, err := h.CreateTextInstance("hi")
	if err != nil {
		t.Fatal(err)
	}
	if id1 != "m1" || id2 != "m2" {
		t.Errorf("ids = %q, %q", id1, id2)
	}

	cmds := w.commands(t)
	if len(cmds) != 2 {
		t.Fatalf("got %d commands", len(cmds))
	}
	if cmds[0].Type != protocol.CmdCreateContainer || cmds[0].ID != "m1" || cmds[0].TypeTag != "box" {
		t.Errorf("first command = %+v", cmds[0])
	}
	if cmds[1].Type != protocol.CmdCreateText || cmds[1].ID != "m2" || cmds[1].Text != "hi" {
		t.Errorf("second command = %+v", cmds[1])
	}
}

func TestRemoteHostStructuralCommands(t *testing.T) {
	w := &recordingWriter{}
	h := NewRemoteHost(w)

	if err := h.InsertChild("root", "m1", -1); err != nil {
		t.Fatal(err)
	}
	if err := h.SetProperty("m1", "color", "red"); err != nil {
		t.Fatal(err)
	}
	if err := h.SetTextValue("m2", "updated"); err != nil {
		t.Fatal(err)
	}
	if err := h.RemoveChild("root", "m1"); err != nil {
		t.Fatal(err)
	}
	if err := h.FinalizeCommit(); err != nil {
		t.Fatal(err)
	}

	cmds := w.commands(t)
	wantTypes := []protocol.CommandType{
		protocol.CmdInsertChild,
		protocol.CmdSetProperty,
		protocol.CmdSetTextValue,
		protocol.CmdRemoveChild,
		protocol.CmdFinalizeCommit,
	}
	if len(cmds) != len(wantTypes) {
		t.Fatalf("got %d commands, want %d", len(cmds), len(wantTypes))
	}
	for i, want := range wantTypes {
		if cmds[i].Type != want {
			t.Errorf("command %d = %v, want %v", i, cmds[i].Type, want)
		}
	}
	if cmds[0].Index != -1 {
		t.Errorf("insert index = %d, want -1", cmds[0].Index)
	}
	if cmds[1].Value != "red" {
		t.Errorf("property value = %v", cmds[1].Value)
	}
}

func TestRemoteHostRootID(t *testing.T) {
	h := NewRemoteHost(&recordingWriter{})
	id, err := h.RootInstanceID()
	if err != nil {
		t.Fatal(err)
	}
	if id != DefaultRootID {
		t.Errorf("root id = %q", id)
	}

	h = NewRemoteHost(&recordingWriter{}, WithRootID("window-0"))
	if id, _ := h.RootInstanceID(); id != "window-0" {
		t.Errorf("overridden root id = %q", id)
	}
}

func TestRemoteHostInvokeRoundTrip(t *testing.T) {
	w := &recordingWriter{}
	h := NewRemoteHost(w)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Wait for the invoke command, then ack it.
		for {
			w.mu.Lock()
			n := len(w.frames)
			w.mu.Unlock()
			if n > 0 {
				break
			}
			time.Sleep(time.Millisecond)
		}
		cmds := w.commands(t)
		h.HandleAck(&protocol.Ack{Seq: cmds[0].Seq, OK: true, Result: "focused"})
	}()

	result, err := h.InvokeInstanceMethod("m1", "focus", 1, "soft")
	<-done
	if err != nil {
		t.Fatal(err)
	}
	if result != "focused" {
		t.Errorf("result = %v", result)
	}

	cmds := w.commands(t)
	if cmds[0].Method != "focus" || len(cmds[0].Args) != 2 {
		t.Errorf("invoke command = %+v", cmds[0])
	}
}

func TestRemoteHostInvokeFailureAck(t *testing.T) {
	w := &recordingWriter{}
	h := NewRemoteHost(w)

	go func() {
		for {
			w.mu.Lock()
			n := len(w.frames)
			w.mu.Unlock()
			if n > 0 {
				break
			}
			time.Sleep(time.Millisecond)
		}
		cmds := w.commands(t)
		h.HandleAck(&protocol.Ack{Seq: cmds[0].Seq, OK: false, Message: "no such method"})
	}()

	_, err := h.InvokeInstanceMethod("m1", "explode")
	if err == nil {
		t.Fatal("failure ack produced no error")
	}
}

func TestRemoteHostInvokeTimeout(t *testing.T) {
	h := NewRemoteHost(&recordingWriter{}, WithInvokeTimeout(10*time.Millisecond))
	_, err := h.InvokeInstanceMethod("m1", "focus")
	if !errors.Is(err, ErrInvokeTimeout) {
		t.Errorf("err = %v, want ErrInvokeTimeout", err)
	}
}

func TestRemoteHostCloseFailsPendingAndRejectsCommands(t *testing.T) {
	h := NewRemoteHost(&recordingWriter{}, WithInvokeTimeout(time.Second))

	errCh := make(chan error, 1)
	go func() {
		_, err := h.InvokeInstanceMethod("m1", "focus")
		errCh <- err
	}()
	time.Sleep(5 * time.Millisecond)
	h.Close()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrHostClosed) {
			t.Errorf("pending invoke err = %v, want ErrHostClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("pending invoke not released by Close")
	}

	if _, err := h.CreateContainerInstance("box"); !errors.Is(err, ErrHostClosed) {
		t.Errorf("post-close create err = %v, want ErrHostClosed", err)
	}
	if err := h.FinalizeCommit(); !errors.Is(err, ErrHostClosed) {
		t.Errorf("post-close finalize err = %v, want ErrHostClosed", err)
	}
}

func TestRemoteHostWriterErrorPropagates(t *testing.T) {
	wantErr := errors.New("socket gone")
	h := NewRemoteHost(&recordingWriter{err: wantErr})

	if _, err := h.CreateContainerInstance("box"); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
	if err := h.SetProperty("m1", "color", "red"); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestRemoteHostLateAckIsDropped(t *testing.T) {
	h := NewRemoteHost(&recordingWriter{}, WithInvokeTimeout(5*time.Millisecond))
	_, err := h.InvokeInstanceMethod("m1", "focus")
	if !errors.Is(err, ErrInvokeTimeout) {
		t.Fatalf("err = %v", err)
	}
	// The ack for the timed-out invoke arrives afterwards; nothing to
	// resolve, nothing blocks.
	h.HandleAck(&protocol.Ack{Seq: 1, OK: true})
}
