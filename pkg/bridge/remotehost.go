package bridge

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/canopy-ui/canopy/pkg/host"
	"github.com/canopy-ui/canopy/pkg/protocol"
)

var _ host.Host = (*RemoteHost)(nil)

// RemoteHost errors.
var (
	ErrHostClosed    = errors.New("bridge: remote host closed")
	ErrInvokeTimeout = errors.New("bridge: invoke ack timed out")
)

// frameWriter ships one encoded frame to the peer. Conn implements it;
// tests substitute an in-memory recorder.
type frameWriter interface {
	WriteFrame(t protocol.FrameType, payload []byte) error
}

// DefaultRootID is the instance identifier of the peer's root
// container. The peer pre-creates it before the first command arrives.
const DefaultRootID = "root"

// RemoteHost implements host.Host over a frame transport. Identifiers
// are allocated locally, which keeps every structural command
// fire-and-forget; only method invocations wait for the peer.
type RemoteHost struct {
	mu sync.Mutex
	w  frameWriter

	rootID string
	nextID uint64

	invokeTimeout time.Duration
	nextSeq       uint64
	pending       map[uint64]chan *protocol.Ack
	closed        bool
}

// RemoteHostOption configures a RemoteHost.
type RemoteHostOption func(*RemoteHost)

// WithRootID overrides the peer's root instance identifier.
func WithRootID(id string) RemoteHostOption {
	return func(h *RemoteHost) { h.rootID = id }
}

// WithInvokeTimeout overrides the ack round-trip deadline.
func WithInvokeTimeout(d time.Duration) RemoteHostOption {
	return func(h *RemoteHost) { h.invokeTimeout = d }
}

// NewRemoteHost creates a host shipping commands through w.
func NewRemoteHost(w frameWriter, opts ...RemoteHostOption) *RemoteHost {
	h := &RemoteHost{
		w:             w,
		rootID:        DefaultRootID,
		invokeTimeout: DefaultInvokeTimeout,
		pending:       make(map[uint64]chan *protocol.Ack),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// allocID hands out the next mirror-side instance identifier.
func (h *RemoteHost) allocID() string {
	h.nextID++
	return fmt.Sprintf("m%d", h.nextID)
}

// send encodes and ships one command under the lock.
func (h *RemoteHost) send(c *protocol.Command) error {
	if h.closed {
		return ErrHostClosed
	}
	return h.w.WriteFrame(protocol.FrameCommand, protocol.EncodeCommand(c))
}

// CreateContainerInstance allocates an identifier and instructs the
// peer to create a container of the given type.
func (h *RemoteHost) CreateContainerInstance(typ string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.allocID()
	if err := h.send(&protocol.Command{Type: protocol.CmdCreateContainer, ID: id, TypeTag: typ}); err != nil {
		return "", err
	}
	return id, nil
}

// CreateTextInstance allocates an identifier and instructs the peer to
// create a text instance.
func (h *RemoteHost) CreateTextInstance(text string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.allocID()
	if err := h.send(&protocol.Command{Type: protocol.CmdCreateText, ID: id, Text: text}); err != nil {
		return "", err
	}
	return id, nil
}

// InsertChild attaches childID under parentID at index; -1 appends.
func (h *RemoteHost) InsertChild(parentID, childID string, index int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.send(&protocol.Command{Type: protocol.CmdInsertChild, ParentID: parentID, ID: childID, Index: index})
}

// RemoveChild detaches childID from parentID.
func (h *RemoteHost) RemoveChild(parentID, childID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.send(&protocol.Command{Type: protocol.CmdRemoveChild, ParentID: parentID, ID: childID})
}

// SetProperty ships one property update.
func (h *RemoteHost) SetProperty(id, key string, value any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.send(&protocol.Command{Type: protocol.CmdSetProperty, ID: id, Key: key, Value: value})
}

// SetTextValue ships one text content update.
func (h *RemoteHost) SetTextValue(id, text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.send(&protocol.Command{Type: protocol.CmdSetTextValue, ID: id, Text: text})
}

// InvokeInstanceMethod ships an invoke command and blocks for the
// peer's ack, up to the invoke timeout.
func (h *RemoteHost) InvokeInstanceMethod(id, method string, args ...any) (any, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHostClosed
	}
	h.nextSeq++
	seq := h.nextSeq
	ch := make(chan *protocol.Ack, 1)
	h.pending[seq] = ch

	err := h.send(&protocol.Command{
		Type:   protocol.CmdInvokeMethod,
		Seq:    seq,
		ID:     id,
		Method: method,
		Args:   args,
	})
	if err != nil {
		delete(h.pending, seq)
		h.mu.Unlock()
		return nil, err
	}
	h.mu.Unlock()

	timer := time.NewTimer(h.invokeTimeout)
	defer timer.Stop()
	select {
	case ack, ok := <-ch:
		if !ok {
			return nil, ErrHostClosed
		}
		if !ack.OK {
			return nil, fmt.Errorf("bridge: invoke %s.%s: %s", id, method, ack.Message)
		}
		return ack.Result, nil
	case <-timer.C:
		h.mu.Lock()
		delete(h.pending, seq)
		h.mu.Unlock()
		return nil, fmt.Errorf("%w: %s.%s", ErrInvokeTimeout, id, method)
	}
}

// RootInstanceID returns the peer's well-known root identifier. No
// round trip: the identifier is part of the connection contract.
func (h *RemoteHost) RootInstanceID() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return "", ErrHostClosed
	}
	return h.rootID, nil
}

// FinalizeCommit ships the flush command.
func (h *RemoteHost) FinalizeCommit() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.send(&protocol.Command{Type: protocol.CmdFinalizeCommit})
}

// HandleAck resolves the pending invoke matching the ack's sequence
// number. Unmatched acks (late arrivals after a timeout) are dropped.
func (h *RemoteHost) HandleAck(ack *protocol.Ack) {
	h.mu.Lock()
	ch, ok := h.pending[ack.Seq]
	if ok {
		delete(h.pending, ack.Seq)
	}
	h.mu.Unlock()
	if ok {
		ch <- ack
	}
}

// Close fails every pending invoke and rejects further commands.
func (h *RemoteHost) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for seq, ch := range h.pending {
		close(ch)
		delete(h.pending, seq)
	}
}
