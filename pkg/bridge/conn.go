package bridge

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/canopy-ui/canopy/pkg/dispatch"
	"github.com/canopy-ui/canopy/pkg/protocol"
	"github.com/canopy-ui/canopy/pkg/scene"
)

// Conn owns one websocket connection to a native host peer. All writes
// go through a single mutex; the read loop runs on its own goroutine
// until the connection drops.
type Conn struct {
	ws     *websocket.Conn
	cfg    Config
	logger *slog.Logger

	writeMu sync.Mutex
	closed  atomic.Bool
	done    chan struct{}

	host    *RemoteHost
	session *scene.Session
	router  *dispatch.Router
}

// newConn wires a connection around an upgraded websocket. The caller
// attaches host, session, and router before starting the loops.
func newConn(ws *websocket.Conn, cfg Config, logger *slog.Logger) *Conn {
	ws.SetReadLimit(cfg.MaxMessageSize)
	return &Conn{
		ws:     ws,
		cfg:    cfg,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Session returns the scene session bound to this connection.
func (c *Conn) Session() *scene.Session { return c.session }

// Host returns the remote host bound to this connection.
func (c *Conn) Host() *RemoteHost { return c.host }

// Router returns the dispatch router bound to this connection.
func (c *Conn) Router() *dispatch.Router { return c.router }

// Done is closed when the connection shuts down.
func (c *Conn) Done() <-chan struct{} { return c.done }

// WriteFrame encodes and writes one frame. Safe for concurrent use.
func (c *Conn) WriteFrame(t protocol.FrameType, payload []byte) error {
	data, err := (&protocol.Frame{Type: t, Payload: payload}).Encode()
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.closed.Load() {
		return ErrHostClosed
	}
	c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	return c.ws.WriteMessage(websocket.BinaryMessage, data)
}

// Close tears down the connection, failing pending invokes. Idempotent.
func (c *Conn) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	close(c.done)
	if c.host != nil {
		c.host.Close()
	}
	c.ws.Close()
}

// start launches the read and heartbeat loops.
func (c *Conn) start() {
	go c.readLoop()
	go c.pingLoop()
}

// readLoop reads frames until the connection drops. Malformed frames
// are logged and skipped; the connection survives them.
func (c *Conn) readLoop() {
	defer c.Close()

	for {
		c.ws.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
		_, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			c.logger.Error("frame decode error", "error", err)
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			c.handleEventFrame(frame.Payload)
		case protocol.FrameAck:
			c.handleAckFrame(frame.Payload)
		case protocol.FrameControl:
			c.handleControlFrame(frame.Payload)
		case protocol.FrameError:
			c.handleErrorFrame(frame.Payload)
		default:
			c.logger.Warn("unknown frame type", "type", frame.Type)
		}
	}
}

// handleEventFrame decodes one view event and routes it.
func (c *Conn) handleEventFrame(payload []byte) {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		c.logger.Error("event decode error", "error", err)
		c.sendError(protocol.ErrCodeInvalidEvent, "invalid event payload")
		return
	}
	raw := &dispatch.RawEvent{
		Target:        ev.Target,
		RelatedTarget: ev.RelatedTarget,
		Bubbles:       ev.Bubbles,
		X:             ev.X,
		Y:             ev.Y,
		Button:        ev.Button,
		Key:           ev.Key,
		Code:          ev.Code,
		Extra:         ev.Extra,
	}
	c.router.DispatchViewEvent(ev.NodeID, ev.Type, raw)
}

// handleAckFrame resolves a pending invoke.
func (c *Conn) handleAckFrame(payload []byte) {
	ack, err := protocol.DecodeAck(payload)
	if err != nil {
		c.logger.Error("ack decode error", "error", err)
		return
	}
	c.host.HandleAck(ack)
}

// handleControlFrame answers pings and honors peer-initiated closes.
func (c *Conn) handleControlFrame(payload []byte) {
	ctl, err := protocol.DecodeControl(payload)
	if err != nil {
		c.logger.Error("control decode error", "error", err)
		return
	}
	switch ctl.Type {
	case protocol.ControlPing:
		pong := protocol.EncodeControl(&protocol.Control{
			Type:      protocol.ControlPong,
			Timestamp: ctl.Timestamp,
		})
		if err := c.WriteFrame(protocol.FrameControl, pong); err != nil {
			c.logger.Error("pong write error", "error", err)
		}
	case protocol.ControlPong:
		c.logger.Debug("received pong")
	case protocol.ControlClose:
		c.logger.Info("peer closing", "reason", ctl.Reason)
		c.Close()
	}
}

// handleErrorFrame logs a peer-reported failure.
func (c *Conn) handleErrorFrame(payload []byte) {
	we, err := protocol.DecodeError(payload)
	if err != nil {
		c.logger.Error("error frame decode error", "error", err)
		return
	}
	c.logger.Error("peer reported error", "code", we.Code.String(), "message", we.Message)
}

// sendError ships an error frame. Write failures are logged only.
func (c *Conn) sendError(code protocol.ErrorCode, message string) {
	payload := protocol.EncodeError(&protocol.WireError{Code: code, Message: message})
	if err := c.WriteFrame(protocol.FrameError, payload); err != nil {
		c.logger.Error("error frame write error", "error", err)
	}
}

// pingLoop sends heartbeats until the connection closes.
func (c *Conn) pingLoop() {
	ticker := time.NewTicker(c.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ping := protocol.EncodeControl(&protocol.Control{
				Type:      protocol.ControlPing,
				Timestamp: uint64(time.Now().UnixMilli()),
			})
			if err := c.WriteFrame(protocol.FrameControl, ping); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}
