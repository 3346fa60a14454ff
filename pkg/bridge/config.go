package bridge

import "time"

// Config tunes connection behavior. Zero values fall back to the
// defaults below.
type Config struct {
	// ReadTimeout bounds a single websocket read. Heartbeats keep a
	// healthy connection inside this window.
	ReadTimeout time.Duration

	// WriteTimeout bounds a single websocket write.
	WriteTimeout time.Duration

	// HeartbeatInterval is the ping cadence. It must stay below
	// ReadTimeout on the peer.
	HeartbeatInterval time.Duration

	// InvokeTimeout bounds the ack round-trip of an instance method
	// invocation.
	InvokeTimeout time.Duration

	// MaxMessageSize caps inbound websocket messages in bytes.
	MaxMessageSize int64

	// ReadBufferSize and WriteBufferSize size the upgrader's buffers.
	ReadBufferSize  int
	WriteBufferSize int
}

// Default connection tuning.
const (
	DefaultReadTimeout       = 60 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultHeartbeatInterval = 30 * time.Second
	DefaultInvokeTimeout     = 5 * time.Second
	DefaultMaxMessageSize    = 1 << 20
	DefaultBufferSize        = 4096
)

// withDefaults fills zero fields.
func (c Config) withDefaults() Config {
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if c.InvokeTimeout == 0 {
		c.InvokeTimeout = DefaultInvokeTimeout
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = DefaultMaxMessageSize
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = DefaultBufferSize
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = DefaultBufferSize
	}
	return c
}
