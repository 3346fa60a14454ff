package bridge

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/canopy-ui/canopy/pkg/dispatch"
	"github.com/canopy-ui/canopy/pkg/scene"
)

// SessionFunc runs when a connection is established, on the
// connection's own goroutine. It typically builds the initial tree
// through conn.Session() and returns; event handling continues until
// the connection drops.
type SessionFunc func(conn *Conn)

// Server accepts websocket connections from native host peers and
// wires a fresh session, remote host, and router per connection.
type Server struct {
	upgrader websocket.Upgrader
	cfg      Config
	logger   *slog.Logger

	sessionOpts []scene.Option
	routerOpts  []dispatch.RouterOption
	onSession   SessionFunc
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithConfig sets the connection tuning.
func WithConfig(cfg Config) ServerOption {
	return func(s *Server) { s.cfg = cfg }
}

// WithServerLogger sets the server logger. Defaults to slog.Default.
func WithServerLogger(l *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// WithSessionOptions forwards options to every connection's session.
func WithSessionOptions(opts ...scene.Option) ServerOption {
	return func(s *Server) { s.sessionOpts = append(s.sessionOpts, opts...) }
}

// WithRouterOptions forwards options to every connection's router.
func WithRouterOptions(opts ...dispatch.RouterOption) ServerOption {
	return func(s *Server) { s.routerOpts = append(s.routerOpts, opts...) }
}

// WithCheckOrigin overrides the upgrader's origin policy.
func WithCheckOrigin(fn func(*http.Request) bool) ServerOption {
	return func(s *Server) { s.upgrader.CheckOrigin = fn }
}

// NewServer creates a websocket server invoking onSession per
// connection.
func NewServer(onSession SessionFunc, opts ...ServerOption) *Server {
	s := &Server{
		logger:    slog.Default(),
		onSession: onSession,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg = s.cfg.withDefaults()
	s.upgrader.ReadBufferSize = s.cfg.ReadBufferSize
	s.upgrader.WriteBufferSize = s.cfg.WriteBufferSize
	return s
}

// ServeHTTP upgrades the request and runs the connection until it
// drops.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	logger := s.logger.With("remote", ws.RemoteAddr().String())
	conn := newConn(ws, s.cfg, logger)
	conn.host = NewRemoteHost(conn, WithInvokeTimeout(s.cfg.InvokeTimeout))
	conn.session = scene.NewSession(conn.host,
		append([]scene.Option{scene.WithLogger(logger)}, s.sessionOpts...)...)
	conn.router = dispatch.NewRouter(conn.session, s.routerOpts...)

	logger.Info("peer connected")
	conn.start()

	if s.onSession != nil {
		s.onSession(conn)
	}

	<-conn.Done()
	logger.Info("peer disconnected")
}
