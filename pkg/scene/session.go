package scene

import (
	"log/slog"
	"sort"

	"github.com/canopy-ui/canopy/pkg/host"
	"github.com/canopy-ui/canopy/pkg/style"
)

// RootType is the type tag of the lazily created root container.
const RootType = "root"

// Session owns one mirrored tree: the node registry, the cached root, the
// press-tracking slot used for click synthesis, and the normalization
// collaborators. There is no process-wide state; independent sessions are
// fully isolated.
type Session struct {
	host      host.Host
	registry  map[string]*Node
	root      *Node
	lastPress string

	colors    style.ColorFunc
	gradients style.GradientFunc
	macros    map[string]style.Macro

	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithColorFunc injects the color normalization collaborator.
func WithColorFunc(f style.ColorFunc) Option {
	return func(s *Session) { s.colors = f }
}

// WithGradientFunc injects the linear-gradient conversion collaborator.
func WithGradientFunc(f style.GradientFunc) Option {
	return func(s *Session) { s.gradients = f }
}

// WithMacro registers an additional macro property on top of the
// built-in table.
func WithMacro(key string, m style.Macro) Option {
	return func(s *Session) { s.macros[key] = m }
}

// WithLogger sets the session logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a session bound to a native host.
func NewSession(h host.Host, opts ...Option) *Session {
	s := &Session{
		host:     h,
		registry: make(map[string]*Node),
		macros:   style.BuiltinMacros(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the singleton root container, requesting the host's root
// identifier on first use and caching the node afterwards.
func (s *Session) Root() (*Node, error) {
	if s.root != nil {
		return s.root, nil
	}
	id, err := s.host.RootInstanceID()
	if err != nil {
		return nil, err
	}
	root := &Node{
		kind:    KindContainer,
		id:      id,
		typ:     RootType,
		props:   Props{},
		border:  style.DefaultBorderState(),
		session: s,
	}
	s.registry[id] = root
	s.root = root
	return root, nil
}

// CreateContainer allocates a container node of the given type, registers
// it, and applies the initial properties in sorted key order.
func (s *Session) CreateContainer(typ string, props Props) (*Node, error) {
	id, err := s.host.CreateContainerInstance(typ)
	if err != nil {
		return nil, err
	}
	n := &Node{
		kind:    KindContainer,
		id:      id,
		typ:     typ,
		props:   Props{},
		border:  style.DefaultBorderState(),
		session: s,
	}
	s.registry[id] = n

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := n.SetProperty(k, props[k]); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// CreateText allocates a text node and registers it. The parent
// back-reference is established on attachment.
func (s *Session) CreateText(text string) (*Node, error) {
	id, err := s.host.CreateTextInstance(text)
	if err != nil {
		return nil, err
	}
	n := &Node{
		kind:    KindText,
		id:      id,
		text:    text,
		session: s,
	}
	s.registry[id] = n
	return n, nil
}

// Lookup resolves a host identifier to its mirrored node. The registry is
// authoritative for identifiers arriving from the native host.
func (s *Session) Lookup(id string) (*Node, bool) {
	n, ok := s.registry[id]
	return n, ok
}

// FinalizeCommit forwards the host's flush command. No local state
// changes.
func (s *Session) FinalizeCommit() error {
	return s.host.FinalizeCommit()
}

// PressTarget returns the identifier recorded by the last unpaired press
// event. Empty when no press is pending.
func (s *Session) PressTarget() string { return s.lastPress }

// SetPressTarget records the node eligible for a synthesized click.
func (s *Session) SetPressTarget(id string) { s.lastPress = id }

// ClearPressTarget clears the pending press slot.
func (s *Session) ClearPressTarget() { s.lastPress = "" }

// RootNode returns the cached root without lazily creating it. Nil until
// the first Root call. Event bubbling uses this as the stop sentinel.
func (s *Session) RootNode() *Node { return s.root }

// Logger returns the session logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// unregister drops a registry entry when a node is detached from its
// parent. Text and property updates never touch the registry.
func (s *Session) unregister(id string) {
	delete(s.registry, id)
}
