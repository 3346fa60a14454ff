// Package dispatch routes host-originated input events back into the
// mirrored tree.
//
// The router resolves the inbound target identifier through the session
// registry, wraps the raw payload into a typed synthetic event, and
// bubbles it from the target toward the root. Paired press/release events
// on the same target additionally synthesize a click. Handlers are plain
// functions stored in node property maps under the event-type key.
package dispatch

import (
	"context"
	"errors"
	"log/slog"

	"github.com/canopy-ui/canopy/pkg/scene"
)

// ErrUnknownTarget is returned by Dispatch when the inbound identifier is
// not in the session registry (a stale or never-mirrored node). The
// inbound entry point swallows it: unknown targets are dropped, never
// surfaced.
var ErrUnknownTarget = errors.New("dispatch: unknown event target")

// Handler processes one inbound view event. Middleware wraps this
// signature.
type Handler func(ctx context.Context, nodeID, eventType string, raw *RawEvent) error

// Middleware decorates the dispatch pipeline, in the order listed: the
// first middleware runs outermost.
type Middleware func(Handler) Handler

// Router is the event router for one session.
type Router struct {
	session *scene.Session
	logger  *slog.Logger
	chain   Handler

	onSynthesizedClick func(targetID string)
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithMiddleware installs dispatch middleware.
func WithMiddleware(mw ...Middleware) RouterOption {
	return func(r *Router) {
		for i := len(mw) - 1; i >= 0; i-- {
			r.chain = mw[i](r.chain)
		}
	}
}

// WithLogger overrides the session logger for router messages.
func WithLogger(l *slog.Logger) RouterOption {
	return func(r *Router) { r.logger = l }
}

// WithSynthesisHook registers a callback fired for every synthesized
// click, before the click bubbles. Used for metrics.
func WithSynthesisHook(fn func(targetID string)) RouterOption {
	return func(r *Router) { r.onSynthesizedClick = fn }
}

// NewRouter creates a router bound to a session.
func NewRouter(s *scene.Session, opts ...RouterOption) *Router {
	r := &Router{session: s, logger: s.Logger()}
	r.chain = r.dispatch
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DispatchViewEvent is the inbound entry point called by the native host.
// It has no result: unknown targets are dropped silently and handler
// outcomes are not reported back to the host.
func (r *Router) DispatchViewEvent(nodeID, eventType string, raw *RawEvent) {
	err := r.Dispatch(context.Background(), nodeID, eventType, raw)
	if err != nil && !errors.Is(err, ErrUnknownTarget) {
		r.logger.Error("dispatch failed", "id", nodeID, "type", eventType, "error", err)
	}
}

// Dispatch runs one event through the middleware chain. It returns
// ErrUnknownTarget for unresolvable identifiers so middleware can observe
// drops; callers at the host boundary treat that as a non-error.
func (r *Router) Dispatch(ctx context.Context, nodeID, eventType string, raw *RawEvent) error {
	return r.chain(ctx, nodeID, eventType, raw)
}

// dispatch is the innermost handler: the press/release/click state
// machine.
func (r *Router) dispatch(_ context.Context, nodeID, eventType string, raw *RawEvent) error {
	node, ok := r.session.Lookup(nodeID)
	if !ok {
		r.logger.Debug("dropping event for unknown target", "id", nodeID, "type", eventType)
		return ErrUnknownTarget
	}

	ev := r.wrap(eventType, raw)

	switch eventType {
	case EventMouseDown:
		r.session.SetPressTarget(nodeID)
		r.bubble(node, eventType, ev)

	case EventMouseUp:
		r.bubble(node, eventType, ev)
		if pressed := r.session.PressTarget(); pressed != "" && pressed == nodeID {
			r.session.ClearPressTarget()
			if r.onSynthesizedClick != nil {
				r.onSynthesizedClick(nodeID)
			}
			r.bubble(node, EventClick, r.wrap(EventClick, raw))
		}

	default:
		r.bubble(node, eventType, ev)
	}
	return nil
}

// wrap classifies the event type and builds the matching synthetic event.
// Raw target identifiers that do not resolve stay in place with a nil
// node reference.
func (r *Router) wrap(eventType string, raw *RawEvent) SyntheticEvent {
	base := Event{Type: eventType, Raw: raw}
	if raw != nil {
		base.Bubbles = raw.Bubbles
		base.TargetID = raw.Target
		base.RelatedTargetID = raw.RelatedTarget
		if raw.Target != "" {
			if n, ok := r.session.Lookup(raw.Target); ok {
				base.Target = n
			}
		}
		if raw.RelatedTarget != "" {
			if n, ok := r.session.Lookup(raw.RelatedTarget); ok {
				base.RelatedTarget = n
			}
		}
	}

	switch {
	case IsMouseEvent(eventType):
		me := &MouseEvent{Event: base}
		if raw != nil {
			me.X, me.Y, me.Button = raw.X, raw.Y, raw.Button
		}
		return me
	case IsKeyboardEvent(eventType):
		ke := &KeyboardEvent{Event: base}
		if raw != nil {
			ke.Key, ke.Code = raw.Key, raw.Code
		}
		return ke
	default:
		return &base
	}
}

// bubble walks from the target toward the root, invoking the handler
// stored under the event-type key at each node. The target's own handler
// always runs; propagation past it requires the event's bubbles flag.
// The root sentinel's handlers are never invoked.
func (r *Router) bubble(target *scene.Node, eventType string, ev SyntheticEvent) {
	root := r.session.RootNode()
	for n := target; n != nil && n != root; n = n.Parent() {
		invokeHandler(n, eventType, ev)
		if !ev.ShouldBubble() {
			return
		}
	}
}

// invokeHandler calls the node's handler for eventType if one is stored
// and callable. Non-callable values and signature mismatches are skipped.
func invokeHandler(n *scene.Node, eventType string, ev SyntheticEvent) {
	v, ok := n.Prop(eventType)
	if !ok {
		return
	}
	switch h := v.(type) {
	case func(SyntheticEvent):
		h(ev)
	case func(*MouseEvent):
		if me, ok := ev.(*MouseEvent); ok {
			h(me)
		}
	case func(*KeyboardEvent):
		if ke, ok := ev.(*KeyboardEvent); ok {
			h(ke)
		}
	case func(*Event):
		if be, ok := ev.(*Event); ok {
			h(be)
		}
	}
}
