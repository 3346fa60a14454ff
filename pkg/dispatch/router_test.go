package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/canopy-ui/canopy/pkg/hosttest"
	"github.com/canopy-ui/canopy/pkg/scene"
)

// testTree builds root -> outer -> inner and returns the session plus the
// two containers.
func testTree(t *testing.T) (*scene.Session, *scene.Node, *scene.Node) {
	t.Helper()
	s := scene.NewSession(hosttest.New())
	root, err := s.Root()
	if err != nil {
		t.Fatal(err)
	}
	outer, err := s.CreateContainer("box", nil)
	if err != nil {
		t.Fatal(err)
	}
	inner, err := s.CreateContainer("button", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := root.AppendChild(outer); err != nil {
		t.Fatal(err)
	}
	if err := outer.AppendChild(inner); err != nil {
		t.Fatal(err)
	}
	return s, outer, inner
}

func handlerLog(t *testing.T, n *scene.Node, eventType, label string, log *[]string) {
	t.Helper()
	err := n.SetProperty(eventType, func(ev SyntheticEvent) {
		*log = append(*log, label+":"+ev.EventType())
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestUnknownTargetIsDropped(t *testing.T) {
	s, _, _ := testTree(t)
	r := NewRouter(s)

	err := r.Dispatch(context.Background(), "ghost", EventClick, &RawEvent{Bubbles: true})
	if !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("Dispatch = %v, want ErrUnknownTarget", err)
	}

	// The inbound entry point swallows the drop.
	r.DispatchViewEvent("ghost", EventClick, &RawEvent{Bubbles: true})
}

func TestBubblingOrderAndRootExclusion(t *testing.T) {
	s, outer, inner := testTree(t)
	root := s.RootNode()

	var log []string
	handlerLog(t, inner, EventClick, "inner", &log)
	handlerLog(t, outer, EventClick, "outer", &log)
	if err := root.SetProperty(EventClick, func(ev SyntheticEvent) {
		log = append(log, "root:"+ev.EventType())
	}); err != nil {
		t.Fatal(err)
	}

	r := NewRouter(s)
	r.DispatchViewEvent(inner.ID(), EventClick, &RawEvent{Bubbles: true})

	want := []string{"inner:onClick", "outer:onClick"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestBubblesFalseStopsAfterTarget(t *testing.T) {
	s, outer, inner := testTree(t)

	var log []string
	handlerLog(t, inner, EventClick, "inner", &log)
	handlerLog(t, outer, EventClick, "outer", &log)

	r := NewRouter(s)
	r.DispatchViewEvent(inner.ID(), EventClick, &RawEvent{Bubbles: false})

	// The target's own handler always fires; ancestors do not.
	if len(log) != 1 || log[0] != "inner:onClick" {
		t.Errorf("log = %v, want [inner:onClick]", log)
	}
}

func TestClickSynthesisSameTarget(t *testing.T) {
	s, outer, inner := testTree(t)

	var log []string
	handlerLog(t, inner, EventMouseDown, "inner", &log)
	handlerLog(t, inner, EventMouseUp, "inner", &log)
	handlerLog(t, inner, EventClick, "inner", &log)
	handlerLog(t, outer, EventClick, "outer", &log)

	var synthesized []string
	r := NewRouter(s, WithSynthesisHook(func(id string) {
		synthesized = append(synthesized, id)
	}))

	raw := &RawEvent{Bubbles: true}
	r.DispatchViewEvent(inner.ID(), EventMouseDown, raw)
	r.DispatchViewEvent(inner.ID(), EventMouseUp, raw)

	want := []string{
		"inner:onMouseDown",
		"inner:onMouseUp",
		"inner:onClick",
		"outer:onClick",
	}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
	if len(synthesized) != 1 || synthesized[0] != inner.ID() {
		t.Errorf("synthesized = %v, want [%s]", synthesized, inner.ID())
	}
	if s.PressTarget() != "" {
		t.Error("press target not cleared after pairing")
	}

	// A second release without a press synthesizes nothing.
	log = nil
	r.DispatchViewEvent(inner.ID(), EventMouseUp, raw)
	if len(log) != 1 || log[0] != "inner:onMouseUp" {
		t.Errorf("log = %v, want [inner:onMouseUp]", log)
	}
}

func TestNoClickAcrossTargets(t *testing.T) {
	s, outer, inner := testTree(t)

	var clicks []string
	handlerLog(t, inner, EventClick, "inner", &clicks)
	handlerLog(t, outer, EventClick, "outer", &clicks)

	r := NewRouter(s)
	raw := &RawEvent{Bubbles: true}
	r.DispatchViewEvent(inner.ID(), EventMouseDown, raw)
	r.DispatchViewEvent(outer.ID(), EventMouseUp, raw)

	if len(clicks) != 0 {
		t.Errorf("clicks = %v, want none", clicks)
	}
	// The unpaired press stays recorded.
	if s.PressTarget() != inner.ID() {
		t.Errorf("press target = %q, want %q", s.PressTarget(), inner.ID())
	}
}

func TestMouseEventWrapping(t *testing.T) {
	s, _, inner := testTree(t)

	var got *MouseEvent
	if err := inner.SetProperty(EventMouseDown, func(ev *MouseEvent) { got = ev }); err != nil {
		t.Fatal(err)
	}

	r := NewRouter(s)
	r.DispatchViewEvent(inner.ID(), EventMouseDown, &RawEvent{
		Bubbles: true,
		Target:  inner.ID(),
		X:       10, Y: 20, Button: 1,
	})

	if got == nil {
		t.Fatal("mouse handler not invoked")
	}
	if got.X != 10 || got.Y != 20 || got.Button != 1 {
		t.Errorf("coords = (%d,%d) button %d", got.X, got.Y, got.Button)
	}
	if got.Target != inner || got.TargetID != inner.ID() {
		t.Errorf("target resolution: node=%v id=%q", got.Target, got.TargetID)
	}
}

func TestKeyboardEventWrapping(t *testing.T) {
	s, _, inner := testTree(t)

	var got *KeyboardEvent
	if err := inner.SetProperty(EventKeyDown, func(ev *KeyboardEvent) { got = ev }); err != nil {
		t.Fatal(err)
	}

	r := NewRouter(s)
	r.DispatchViewEvent(inner.ID(), EventKeyDown, &RawEvent{Bubbles: true, Key: "a", Code: "KeyA"})

	if got == nil {
		t.Fatal("keyboard handler not invoked")
	}
	if got.Key != "a" || got.Code != "KeyA" {
		t.Errorf("key = %q code = %q", got.Key, got.Code)
	}
}

func TestOtherEventsPassThroughUnwrapped(t *testing.T) {
	s, _, inner := testTree(t)

	var got *Event
	if err := inner.SetProperty("onLayout", func(ev *Event) { got = ev }); err != nil {
		t.Fatal(err)
	}

	raw := &RawEvent{Bubbles: true, Extra: map[string]any{"width": 320}}
	r := NewRouter(s)
	r.DispatchViewEvent(inner.ID(), "onLayout", raw)

	if got == nil {
		t.Fatal("handler not invoked")
	}
	if got.Raw != raw {
		t.Error("raw payload not passed through")
	}
}

func TestUnresolvedRelatedTargetKeepsIdentifier(t *testing.T) {
	s, _, inner := testTree(t)

	var got *MouseEvent
	if err := inner.SetProperty(EventMouseEnter, func(ev *MouseEvent) { got = ev }); err != nil {
		t.Fatal(err)
	}

	r := NewRouter(s)
	r.DispatchViewEvent(inner.ID(), EventMouseEnter, &RawEvent{
		Bubbles:       true,
		RelatedTarget: "stale-id",
	})

	if got == nil {
		t.Fatal("handler not invoked")
	}
	if got.RelatedTarget != nil {
		t.Error("stale related target resolved to a node")
	}
	if got.RelatedTargetID != "stale-id" {
		t.Errorf("RelatedTargetID = %q, want stale-id", got.RelatedTargetID)
	}
}

func TestNonCallableAndMismatchedHandlersAreSkipped(t *testing.T) {
	s, _, inner := testTree(t)

	if err := inner.SetProperty(EventClick, "not a function"); err != nil {
		t.Fatal(err)
	}
	r := NewRouter(s)
	r.DispatchViewEvent(inner.ID(), EventClick, &RawEvent{Bubbles: true})

	// A keyboard-typed handler never sees a mouse event.
	called := false
	if err := inner.SetProperty(EventClick, func(*KeyboardEvent) { called = true }); err != nil {
		t.Fatal(err)
	}
	r.DispatchViewEvent(inner.ID(), EventClick, &RawEvent{Bubbles: true})
	if called {
		t.Error("mismatched handler signature was invoked")
	}
}

func TestMiddlewareOrderAndDropVisibility(t *testing.T) {
	s, _, inner := testTree(t)

	var order []string
	mw := func(label string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, id, eventType string, raw *RawEvent) error {
				order = append(order, label)
				return next(ctx, id, eventType, raw)
			}
		}
	}

	var dropped int
	counter := func(next Handler) Handler {
		return func(ctx context.Context, id, eventType string, raw *RawEvent) error {
			err := next(ctx, id, eventType, raw)
			if errors.Is(err, ErrUnknownTarget) {
				dropped++
			}
			return err
		}
	}

	r := NewRouter(s, WithMiddleware(mw("first"), mw("second"), counter))

	r.DispatchViewEvent(inner.ID(), EventClick, &RawEvent{Bubbles: true})
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("order = %v", order)
	}

	r.DispatchViewEvent("ghost", EventClick, &RawEvent{Bubbles: true})
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
}

func TestDispatchWithNilRawEvent(t *testing.T) {
	s, _, inner := testTree(t)

	var got *MouseEvent
	if err := inner.SetProperty(EventMouseDown, func(ev *MouseEvent) { got = ev }); err != nil {
		t.Fatal(err)
	}
	r := NewRouter(s)
	r.DispatchViewEvent(inner.ID(), EventMouseDown, nil)

	if got == nil {
		t.Fatal("handler not invoked for nil raw event")
	}
	if got.ShouldBubble() {
		t.Error("nil raw event must not bubble")
	}
}
