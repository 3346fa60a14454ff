package dispatch

import "github.com/canopy-ui/canopy/pkg/scene"

// Event type keys. Handlers are stored in node property maps under these
// keys, so the wire event type doubles as the handler lookup key.
const (
	EventMouseDown  = "onMouseDown"
	EventMouseUp    = "onMouseUp"
	EventClick      = "onClick"
	EventDblClick   = "onDblClick"
	EventMouseMove  = "onMouseMove"
	EventMouseEnter = "onMouseEnter"
	EventMouseLeave = "onMouseLeave"
	EventMouseOver  = "onMouseOver"
	EventMouseOut   = "onMouseOut"

	EventKeyDown  = "onKeyDown"
	EventKeyUp    = "onKeyUp"
	EventKeyPress = "onKeyPress"
)

var mouseEvents = map[string]struct{}{
	EventMouseDown: {}, EventMouseUp: {}, EventClick: {}, EventDblClick: {},
	EventMouseMove: {}, EventMouseEnter: {}, EventMouseLeave: {},
	EventMouseOver: {}, EventMouseOut: {},
}

var keyboardEvents = map[string]struct{}{
	EventKeyDown: {}, EventKeyUp: {}, EventKeyPress: {},
}

// IsMouseEvent reports whether eventType belongs to the mouse family.
func IsMouseEvent(eventType string) bool {
	_, ok := mouseEvents[eventType]
	return ok
}

// IsKeyboardEvent reports whether eventType belongs to the keyboard
// family.
func IsKeyboardEvent(eventType string) bool {
	_, ok := keyboardEvents[eventType]
	return ok
}

// RawEvent is the event payload as delivered by the native host. Target
// and RelatedTarget carry raw host identifiers; the router resolves them
// best-effort against the session registry.
type RawEvent struct {
	Target        string
	RelatedTarget string
	Bubbles       bool

	// Mouse fields.
	X, Y   int
	Button int

	// Keyboard fields.
	Key  string
	Code string

	// Extra carries host-specific fields outside the typed set.
	Extra map[string]any
}

// SyntheticEvent is the typed event passed to handlers during bubbling.
type SyntheticEvent interface {
	// EventType returns the event type key ("onClick").
	EventType() string

	// ShouldBubble reports whether propagation continues past the target.
	ShouldBubble() bool
}

// Event is the base synthetic event. Event families without a dedicated
// wrapper are dispatched as *Event with the raw payload attached.
type Event struct {
	Type    string
	Bubbles bool

	// Target is the resolved node for the raw target identifier, nil when
	// the identifier was not found in the registry. The raw identifier is
	// kept either way.
	Target   *scene.Node
	TargetID string

	// RelatedTarget mirrors Target for the raw related-target identifier.
	RelatedTarget   *scene.Node
	RelatedTargetID string

	Raw *RawEvent
}

// EventType implements SyntheticEvent.
func (e *Event) EventType() string { return e.Type }

// ShouldBubble implements SyntheticEvent.
func (e *Event) ShouldBubble() bool { return e.Bubbles }

// MouseEvent is the synthetic event for the mouse family, including
// synthesized clicks.
type MouseEvent struct {
	Event
	X, Y   int
	Button int
}

// KeyboardEvent is the synthetic event for the keyboard family.
type KeyboardEvent struct {
	Event
	Key  string
	Code string
}
