// Package host defines the command surface of the native rendering host.
//
// The host is an opaque collaborator: the mirror issues a fixed set of
// fire-and-forget commands against it and receives identifiers back from
// the creation calls. Implementations include the in-process fake in
// pkg/hosttest and the websocket-backed RemoteHost in pkg/bridge.
package host

// Host is the fixed command set of the native rendering host. All calls
// are synchronous from the mirror's point of view; errors surface
// transport or contract failures and are propagated by the mirror.
type Host interface {
	// CreateContainerInstance allocates a native container of the given
	// type tag and returns its host-assigned identifier.
	CreateContainerInstance(typ string) (string, error)

	// CreateTextInstance allocates a native text node and returns its
	// host-assigned identifier.
	CreateTextInstance(text string) (string, error)

	// InsertChild places childID under parentID at index. Index -1 means
	// append at the end.
	InsertChild(parentID, childID string, index int) error

	// RemoveChild detaches childID from parentID.
	RemoveChild(parentID, childID string) error

	// SetProperty sets one property on an instance.
	SetProperty(id, key string, value any) error

	// SetTextValue replaces the text payload of a text instance.
	SetTextValue(id, text string) error

	// InvokeInstanceMethod calls a named method on an instance and
	// returns its result.
	InvokeInstanceMethod(id, method string, args ...any) (any, error)

	// RootInstanceID returns the identifier of the host's root instance.
	RootInstanceID() (string, error)

	// FinalizeCommit flushes a completed mutation batch.
	FinalizeCommit() error
}
