package scene

import (
	"errors"

	"github.com/canopy-ui/canopy/pkg/style"
)

// Kind is the node variant discriminator.
type Kind uint8

const (
	KindContainer Kind = iota // owns children, carries properties
	KindText                  // leaf text payload
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "Container"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Kind-contract errors. Child and property operations are only valid on
// containers; SetText only on text nodes.
var (
	ErrNotContainer = errors.New("scene: operation requires a container node")
	ErrNotText      = errors.New("scene: operation requires a text node")
)

// Props holds node properties, last-write-wins. Event handlers live here
// too, stored under their event-type keys ("onClick").
type Props map[string]any

// Node is one mirrored view-tree node. The zero value is not usable;
// nodes are created through a Session.
type Node struct {
	kind     Kind
	id       string
	typ      string // container type tag
	parent   *Node  // weak back-reference, nil for the root
	children []*Node
	props    Props
	border   style.BorderState
	text     string // text variant payload
	session  *Session
}

// ID returns the host-assigned identifier.
func (n *Node) ID() string { return n.id }

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// Type returns the container type tag. Empty for text nodes.
func (n *Node) Type() string { return n.typ }

// Text returns the text payload. Empty for containers.
func (n *Node) Text() string { return n.text }

// Parent returns the parent container, or nil for the root and for nodes
// not yet attached.
func (n *Node) Parent() *Node { return n.parent }

// Border returns the current border state. Zero-valued for text nodes.
func (n *Node) Border() style.BorderState { return n.border }

// Prop looks up a property by canonical key.
func (n *Node) Prop(key string) (any, bool) {
	if n.props == nil {
		return nil, false
	}
	v, ok := n.props[key]
	return v, ok
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return len(n.children) }

// Children returns a copy of the direct child sequence.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// AppendChild attaches child at the tail and mirrors the insertion to the
// host with index -1 (append).
func (n *Node) AppendChild(child *Node) error {
	if n.kind != KindContainer {
		return ErrNotContainer
	}
	child.parent = n
	n.children = append(n.children, child)
	return n.session.host.InsertChild(n.id, child.id, -1)
}

// InsertChild splices child into position index and mirrors the insertion
// to the host. Index validity ([0, len]) is the caller's contract; the
// external diffing engine never issues out-of-range indices.
func (n *Node) InsertChild(child *Node, index int) error {
	if n.kind != KindContainer {
		return ErrNotContainer
	}
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	return n.session.host.InsertChild(n.id, child.id, index)
}

// RemoveChild detaches child if it is a direct child (identity, not value,
// comparison), drops its registry entry, and mirrors the removal to the
// host. Removing a non-child is a silent no-op.
func (n *Node) RemoveChild(child *Node) error {
	if n.kind != KindContainer {
		return ErrNotContainer
	}
	i := n.ChildIndex(child)
	if i < 0 {
		return nil
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	n.session.unregister(child.id)
	return n.session.host.RemoveChild(n.id, child.id)
}

// ChildIndex returns the position of child among the direct children by
// identity, or -1 if absent.
func (n *Node) ChildIndex(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Contains reports whether other is this node itself or is reachable
// through container children. Text nodes are terminal: they contain only
// themselves.
func (n *Node) Contains(other *Node) bool {
	if n == other {
		return true
	}
	switch n.kind {
	case KindText:
		return false
	case KindContainer:
		for _, c := range n.children {
			if c.Contains(other) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// SetText replaces the text payload and mirrors it to the host.
func (n *Node) SetText(text string) error {
	if n.kind != KindText {
		return ErrNotText
	}
	n.text = text
	return n.session.host.SetTextValue(n.id, text)
}

// Invoke calls a named method on the node's native instance. This is the
// capability surface bound through the ref property.
func (n *Node) Invoke(method string, args ...any) (any, error) {
	return n.session.host.InvokeInstanceMethod(n.id, method, args...)
}
