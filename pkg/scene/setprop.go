package scene

import "github.com/canopy-ui/canopy/pkg/style"

// RefKey is the reserved ref-binding property key. Setting it binds the
// node's capability handle instead of emitting a property-set command.
const RefKey = "ref"

// Handle is the capability surface bound through the ref property. It
// replaces ambient property interception with a fixed contract: read
// mirrored properties, or invoke a native method by name.
type Handle interface {
	// ID returns the host-assigned identifier.
	ID() string

	// Prop looks up a mirrored property by canonical key.
	Prop(key string) (any, bool)

	// Invoke forwards a method call to the native instance.
	Invoke(method string, args ...any) (any, error)
}

// RefFunc receives the node's capability handle when the ref property is
// bound.
type RefFunc func(Handle)

// SetProperty runs one property write through the normalization pipeline:
// camel-case aliases are canonicalized, color values pass through the
// injected color collaborators, and the key dispatches to the ref
// binding, a macro expansion, the border model, or a plain property-set
// command. The value is always merged into the node's property map first,
// even when dispatch below fails.
//
// Validation errors (malformed border shorthand, unrecognized style
// keyword, wrong value type) abort the call and leave the border state
// unchanged.
func (n *Node) SetProperty(key string, value any) error {
	if n.kind != KindContainer {
		return ErrNotContainer
	}

	key = style.CanonicalKey(key)

	// transmit may diverge from the stored value when a gradient gains a
	// structured native representation.
	transmit := value
	if style.IsColorKey(key) {
		if raw, ok := value.(string); ok && n.session.colors != nil {
			normalized := n.session.colors(raw)
			value = normalized
			transmit = normalized
			if style.IsGradient(normalized) && n.session.gradients != nil {
				if native, ok := n.session.gradients(normalized); ok {
					transmit = native
				}
			}
		}
	}

	n.props[key] = value

	switch {
	case key == RefKey:
		if bind, ok := value.(RefFunc); ok {
			bind(n)
		} else if bind, ok := value.(func(Handle)); ok {
			bind(n)
		}
		return nil

	case n.session.macros[key] != nil:
		props, err := n.session.macros[key](value)
		if err != nil {
			return err
		}
		for _, p := range props {
			if err := n.session.host.SetProperty(n.id, p.Key, p.Value); err != nil {
				return err
			}
		}
		return nil

	case style.IsBorderKey(key):
		next, err := style.ApplyBorderProperty(n.border, key, value)
		if err != nil {
			return err
		}
		n.border = next
		return n.session.host.SetProperty(n.id, style.BorderInfoKey, next.Native())

	default:
		return n.session.host.SetProperty(n.id, key, transmit)
	}
}
