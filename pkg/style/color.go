package style

import "strings"

// ColorFunc normalizes a raw color term into the form the native host
// understands. Color string parsing is an external collaborator; the
// mirror only threads values through it.
type ColorFunc func(value string) string

// GradientFunc computes the structured native representation of a
// linear-gradient descriptor. The second return value reports whether the
// descriptor was recognized; unrecognized descriptors are transmitted as
// plain strings.
type GradientFunc func(value string) (any, bool)

// IsGradient reports whether a normalized color value is a linear-gradient
// descriptor that needs a structured native representation.
func IsGradient(value string) bool {
	return strings.HasPrefix(value, "linear-gradient(")
}
