package style

import (
	"strconv"
	"strings"
)

// Edge indices into a Quad.
const (
	Top = iota
	Right
	Bottom
	Left
)

// Quad holds one value per edge, indexed Top, Right, Bottom, Left.
type Quad [4]string

// Uniform returns a Quad carrying v on all four edges.
func Uniform(v string) Quad {
	return Quad{v, v, v, v}
}

// BorderInfoKey is the canonical property key the full border state is
// transmitted under. Every border-namespace update collapses into exactly
// one property-set command with this key.
const BorderInfoKey = "border-info"

// BorderState is the four-edge border representation kept per container
// node and shipped to the native host as a single structured value.
type BorderState struct {
	Width  Quad
	Radius Quad
	Color  Quad
	Style  Quad
}

// DefaultBorderState returns the state every container node starts with:
// zero width, zero radius, no color, solid style on all four edges.
func DefaultBorderState() BorderState {
	return BorderState{
		Width:  Uniform("0"),
		Radius: Uniform("0"),
		Color:  Uniform(""),
		Style:  Uniform("solid"),
	}
}

// Native returns the host-facing representation of the border state.
func (s BorderState) Native() map[string]any {
	return map[string]any{
		"width":  s.Width.native(),
		"radius": s.Radius.native(),
		"color":  s.Color.native(),
		"style":  s.Style.native(),
	}
}

func (q Quad) native() []any {
	return []any{q[Top], q[Right], q[Bottom], q[Left]}
}

// borderStyles is the set of recognized border-style keywords. A style
// slot holding anything else is rejected, never coerced.
var borderStyles = map[string]struct{}{
	"dotted": {},
	"dashed": {},
	"solid":  {},
}

// IsBorderStyle reports whether tok is a recognized border-style keyword.
func IsBorderStyle(tok string) bool {
	_, ok := borderStyles[tok]
	return ok
}

// ParseSides expands a side-property value into a Quad. Numeric values
// broadcast to all four edges. String values split on whitespace into 1-4
// tokens distributed per CSS shorthand rules:
//
//	1 token:  all edges
//	2 tokens: top/bottom = first, right/left = second
//	3 tokens: top = first, right/left = second, bottom = third
//	4 tokens: top, right, bottom, left in order
//
// Any other token count, or a value that is neither string nor number,
// fails with a ValidationError.
func ParseSides(value any) (Quad, error) {
	return parseSidesKeyed("", value)
}

func parseSidesKeyed(key string, value any) (Quad, error) {
	s, ok := formatScalar(value)
	if !ok {
		return Quad{}, errValidation(key, value, "expected a string or a number")
	}
	if _, isStr := value.(string); !isStr {
		// Numbers carry a single token by construction.
		return Uniform(s), nil
	}

	tokens := strings.Fields(s)
	switch len(tokens) {
	case 1:
		return Uniform(tokens[0]), nil
	case 2:
		return Quad{tokens[0], tokens[1], tokens[0], tokens[1]}, nil
	case 3:
		return Quad{tokens[0], tokens[1], tokens[2], tokens[1]}, nil
	case 4:
		return Quad{tokens[0], tokens[1], tokens[2], tokens[3]}, nil
	default:
		return Quad{}, errValidation(key, value, "expected 1-4 whitespace-separated tokens")
	}
}

// ApplyShorthand merges a combined border shorthand ("1px solid red") into
// state and returns the result. Tokens are classified, not positional: a
// recognized style keyword sets all four style edges, a token starting
// with a digit, sign, or decimal point sets all four width edges, and any
// other token sets all four color edges. Later tokens of the same class
// overwrite earlier ones. Token counts outside 1-3 fail with a
// ValidationError.
func ApplyShorthand(state BorderState, value string) (BorderState, error) {
	tokens := strings.Fields(value)
	if len(tokens) < 1 || len(tokens) > 3 {
		return BorderState{}, errValidation("border", value, "expected 1-3 whitespace-separated tokens")
	}
	for _, tok := range tokens {
		switch {
		case IsBorderStyle(tok):
			state.Style = Uniform(tok)
		case isNumericStart(tok):
			state.Width = Uniform(tok)
		default:
			state.Color = Uniform(tok)
		}
	}
	return state, nil
}

// ValidateStyles checks that every style slot holds a recognized keyword.
func ValidateStyles(state BorderState) error {
	for _, tok := range state.Style {
		if !IsBorderStyle(tok) {
			return errValidation("border-style", tok, "unrecognized border style keyword")
		}
	}
	return nil
}

// ApplyBorderProperty routes a border-namespace key to the matching border
// model form and returns the updated state. Recognized forms:
//
//	border                                   combined shorthand
//	border-{width,style,color,radius}        per-side shorthand (1-4 tokens)
//	border-{edge}-{width,style,color,radius} single slot
//
// The returned state has passed style validation; on error the input
// state should be considered unchanged by callers.
func ApplyBorderProperty(state BorderState, key string, value any) (BorderState, error) {
	next := state

	switch {
	case key == "border":
		s, ok := value.(string)
		if !ok {
			return BorderState{}, errValidation(key, value, "expected a string")
		}
		var err error
		next, err = ApplyShorthand(next, s)
		if err != nil {
			return BorderState{}, err
		}

	case key == "border-width" || key == "border-style" || key == "border-color" || key == "border-radius":
		q, err := parseSidesKeyed(key, value)
		if err != nil {
			return BorderState{}, err
		}
		*next.field(key[len("border-"):]) = q

	default:
		field, edge, ok := splitBorderKey(key)
		if !ok {
			return BorderState{}, errValidation(key, value, "unrecognized border property")
		}
		s, isScalar := formatScalar(value)
		if !isScalar {
			return BorderState{}, errValidation(key, value, "expected a string or a number")
		}
		next.field(field)[edge] = s
	}

	if err := ValidateStyles(next); err != nil {
		return BorderState{}, err
	}
	return next, nil
}

// field returns the quad for a border field name ("width", "style",
// "color", "radius"). Callers pass only validated names.
func (s *BorderState) field(name string) *Quad {
	switch name {
	case "width":
		return &s.Width
	case "radius":
		return &s.Radius
	case "color":
		return &s.Color
	default:
		return &s.Style
	}
}

// splitBorderKey parses a single-slot key like "border-top-width" into its
// field name and edge index.
func splitBorderKey(key string) (field string, edge int, ok bool) {
	rest, found := strings.CutPrefix(key, "border-")
	if !found {
		return "", 0, false
	}
	edgeName, field, found := strings.Cut(rest, "-")
	if !found {
		return "", 0, false
	}
	switch edgeName {
	case "top":
		edge = Top
	case "right":
		edge = Right
	case "bottom":
		edge = Bottom
	case "left":
		edge = Left
	default:
		return "", 0, false
	}
	switch field {
	case "width", "style", "color", "radius":
		return field, edge, true
	default:
		return "", 0, false
	}
}

// isNumericStart reports whether a shorthand token is classified as a
// width: first character is a digit, sign, or decimal point.
func isNumericStart(tok string) bool {
	if tok == "" {
		return false
	}
	c := tok[0]
	return (c >= '0' && c <= '9') || c == '+' || c == '-' || c == '.'
}

// formatScalar renders a string or numeric value as its token form.
func formatScalar(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}
