package style

// Prop is a single native property produced by a macro expansion.
type Prop struct {
	Key   string
	Value any
}

// Macro expands one incoming property into a sequence of native
// properties, each emitted as its own property-set command.
type Macro func(value any) ([]Prop, error)

// SideMacro builds a macro expanding a four-edge shorthand into one
// property per edge ("margin" into margin-top, margin-right,
// margin-bottom, margin-left).
func SideMacro(prefix string) Macro {
	return func(value any) ([]Prop, error) {
		q, err := parseSidesKeyed(prefix, value)
		if err != nil {
			return nil, err
		}
		return []Prop{
			{Key: prefix + "-top", Value: q[Top]},
			{Key: prefix + "-right", Value: q[Right]},
			{Key: prefix + "-bottom", Value: q[Bottom]},
			{Key: prefix + "-left", Value: q[Left]},
		}, nil
	}
}

// BuiltinMacros returns the macro table every session starts with.
func BuiltinMacros() map[string]Macro {
	return map[string]Macro{
		"margin":  SideMacro("margin"),
		"padding": SideMacro("padding"),
	}
}
