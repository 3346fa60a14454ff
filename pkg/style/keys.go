package style

import "strings"

// hyphenatedNames is the canonical property set understood by the native
// host. Camel-cased aliases are derived from this list at init.
var hyphenatedNames = []string{
	"align-items",
	"align-self",
	"background-color",
	"background-image",
	"border",
	"border-color",
	"border-radius",
	"border-style",
	"border-width",
	"border-top-color", "border-top-radius", "border-top-style", "border-top-width",
	"border-right-color", "border-right-radius", "border-right-style", "border-right-width",
	"border-bottom-color", "border-bottom-radius", "border-bottom-style", "border-bottom-width",
	"border-left-color", "border-left-radius", "border-left-style", "border-left-width",
	"flex-direction",
	"flex-wrap",
	"font-family",
	"font-size",
	"font-style",
	"font-weight",
	"justify-content",
	"letter-spacing",
	"line-height",
	"margin",
	"margin-top", "margin-right", "margin-bottom", "margin-left",
	"max-height",
	"max-width",
	"min-height",
	"min-width",
	"padding",
	"padding-top", "padding-right", "padding-bottom", "padding-left",
	"text-align",
	"text-decoration",
	"vertical-align",
	"z-index",
}

// camelAliases maps camel-cased aliases to their hyphenated canonical form.
var camelAliases = make(map[string]string, len(hyphenatedNames))

func init() {
	for _, name := range hyphenatedNames {
		alias := camelAlias(name)
		if alias != name {
			camelAliases[alias] = name
		}
	}
}

// camelAlias converts a hyphenated name to its camel-cased alias
// ("border-top-color" becomes "borderTopColor").
func camelAlias(name string) string {
	parts := strings.Split(name, "-")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// CanonicalKey rewrites a camel-cased alias of a known hyphenated style
// name to the hyphenated form. Unknown keys pass through unchanged.
func CanonicalKey(key string) string {
	if canonical, ok := camelAliases[key]; ok {
		return canonical
	}
	return key
}

// IsBorderKey reports whether key belongs to the border property
// namespace and must be routed through the border model.
func IsBorderKey(key string) bool {
	return key == "border" || strings.HasPrefix(key, "border-")
}

// IsColorKey reports whether key carries a color value that must pass
// through color normalization before transmission.
func IsColorKey(key string) bool {
	return key == "color" || strings.HasSuffix(key, "-color")
}
