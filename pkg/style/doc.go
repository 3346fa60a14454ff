// Package style implements the property normalization pipeline for the
// scene-graph mirror.
//
// The centerpiece is the border model: CSS-like border shorthand is
// expanded into four-edge records (top, right, bottom, left) that the
// native host consumes as a single structured "border-info" property.
// All border functions are pure: they take a BorderState by value and
// return a new one, leaving the caller to commit the result.
//
// The package also owns the canonical property-key table. Camel-cased
// aliases of known hyphenated style names (borderTopColor) are rewritten
// to their hyphenated form (border-top-color), and macro properties such
// as margin and padding expand into one native property per edge.
//
// Color and gradient parsing are deliberately not implemented here: the
// mirror treats them as injected pure-function collaborators (ColorFunc,
// GradientFunc).
package style
