// Package scene maintains the host-side mirror of the native view tree.
//
// A Session owns one tree: it creates nodes through the native host's
// creation commands, keeps the authoritative id-to-node registry used to
// resolve inbound event targets, and caches the singleton root. Nodes are
// a tagged union over two variants, container and text; containers own
// their children exclusively and carry the property map and border state,
// text nodes carry only a payload.
//
// Structural mutations (append, insert, remove) mirror themselves to the
// host as insert/remove commands. Property writes go through the
// normalization pipeline in pkg/style before being transmitted.
//
// The package is single-threaded by contract: the external diffing engine
// and the host's event delivery never interleave within a call.
package scene
