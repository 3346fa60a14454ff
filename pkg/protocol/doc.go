// Package protocol implements the binary wire format between the
// scene-graph mirror and a remote native rendering host.
//
// The mirror ships instructions to the host as Command payloads
// (create, insert, remove, set-property, set-text, invoke, finalize)
// and the host delivers input as ViewEvent payloads. Both directions
// travel in framed messages over a message-oriented transport
// (websocket in pkg/bridge).
//
// Encoding is varint-based and schema-less: strings are
// length-prefixed, signed integers zigzag-encoded, and arbitrary
// property values carried by a small tagged value codec (null, bool,
// int, float, string, array, object). Decoders enforce allocation and
// nesting limits so a hostile peer cannot force large allocations.
package protocol
