// Package bridge runs a scene-graph mirror against a remote native
// host over a websocket connection.
//
// RemoteHost implements host.Host by shipping protocol commands to the
// peer. Instance identifiers are allocated on the mirror side, so every
// command except InvokeInstanceMethod is fire-and-forget; invokes block
// on an ack frame carrying the result. Conn owns the websocket: a
// single write mutex serializes outbound frames and a read loop feeds
// inbound events to the dispatch router and acks back to the host.
// Server upgrades HTTP requests and wires a fresh session, host, and
// router per connection.
//
// Event handlers run on the connection's read goroutine. A handler that
// needs InvokeInstanceMethod must call it from another goroutine: the
// ack resolving the invoke arrives on the read goroutine the handler is
// blocking.
package bridge
