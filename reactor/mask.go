// File: reactor/mask.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

// EventMask is a bitmask of readiness conditions a caller registers
// interest in, and the conditions an aggregator reports back. Flags are
// passed through to the kernel as-is; the aggregator only inspects
// EventError, EventPeerClosed and EventReadable when deciding how to
// dispatch.
type EventMask uint32

const (
	// EventReadable means the fd has data available to read.
	EventReadable EventMask = 1 << iota
	// EventError means the fd reported an error condition.
	EventError
	// EventPeerClosed means the peer half-closed the connection.
	EventPeerClosed
	// EventEdgeTriggered requests edge- rather than level-triggered
	// notification from the kernel.
	EventEdgeTriggered
)
