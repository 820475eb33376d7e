// File: api/handler.go
// Package api defines FdHandler, the polymorphic entity reactor
// aggregators dispatch readiness notifications to.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// FdHandler is implemented by callers that want to be notified of
// readiness on a file descriptor. Ownership of the handler stays with
// the caller; the aggregator that registers it holds only a weak,
// non-owning reference and never closes Fd() itself.
type FdHandler interface {
	// Fd returns the file descriptor this handler was registered for.
	// Must remain stable for the life of the registration.
	Fd() uintptr

	// OnEvent is invoked when the descriptor is readable.
	OnEvent()

	// OnError is invoked when the descriptor reports an error or
	// peer-closed condition. The aggregator removes the descriptor from
	// its readiness set before calling OnError; the handler, not the
	// aggregator, is responsible for closing the fd.
	OnError()
}
