// File: internal/support/eventmux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// EventMux is the simple observer/event multiplexer keyed by integers
// spec.md places out of scope except as an external collaborator.
// Grounded in original_source's Event<Func> (Connect/Disconnect/Notify
// under a single mutex) and in the corpus' copy-before-invoke pattern
// for tolerating reentrant callbacks (internal/concurrency/eventloop.go
// stores its handler list in an atomic.Value and swaps it wholesale on
// register/unregister rather than invoking under lock).
package support

import "sync"

// EventMux is a thread-safe map from integer key to callback, with
// connect/disconnect/notify semantics.
type EventMux[V any] struct {
	mu        sync.Mutex
	nextKey   uint32
	callbacks map[uint32]func(V)
}

// NewEventMux returns an empty multiplexer.
func NewEventMux[V any]() *EventMux[V] {
	return &EventMux[V]{callbacks: make(map[uint32]func(V))}
}

// Connect registers fn and returns a key usable with Disconnect.
func (m *EventMux[V]) Connect(fn func(V)) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.nextKey
	m.nextKey++
	m.callbacks[k] = fn
	return k
}

// Disconnect removes a previously connected callback.
func (m *EventMux[V]) Disconnect(key uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.callbacks, key)
}

// Notify invokes every registered callback with value, in unspecified
// iteration order. The callback list is copied out from under the lock
// first, so a callback that calls back into Connect/Disconnect/Notify
// does not deadlock — a known hazard of this pattern, documented here
// rather than hidden.
func (m *EventMux[V]) Notify(value V) {
	m.mu.Lock()
	snapshot := make([]func(V), 0, len(m.callbacks))
	for _, fn := range m.callbacks {
		snapshot = append(snapshot, fn)
	}
	m.mu.Unlock()

	for _, fn := range snapshot {
		fn(value)
	}
}
