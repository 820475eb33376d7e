// File: ring/ring.go
// Package ring implements a bounded, multi-producer/multi-consumer
// lock-free FIFO over a power-of-two sized slot array.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The queue exposes slots in place via a reserve/commit protocol driven
// by four monotonically increasing 64-bit counters (writeReserve,
// writeCommit, readReserve, readCommit). Reservation is lock-free but
// not wait-free (bounded CAS retries); commit is ordered on the
// reserving sequence number and spins on its immediate predecessor.
package ring

import (
	"sync/atomic"

	"github.com/relayworks/ringreactor/api"
	"github.com/relayworks/ringreactor/control"
	"github.com/relayworks/ringreactor/internal/support"
)

// ringCapacityKey is the ConfigStore key NewFromConfig reads to size the
// ring, matching the tunable SPEC_FULL.md §2.1 documents.
const ringCapacityKey = "ring_capacity"

// pad separates hot atomic counters onto their own cache lines, matching
// the false-sharing avoidance convention used throughout the corpus'
// lock-free ring implementations.
type pad [64]byte

// Slot is one element of the ring's backing array. Seq is stamped by the
// queue at reservation time and drives commit ordering; Payload is the
// user-owned region the queue never interprets or allocates for.
type Slot[T any] struct {
	Seq     uint64
	Payload T
}

// Ring is a bounded MPMC FIFO. The zero value (which is what New
// returns) is uninitialized: call Init exactly once before any
// Reserve/Commit call.
type Ring[T any] struct {
	capacity atomic.Uint64 // 0 means uninitialized
	mask     uint64

	_            pad
	writeReserve atomic.Uint64
	_            pad
	writeCommit atomic.Uint64
	_           pad
	readReserve atomic.Uint64
	_           pad
	readCommit atomic.Uint64
	_          pad

	slots []Slot[T]

	metrics *control.MetricsRegistry
	debug   api.Debug
}

// SetMetrics attaches a metrics registry that ReserveWrite/CommitWrite/
// ReserveRead/CommitRead report to. Passing nil (the default) disables
// reporting; attaching is not itself synchronized with concurrent
// Reserve/Commit calls and should happen before the ring is shared.
func (r *Ring[T]) SetMetrics(m *control.MetricsRegistry) {
	r.metrics = m
}

// SetDebug attaches a debug-probe sink that Init registers a "ring_init"
// probe against. Passing nil (the default) disables probe registration;
// attaching must happen before Init to be observed.
func (r *Ring[T]) SetDebug(d api.Debug) {
	r.debug = d
}

// New returns a Ring ready to be Init'd. Construction is split from
// initialization so that Init's capacity can be decided once, by exactly
// one caller, the way spec §3.1/§4.1 requires.
func New[T any]() *Ring[T] {
	return &Ring[T]{}
}

// NewFromConfig builds a Ring and immediately Inits it with the capacity
// found under the "ring_capacity" key of cs's snapshot, falling back to
// fallbackCapacity when the key is absent or not an int. If cs also
// carries a debug sink (cs.Debug()), it is attached before Init so the
// "ring_init" probe is registered.
func NewFromConfig[T any](cs *control.ConfigStore, fallbackCapacity int) *Ring[T] {
	capacity := fallbackCapacity
	if v, ok := cs.GetConfig()[ringCapacityKey]; ok {
		if n, ok := v.(int); ok {
			capacity = n
		}
	}
	r := New[T]()
	r.SetDebug(cs.Debug())
	r.Init(capacity)
	return r
}

// Init rounds suggestedCapacity up to the next power of two (minimum 1)
// and sizes the slot array. Returns false if the ring was already
// initialized; Init must be externally serialized with all other
// operations and is expected to be called exactly once. On success, if a
// debug sink was attached via SetDebug, Init registers a "ring_init"
// probe reporting the ring's capacity and initialized state.
func (r *Ring[T]) Init(suggestedCapacity int) bool {
	actual := support.NextPowerOfTwo(uint64(suggestedCapacity))
	if !r.capacity.CompareAndSwap(0, actual) {
		return false
	}
	r.mask = actual - 1
	r.slots = make([]Slot[T], actual)
	if r.debug != nil {
		r.debug.RegisterProbe("ring_init", func() any {
			return map[string]any{
				"capacity":    r.Capacity(),
				"initialized": true,
			}
		})
	}
	return true
}

// Capacity returns the rounded capacity, or 0 if not yet initialized.
func (r *Ring[T]) Capacity() uint64 {
	return r.capacity.Load()
}

// Size returns writeCommit-readCommit, a lower bound on the number of
// messages currently visible to readers; by the time the caller acts on
// it the real count may be larger.
func (r *Ring[T]) Size() uint64 {
	return r.writeCommit.Load() - r.readCommit.Load()
}

// ReserveWrite claims the next free slot for a producer. It never
// blocks: it returns (nil, false) if the ring appears full to this
// thread. The caller must fill Payload and pass the returned slot back
// to CommitWrite.
func (r *Ring[T]) ReserveWrite() (*Slot[T], bool) {
	writeSnapshot := r.writeReserve.Load()
	readSnapshot := r.readCommit.Load()

	if r.isFull(writeSnapshot, readSnapshot) {
		if r.metrics != nil {
			r.metrics.IncRingDropped()
		}
		return nil, false
	}

	for !r.writeReserve.CompareAndSwap(writeSnapshot, writeSnapshot+1) {
		writeSnapshot = r.writeReserve.Load()
		// Intentionally stale readSnapshot: re-reading it here would add
		// contention and let a slow thread livelock while counters move.
		if r.isFull(writeSnapshot, readSnapshot) {
			if r.metrics != nil {
				r.metrics.IncRingDropped()
			}
			return nil, false
		}
	}

	slot := &r.slots[writeSnapshot&r.mask]
	slot.Seq = writeSnapshot
	return slot, true
}

// CommitWrite publishes a slot previously returned by ReserveWrite on
// this goroutine, making it visible to consumers. Commits happen in
// reservation order: a committer with a higher seq spins until its
// predecessor has published.
func (r *Ring[T]) CommitWrite(slot *Slot[T]) {
	for r.writeCommit.Load() < slot.Seq {
		support.Pause()
	}
	r.writeCommit.Add(1)
	if r.metrics != nil {
		r.metrics.IncRingEnqueued()
		r.metrics.SetRingDepth(r.Size())
	}
}

// ReserveRead claims the next committed slot for a consumer. It never
// blocks: it returns (nil, false) if the ring appears empty to this
// thread.
func (r *Ring[T]) ReserveRead() (*Slot[T], bool) {
	writeSnapshot := r.writeCommit.Load()
	readSnapshot := r.readReserve.Load()

	if r.isEmpty(writeSnapshot, readSnapshot) {
		return nil, false
	}

	for !r.readReserve.CompareAndSwap(readSnapshot, readSnapshot+1) {
		readSnapshot = r.readReserve.Load()
		if r.isEmpty(writeSnapshot, readSnapshot) {
			return nil, false
		}
	}

	return &r.slots[readSnapshot&r.mask], true
}

// CommitRead releases a slot previously returned by ReserveRead back to
// producers, mirroring CommitWrite.
func (r *Ring[T]) CommitRead(slot *Slot[T]) {
	for r.readCommit.Load() < slot.Seq {
		support.Pause()
	}
	r.readCommit.Add(1)
	if r.metrics != nil {
		r.metrics.IncRingDequeued()
		r.metrics.SetRingDepth(r.Size())
	}
}

// isFull reports whether writeCtr-readCtr has reached capacity. ">="
// rather than "==" because the two snapshots may not have been taken at
// the same instant under contention.
func (r *Ring[T]) isFull(writeCtr, readCtr uint64) bool {
	return writeCtr-readCtr >= r.capacity.Load()
}

// isEmpty reports whether no committed writes remain unread, under the
// same stale-snapshot tolerance as isFull.
func (r *Ring[T]) isEmpty(writeCtr, readCtr uint64) bool {
	return readCtr >= writeCtr
}
