// File: reactor/aggregator.go
// Package reactor implements a single-threaded I/O reactor that
// multiplexes kernel readiness notifications (epoll-style) and
// dispatches them to per-fd handlers.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Grounded in the teacher's internal reactor/epoll_reactor.go dispatch
// loop (register/poll/dispatch/remove-on-error) and in
// original_source/utils/include/FdAggregator.hxx, the C++ class this
// package's Aggregator is a direct port of.
package reactor

import (
	"sync"

	"github.com/eapache/queue"
	"github.com/relayworks/ringreactor/api"
	"github.com/relayworks/ringreactor/control"
)

// DefaultScratchSize is the default size of the aggregator's per-poll
// readiness scratch array, matching spec.md §3.2's 1024 default.
const DefaultScratchSize = 1024

// reactorScratchSizeKey is the ConfigStore key NewFromConfig reads to
// size the aggregator's scratch array, matching the tunable
// SPEC_FULL.md §2.1 documents.
const reactorScratchSizeKey = "reactor_scratch_size"

// aggregatorBackend is the kernel-specific half of an Aggregator: it
// owns the actual readiness handle. Implementations live in
// aggregator_linux.go (epoll) and aggregator_other.go (unsupported
// stub), selected at New time by build tag.
type aggregatorBackend interface {
	addFd(fd uintptr, mask EventMask) error
	removeFd(fd uintptr) error
	wait(scratch []readinessRecord) (int, error)
	close() error
}

// readinessRecord is one ready-fd report filled in by wait.
type readinessRecord struct {
	fd   uintptr
	mask EventMask
}

// Aggregator owns one kernel readiness handle, a bounded scratch array
// of readiness records, and an in-process mapping from fd to the
// handler registered for it. The handler reference is weak (non-
// owning): Aggregator never closes a registered fd itself.
type Aggregator struct {
	backend aggregatorBackend

	mu       sync.Mutex
	handlers map[uintptr]api.FdHandler

	scratch []readinessRecord
	pending *queue.Queue // scratch FIFO of OnError and OnEvent dispatches, drained after the lock is released

	metrics *control.MetricsRegistry
}

// SetMetrics attaches a metrics registry that PollOnce reports poll and
// dispatch counts to. Passing nil (the default) disables reporting.
func (a *Aggregator) SetMetrics(m *control.MetricsRegistry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.metrics = m
}

// New creates an aggregator with an empty kernel readiness set and the
// default scratch size. Fails with api.ErrResourceExhausted if the
// underlying syscall fails.
func New() (*Aggregator, error) {
	return NewSize(DefaultScratchSize)
}

// NewFromConfig is New with the scratch array size taken from cs's
// snapshot under the "reactor_scratch_size" key, falling back to
// DefaultScratchSize when the key is absent or not an int.
func NewFromConfig(cs *control.ConfigStore) (*Aggregator, error) {
	scratchSize := DefaultScratchSize
	if v, ok := cs.GetConfig()[reactorScratchSizeKey]; ok {
		if n, ok := v.(int); ok {
			scratchSize = n
		}
	}
	return NewSize(scratchSize)
}

// NewSize is New with an explicit scratch array size.
func NewSize(scratchSize int) (*Aggregator, error) {
	backend, err := newBackend()
	if err != nil {
		return nil, err
	}
	return &Aggregator{
		backend:  backend,
		handlers: make(map[uintptr]api.FdHandler),
		scratch:  make([]readinessRecord, scratchSize),
		pending:  queue.New(),
	}, nil
}

// AddFd registers fd with the given event mask and associates it with
// handler. Returns false if fd is already present or the kernel add
// fails. handler must outlive the aggregator, or be explicitly removed
// via RemoveFd before it is destroyed.
func (a *Aggregator) AddFd(fd uintptr, mask EventMask, handler api.FdHandler) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.handlers[fd]; exists {
		return false
	}
	if err := a.backend.addFd(fd, mask); err != nil {
		return false
	}
	a.handlers[fd] = handler
	return true
}

// RemoveFd unregisters fd from the readiness set ahead of handler
// destruction. Safe to call even if fd was never added.
func (a *Aggregator) RemoveFd(fd uintptr) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.removeLocked(fd)
}

func (a *Aggregator) removeLocked(fd uintptr) {
	if _, ok := a.handlers[fd]; !ok {
		return
	}
	_ = a.backend.removeFd(fd)
	delete(a.handlers, fd)
}

// PollOnce polls the readiness set with a zero timeout (non-blocking).
// For each ready fd: if the mask carries an error-ish condition the fd
// is removed from the set and the handler's OnError is invoked; else if
// it carries readable, OnEvent is invoked. Dispatch order within one
// poll is whatever order the kernel returned records in — unspecified
// but total. A kernel wait failure is fatal and returned as
// api.ErrPollFailure; per-fd errors are never propagated to the caller.
func (a *Aggregator) PollOnce() error {
	n, err := a.backend.wait(a.scratch)
	if err != nil {
		return err
	}

	a.mu.Lock()
	if a.metrics != nil {
		a.metrics.IncReactorPolls()
	}
	for i := 0; i < n; i++ {
		rec := a.scratch[i]
		h, ok := a.handlers[rec.fd]
		if !ok {
			continue
		}
		if rec.mask&(EventError|EventPeerClosed) != 0 {
			a.removeLocked(rec.fd)
			a.pending.Add(h)
		} else if rec.mask&EventReadable != 0 {
			// Dispatched after the lock is released below, in arrival order.
			a.pending.Add(dispatchPair{h, rec.mask})
		}
	}
	metrics := a.metrics
	a.mu.Unlock()

	for a.pending.Length() > 0 {
		switch v := a.pending.Remove().(type) {
		case api.FdHandler:
			v.OnError()
			if metrics != nil {
				metrics.IncReactorErrors()
			}
		case dispatchPair:
			v.handler.OnEvent()
			if metrics != nil {
				metrics.IncReactorEvents()
			}
		}
	}
	return nil
}

// dispatchPair defers an OnEvent call until after the registration lock
// is released, so a handler that re-enters AddFd/RemoveFd from inside
// OnEvent cannot deadlock against PollOnce's own bookkeeping.
type dispatchPair struct {
	handler api.FdHandler
	mask    EventMask
}

// Close releases the aggregator's kernel readiness handle.
func (a *Aggregator) Close() error {
	return a.backend.close()
}
