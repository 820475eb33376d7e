// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Reactor composes one or more Aggregators behind a single stop flag
// and drives them in a tight loop until stopped. Ported from
// original_source/utils/include/Reactor.hxx, which achieves the same
// composition via C++ variadic template inheritance over Aggregators
// and polls them with CollectEvents in an unconditional while loop
// gated by an atomic<bool>; Go has no equivalent to mixin inheritance
// so composition here is a plain slice instead.

package reactor

import (
	"sync/atomic"

	"github.com/relayworks/ringreactor/api"
)

// Reactor drives a fixed set of Aggregators from Run until Stop is
// called. A Reactor with zero Aggregators is valid but does no work.
type Reactor struct {
	aggregators []*Aggregator
	stop        atomic.Bool
}

// NewReactor composes a Reactor over the given Aggregators. Ownership
// of each Aggregator (including Close) stays with the caller.
func NewReactor(aggregators ...*Aggregator) *Reactor {
	return &Reactor{aggregators: aggregators}
}

// Run polls every composed Aggregator once per iteration in a tight
// loop until Stop is called. It is the caller's responsibility to run
// Run on a dedicated goroutine; Run blocks until stopped. A PollOnce
// failure on any one Aggregator is fatal to the loop and is returned as
// an *api.Error with code ErrCodePollFailure whose context carries the
// failing Aggregator's index and the cause's message; the cause itself
// is not wrapped, so errors.Is does not reach it. The remaining
// Aggregators are left registered and open.
func (r *Reactor) Run() error {
	for !r.stop.Load() {
		for i, agg := range r.aggregators {
			if err := agg.PollOnce(); err != nil {
				return api.NewError(api.ErrCodePollFailure, "reactor: aggregator poll failed").
					WithContext("aggregator_index", i).
					WithContext("cause", err.Error())
			}
		}
	}
	return nil
}

// Stop signals Run to return after its current iteration. Stop may be
// called before Run, in which case Run returns immediately without
// polling. Stop is idempotent and safe to call from any goroutine,
// including concurrently with Run.
func (r *Reactor) Stop() {
	r.stop.Store(true)
}
