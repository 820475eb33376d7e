// File: internal/support/joinguard.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// JoinGuard wraps a goroutine launched with go, guaranteeing it is
// either Joined (waited on) or Detached (abandoned) exactly once.
// Grounded in the stopCh/stopped lifecycle pattern used by the
// corpus' worker goroutines (internal/concurrency/executor.go's
// worker.run) and in spirit of original_source's ThreadRAII, which
// enforces join-or-detach at scope exit in C++ via the destructor.
package support

import "sync"

// JoinGuard runs fn on a new goroutine and tracks its completion.
type JoinGuard struct {
	wg       sync.WaitGroup
	resolved bool
}

// Go launches fn on a new goroutine.
func Go(fn func()) *JoinGuard {
	g := &JoinGuard{}
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		fn()
	}()
	return g
}

// Join blocks until fn returns. Panics if called more than once, or
// after Detach.
func (g *JoinGuard) Join() {
	if g.resolved {
		panic("support: JoinGuard already resolved")
	}
	g.resolved = true
	g.wg.Wait()
}

// Detach abandons the goroutine: fn is left to finish on its own.
// Panics if called more than once, or after Join.
func (g *JoinGuard) Detach() {
	if g.resolved {
		panic("support: JoinGuard already resolved")
	}
	g.resolved = true
}
