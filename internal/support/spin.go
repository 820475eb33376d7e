// File: internal/support/spin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package support

import "runtime"

// Pause yields the current goroutine to the scheduler. Used by the
// ring's commit spin-wait while a predecessor publishes; grounded in
// the runtime.Gosched() backoff used throughout the corpus' lock-free
// queues (internal/concurrency/lock_free_queue.go, eventloop.go).
func Pause() {
	runtime.Gosched()
}
