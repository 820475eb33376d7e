// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides a single-threaded, epoll-backed I/O reactor:
// Aggregator owns one kernel readiness set and a map of registered
// handlers, and Reactor composes one or more Aggregators under a
// single run/stop loop. Non-Linux platforms build against a stub
// backend that fails every call with api.ErrNotSupported.
package reactor
