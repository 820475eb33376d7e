//go:build !linux
// +build !linux

// File: reactor/aggregator_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Non-Linux platforms have no epoll-equivalent wired into this module
// (the teacher's iocp_reactor.go/reactor_windows.go cover the
// websocket-transport case this module does not carry forward — see
// the design ledger). newBackend fails closed rather than silently
// degrading to a polling loop.

package reactor

import "github.com/relayworks/ringreactor/api"

type stubBackend struct{}

func newBackend() (aggregatorBackend, error) {
	return nil, api.ErrNotSupported
}

func (stubBackend) addFd(fd uintptr, mask EventMask) error { return api.ErrNotSupported }
func (stubBackend) removeFd(fd uintptr) error              { return api.ErrNotSupported }
func (stubBackend) wait(scratch []readinessRecord) (int, error) {
	return 0, api.ErrNotSupported
}
func (stubBackend) close() error { return api.ErrNotSupported }
