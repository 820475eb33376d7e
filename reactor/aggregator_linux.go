//go:build linux
// +build linux

// File: reactor/aggregator_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux epoll backend for Aggregator. Grounded in the teacher's
// reactor/epoll_reactor.go (EpollCreate1/EpollCtl/EpollWait usage) and
// original_source/utils/include/FdAggregator.hxx's AddFd/CollectEvents
// (MAX_EPOLL_EVENTS=1024, zero-timeout wait, error-bit detection via
// EPOLLERR|EPOLLHUP), ported to golang.org/x/sys/unix as the teacher's
// sibling reactor.go already does for its pull-based EventReactor.

package reactor

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/relayworks/ringreactor/api"
)

type epollBackend struct {
	epfd int
	raw  []unix.EpollEvent
}

func newBackend() (aggregatorBackend, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("%w: epoll_create1: %v", api.ErrResourceExhausted, err)
	}
	return &epollBackend{epfd: epfd}, nil
}

func toEpollEvents(mask EventMask) uint32 {
	var events uint32
	if mask&EventReadable != 0 {
		events |= unix.EPOLLIN
	}
	if mask&EventEdgeTriggered != 0 {
		events |= unix.EPOLLET
	}
	if mask&EventPeerClosed != 0 {
		events |= unix.EPOLLRDHUP
	}
	// EPOLLERR and EPOLLHUP are always reported by the kernel regardless
	// of the requested event bits, so EventError never needs to be
	// translated into the request mask.
	return events
}

func (b *epollBackend) addFd(fd uintptr, mask EventMask) error {
	ev := unix.EpollEvent{
		Events: toEpollEvents(mask),
		Fd:     int32(fd),
	}
	if err := unix.EpollCtl(b.epfd, unix.EPOLL_CTL_ADD, int(fd), &ev); err != nil {
		return fmt.Errorf("%w: epoll_ctl add: %v", api.ErrResourceExhausted, err)
	}
	return nil
}

func (b *epollBackend) removeFd(fd uintptr) error {
	if err := unix.EpollCtl(b.epfd, unix.EPOLL_CTL_DEL, int(fd), nil); err != nil {
		return fmt.Errorf("%w: epoll_ctl del: %v", api.ErrResourceExhausted, err)
	}
	return nil
}

// wait polls with a zero timeout, matching the original's non-blocking
// CollectEvents — the reactor loop, not the kernel, owns pacing.
func (b *epollBackend) wait(scratch []readinessRecord) (int, error) {
	if len(b.raw) != len(scratch) {
		b.raw = make([]unix.EpollEvent, len(scratch))
	}
	raw := b.raw
	n, err := unix.EpollWait(b.epfd, raw, 0)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: epoll_wait: %v", api.ErrPollFailure, err)
	}

	for i := 0; i < n; i++ {
		var mask EventMask
		events := raw[i].Events
		if events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
			mask |= EventError
		}
		if events&unix.EPOLLRDHUP != 0 {
			mask |= EventPeerClosed
		}
		if events&unix.EPOLLIN != 0 {
			mask |= EventReadable
		}
		scratch[i] = readinessRecord{fd: uintptr(raw[i].Fd), mask: mask}
	}
	return n, nil
}

func (b *epollBackend) close() error {
	return unix.Close(b.epfd)
}
