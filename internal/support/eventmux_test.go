// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package support

import "testing"

func TestEventMuxNotifiesAllConnected(t *testing.T) {
	mux := NewEventMux[int]()

	var a, b int
	mux.Connect(func(v int) { a = v })
	mux.Connect(func(v int) { b = v })

	mux.Notify(7)

	if a != 7 || b != 7 {
		t.Errorf("a=%d b=%d, want both 7", a, b)
	}
}

func TestEventMuxDisconnectStopsNotifications(t *testing.T) {
	mux := NewEventMux[int]()

	calls := 0
	key := mux.Connect(func(v int) { calls++ })
	mux.Notify(1)
	mux.Disconnect(key)
	mux.Notify(2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestEventMuxNotifyToleratesReentrantConnect(t *testing.T) {
	mux := NewEventMux[int]()

	var secondCalls int
	mux.Connect(func(v int) {
		mux.Connect(func(v int) { secondCalls++ })
	})

	mux.Notify(1)
	mux.Notify(2)

	if secondCalls != 1 {
		t.Errorf("secondCalls = %d, want 1 (connected during first Notify, fires on second)", secondCalls)
	}
}
