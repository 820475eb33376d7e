// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package ring

import (
	"sync"
	"testing"

	"github.com/relayworks/ringreactor/control"
)

func TestInitRoundsCapacityToPowerOfTwo(t *testing.T) {
	cases := []struct {
		suggested int
		want      uint64
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{5, 8},
		{100, 128},
	}

	for _, c := range cases {
		r := New[int]()
		if !r.Init(c.suggested) {
			t.Fatalf("Init(%d): expected first call to succeed", c.suggested)
		}
		if got := r.Capacity(); got != c.want {
			t.Errorf("Init(%d): capacity = %d, want %d", c.suggested, got, c.want)
		}
	}
}

func TestInitIsSingleUse(t *testing.T) {
	r := New[int]()
	if !r.Init(16) {
		t.Fatal("first Init should succeed")
	}
	if r.Init(32) {
		t.Fatal("second Init should fail")
	}
	if r.Capacity() != 16 {
		t.Errorf("capacity changed after rejected re-Init: got %d", r.Capacity())
	}
}

func TestFillThenDrainSingleThreaded(t *testing.T) {
	r := New[int]()
	r.Init(8)

	for i := 0; i < 8; i++ {
		slot, ok := r.ReserveWrite()
		if !ok {
			t.Fatalf("ReserveWrite failed at i=%d before ring is full", i)
		}
		slot.Payload = i
		r.CommitWrite(slot)
	}

	if _, ok := r.ReserveWrite(); ok {
		t.Fatal("ReserveWrite succeeded on a full ring")
	}

	for i := 0; i < 8; i++ {
		slot, ok := r.ReserveRead()
		if !ok {
			t.Fatalf("ReserveRead failed at i=%d before ring is empty", i)
		}
		if slot.Payload != i {
			t.Errorf("FIFO violated: read %d at position %d, want %d", slot.Payload, i, i)
		}
		r.CommitRead(slot)
	}

	if _, ok := r.ReserveRead(); ok {
		t.Fatal("ReserveRead succeeded on an empty ring")
	}
}

func TestSizeTracksCommittedDepth(t *testing.T) {
	r := New[int]()
	r.Init(4)

	if r.Size() != 0 {
		t.Fatalf("fresh ring size = %d, want 0", r.Size())
	}

	slot, _ := r.ReserveWrite()
	slot.Payload = 1
	r.CommitWrite(slot)

	if r.Size() != 1 {
		t.Fatalf("size after one commit = %d, want 1", r.Size())
	}

	slot, _ = r.ReserveRead()
	r.CommitRead(slot)

	if r.Size() != 0 {
		t.Fatalf("size after drain = %d, want 0", r.Size())
	}
}

func TestSetDebugRegistersRingInitProbe(t *testing.T) {
	cs := control.NewConfigStore()
	r := New[int]()
	r.SetDebug(cs.Debug())

	if !r.Init(10) {
		t.Fatal("Init should succeed")
	}

	state := cs.Debug().DumpState()
	probe, ok := state["ring_init"]
	if !ok {
		t.Fatal("ring_init probe was not registered by Init")
	}
	report, ok := probe.(map[string]any)
	if !ok {
		t.Fatalf("ring_init probe returned %T, want map[string]any", probe)
	}
	if report["capacity"] != r.Capacity() {
		t.Errorf("ring_init capacity = %v, want %d", report["capacity"], r.Capacity())
	}
	if report["initialized"] != true {
		t.Errorf("ring_init initialized = %v, want true", report["initialized"])
	}
}

func TestNewFromConfigUsesRingCapacityKey(t *testing.T) {
	cs := control.NewConfigStore()
	cs.SetConfig(map[string]any{"ring_capacity": 10})

	r := NewFromConfig[int](cs, 4)
	if got, want := r.Capacity(), uint64(16); got != want {
		t.Errorf("capacity = %d, want %d (next power of two above 10)", got, want)
	}

	if _, ok := cs.Debug().DumpState()["ring_init"]; !ok {
		t.Error("NewFromConfig did not wire the config store's debug sink into the ring")
	}
}

func TestNewFromConfigFallsBackWhenKeyAbsent(t *testing.T) {
	cs := control.NewConfigStore()

	r := NewFromConfig[int](cs, 4)
	if got, want := r.Capacity(), uint64(4); got != want {
		t.Errorf("capacity = %d, want fallback %d", got, want)
	}
}

// TestMPMCStress drives concurrent producers and consumers through the
// ring and checks that every payload written is read back exactly once,
// with no overwrite and no phantom reads, mirroring the concurrency
// scenario the corpus' own property-based ring test runs.
func TestMPMCStress(t *testing.T) {
	const (
		producers     = 2
		consumers     = 2
		perProducer   = 5000
		totalMessages = producers * perProducer
	)

	r := New[int]()
	r.Init(256)

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		base := p * perProducer
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				for {
					slot, ok := r.ReserveWrite()
					if ok {
						slot.Payload = base + i
						r.CommitWrite(slot)
						break
					}
				}
			}
		}(base)
	}

	seen := make([]int32, totalMessages)
	var seenMu sync.Mutex
	var seenCount int

	var cwg sync.WaitGroup
	cwg.Add(consumers)
	for c := 0; c < consumers; c++ {
		go func() {
			defer cwg.Done()
			for {
				seenMu.Lock()
				done := seenCount >= totalMessages
				seenMu.Unlock()
				if done {
					return
				}
				slot, ok := r.ReserveRead()
				if !ok {
					continue
				}
				v := slot.Payload
				r.CommitRead(slot)

				seenMu.Lock()
				seen[v]++
				seenCount++
				seenMu.Unlock()
			}
		}()
	}

	wg.Wait()
	cwg.Wait()

	for v, count := range seen {
		if count != 1 {
			t.Fatalf("payload %d observed %d times, want exactly 1", v, count)
		}
	}
}
