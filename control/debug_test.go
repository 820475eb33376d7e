// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package control

import "testing"

func TestDebugProbesDumpState(t *testing.T) {
	dp := NewDebugProbes()
	dp.RegisterProbe("ring_depth", func() any { return 42 })
	dp.RegisterProbe("reactor_running", func() any { return true })

	state := dp.DumpState()
	if state["ring_depth"] != 42 {
		t.Errorf("state[ring_depth] = %v, want 42", state["ring_depth"])
	}
	if state["reactor_running"] != true {
		t.Errorf("state[reactor_running] = %v, want true", state["reactor_running"])
	}
}
