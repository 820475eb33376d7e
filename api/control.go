// File: api/control.go
// Package api defines Control interface.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Control manages a deployment's dynamic configuration: ring capacity,
// reactor scratch-array size, and other tunables. ring.NewFromConfig and
// reactor.NewFromConfig read these once, at construction; a later
// SetConfig does not change an already-built Ring or Aggregator.
type Control interface {
	GetConfig() map[string]any
	SetConfig(cfg map[string]any) error
	OnReload(fn func())
	RegisterDebugProbe(name string, fn func() any)
}
