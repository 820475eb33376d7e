// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store with dynamic update and hot-reload
// propagation. Doubles as the api.Control implementation: it owns the
// deployment's tunables (ring capacity, reactor scratch-array size)
// and a DebugProbes registry for probe registration, since the teacher's
// own Control adapter grouped config and debug-probe registration
// behind one contract.

package control

import (
	"fmt"
	"sync"

	"github.com/relayworks/ringreactor/api"
)

// ConfigStore is a dynamic key/value map with atomic snapshot and
// listener support, plus the debug-probe registry api.Control requires.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
	debug     *DebugProbes
}

var _ api.Control = (*ConfigStore)(nil)

// NewConfigStore initializes a new config store with empty data.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config:    make(map[string]any),
		listeners: make([]func(), 0),
		debug:     NewDebugProbes(),
	}
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	copy := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		copy[k] = v
	}
	return copy
}

// GetConfig satisfies api.Control; it is GetSnapshot under the name the
// interface requires.
func (cs *ConfigStore) GetConfig() map[string]any {
	return cs.GetSnapshot()
}

// SetConfig merges new values and dispatches reload if needed. Returns
// an error if newCfg is nil, satisfying api.Control's error return.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) error {
	if newCfg == nil {
		return fmt.Errorf("%w: SetConfig called with nil config", api.ErrInvalidArgument)
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for k, v := range newCfg {
		cs.config[k] = v
	}
	cs.dispatchReload()
	return nil
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}

// RegisterDebugProbe delegates to the store's DebugProbes registry,
// satisfying api.Control.
func (cs *ConfigStore) RegisterDebugProbe(name string, fn func() any) {
	cs.debug.RegisterProbe(name, fn)
}

// Debug returns the store's DebugProbes registry, for callers that want
// to pass it onward as an api.Debug (e.g. Ring.SetDebug).
func (cs *ConfigStore) Debug() *DebugProbes {
	return cs.debug
}

// dispatchReload invokes all listeners.
func (cs *ConfigStore) dispatchReload() {
	for _, fn := range cs.listeners {
		go fn()
	}
}
