// control/store.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store with validated updates and reload listeners.

package control

import (
	"fmt"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// ConfigStore holds the active Config and notifies listeners on change.
type ConfigStore struct {
	mu        sync.RWMutex
	config    Config
	listeners []func(Config)
}

// NewConfigStore initializes a store with cfg, which must already be valid.
func NewConfigStore(cfg *Config) *ConfigStore {
	return &ConfigStore{config: *cfg}
}

// Snapshot returns a copy of the active configuration.
func (cs *ConfigStore) Snapshot() Config {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.config
}

// Update decodes overrides (keys as in the YAML file, e.g.
// {"logging": {"level": "debug"}}) on top of the active configuration,
// validates the result and swaps it in. Listeners run synchronously after
// the swap. On error the active configuration is unchanged.
func (cs *ConfigStore) Update(overrides map[string]any) error {
	cs.mu.Lock()
	next := cs.config
	if err := decodeOverrides(overrides, &next); err != nil {
		cs.mu.Unlock()
		return err
	}
	ApplyDefaults(&next)
	if err := Validate(&next); err != nil {
		cs.mu.Unlock()
		return err
	}
	cs.config = next
	listeners := append([]func(Config){}, cs.listeners...)
	cs.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return nil
}

// OnReload registers a listener called with each new configuration.
func (cs *ConfigStore) OnReload(fn func(Config)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}

func decodeOverrides(overrides map[string]any, into *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           into,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(overrides); err != nil {
		return fmt.Errorf("failed to decode config overrides: %w", err)
	}
	return nil
}
