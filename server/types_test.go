package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-tcp/api"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0, cfg.Port)
	assert.Equal(t, 1, cfg.Backlog)
	assert.Equal(t, 50*time.Millisecond, cfg.PollInterval)
	assert.True(t, cfg.ReuseAddr)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"port above range", func(c *Config) { c.Port = 70000 }, "Port"},
		{"negative port", func(c *Config) { c.Port = -1 }, "Port"},
		{"zero backlog", func(c *Config) { c.Backlog = 0 }, "Backlog"},
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }, "PollInterval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, api.ErrInvalidArgument)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestOptionsApplyBeforeValidation(t *testing.T) {
	s, err := New(8080, WithBacklog(16), WithPollInterval(time.Millisecond), WithReuseAddr(false), WithMetrics(nil))
	require.NoError(t, err)
	assert.Equal(t, Config{Port: 8080, Backlog: 16, PollInterval: time.Millisecond, ReuseAddr: false}, s.Config())
	assert.IsType(t, api.NoopServerMetrics{}, s.metrics)
}
