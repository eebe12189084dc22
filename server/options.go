// File: server/options.go
// Package server defines functional options for the Server.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"time"

	"github.com/momentics/hioload-tcp/api"
)

// Option customizes server initialization. Options run before validation.
type Option func(*Server)

// WithBacklog overrides the listen backlog.
func WithBacklog(n int) Option {
	return func(s *Server) {
		s.cfg.Backlog = n
	}
}

// WithPollInterval overrides the acceptor's readiness wait.
func WithPollInterval(d time.Duration) Option {
	return func(s *Server) {
		s.cfg.PollInterval = d
	}
}

// WithReuseAddr toggles SO_REUSEADDR.
func WithReuseAddr(on bool) Option {
	return func(s *Server) {
		s.cfg.ReuseAddr = on
	}
}

// WithMetrics attaches a metrics sink. A nil sink disables metrics.
func WithMetrics(m api.ServerMetrics) Option {
	return func(s *Server) {
		if m == nil {
			m = api.NoopServerMetrics{}
		}
		s.metrics = m
	}
}

// WithAcceptorCPU pins the acceptor thread to a logical CPU. Negative values
// leave it unpinned. Pinning failures are logged and the acceptor runs unpinned.
func WithAcceptorCPU(cpu int) Option {
	return func(s *Server) {
		s.acceptorCPU = cpu
	}
}
