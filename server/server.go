// File: server/server.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-tcp/api"
	"github.com/momentics/hioload-tcp/internal/logger"
	"github.com/momentics/hioload-tcp/internal/transport"
	"github.com/momentics/hioload-tcp/transport/tcp"
)

var (
	ErrAlreadyRunning = errors.New("server already running")
	ErrServerClosed   = errors.New("server closed")
)

// Server accepts IPv4 TCP connections on one port and pushes each one into
// a caller-supplied queue. A single acceptor goroutine, locked to its own OS
// thread, polls the listener so that Shutdown is observed within one poll
// interval.
type Server struct {
	cfg         Config
	metrics     api.ServerMetrics
	acceptorCPU int

	mu       sync.Mutex
	started  bool
	closed   bool
	fd       int
	endpoint tcp.Endpoint

	shutdown  atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// New validates port and options and returns a server that is not yet
// listening. No socket is created before Start.
func New(port int, opts ...Option) (*Server, error) {
	cfg := DefaultConfig()
	cfg.Port = port
	return NewWithConfig(cfg, opts...)
}

// NewWithConfig is New with an explicit configuration.
func NewWithConfig(cfg Config, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:         cfg,
		metrics:     api.NoopServerMetrics{},
		acceptorCPU: -1,
		fd:          -1,
	}
	for _, o := range opts {
		o(s)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Config returns the validated configuration.
func (s *Server) Config() Config { return s.cfg }

// Start binds the wildcard address, listens and launches the acceptor, which
// pushes every accepted connection into q. Ownership of each connection
// passes to whoever pops it. A full bounded queue stalls accepting.
func (s *Server) Start(q api.Pusher[*tcp.Connection]) error {
	if q == nil {
		return api.InvalidArgument("server: nil connection queue")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrServerClosed
	}
	if s.started {
		return ErrAlreadyRunning
	}

	fd, err := transport.Listen(s.cfg.Port, s.cfg.Backlog, s.cfg.ReuseAddr)
	if err != nil {
		return err
	}
	local, err := transport.LocalAddr(fd)
	if err != nil {
		_ = transport.Close(fd)
		return err
	}
	ep, err := tcp.EndpointFromAddrPort(local)
	if err != nil {
		_ = transport.Close(fd)
		return err
	}

	s.fd = fd
	s.endpoint = ep
	s.started = true
	s.done = make(chan struct{})
	s.metrics.SetRunning(true)
	go s.acceptLoop(q)

	logger.Info("server listening on %s (backlog %d, poll %s)", ep, s.cfg.Backlog, s.cfg.PollInterval)
	return nil
}

// Shutdown stops the acceptor, waits for it to exit and closes the listener.
// Connections already handed to the queue are unaffected. Safe to call more
// than once and from several goroutines; later calls return the first result.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	s.closed = true
	started := s.started
	done := s.done
	s.mu.Unlock()
	if !started {
		return nil
	}

	s.shutdown.Store(true)
	<-done
	s.closeOnce.Do(func() {
		s.closeErr = transport.Close(s.fd)
		s.metrics.SetRunning(false)
		logger.Info("server on %s stopped", s.endpoint)
	})
	return s.closeErr
}

// Endpoint returns the bound address; the port is the kernel's choice when
// Config.Port was 0. It is the zero Endpoint before Start.
func (s *Server) Endpoint() tcp.Endpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endpoint
}

// Running reports whether the acceptor is active.
func (s *Server) Running() bool {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	return started && !s.shutdown.Load()
}
