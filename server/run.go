// File: server/run.go
// Package server implements the acceptor loop: readiness polling, accept,
// hand-off to the connection queue and cooperative shutdown.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"errors"
	"runtime"
	"time"

	"github.com/momentics/hioload-tcp/affinity"
	"github.com/momentics/hioload-tcp/api"
	"github.com/momentics/hioload-tcp/internal/logger"
	"github.com/momentics/hioload-tcp/internal/transport"
	"github.com/momentics/hioload-tcp/transport/tcp"
)

// acceptLoop runs until the shutdown flag is observed. It closes s.done on exit.
func (s *Server) acceptLoop(q api.Pusher[*tcp.Connection]) {
	defer close(s.done)
	// The acceptor blocks in poll(2); give it a thread of its own.
	runtime.LockOSThread()
	if s.acceptorCPU >= 0 {
		// A pinned thread is not returned to the scheduler: exiting while
		// still locked makes the runtime discard it.
		if err := affinity.SetAffinity(s.acceptorCPU); err != nil {
			logger.Warn("acceptor on %s: cannot pin to cpu %d: %v", s.endpoint, s.acceptorCPU, err)
			defer runtime.UnlockOSThread()
		}
	} else {
		defer runtime.UnlockOSThread()
	}

	timed, _ := q.(api.TimedPusher[*tcp.Connection])
	for !s.shutdown.Load() {
		ready, err := transport.PollReadable(s.fd, s.cfg.PollInterval)
		if err != nil {
			logger.Error("poll on %s failed: %v", s.endpoint, err)
			s.metrics.AcceptFailed()
			time.Sleep(s.cfg.PollInterval)
			continue
		}
		if !ready {
			continue
		}
		conn, ok := s.acceptOne()
		if !ok {
			continue
		}
		if !s.handOff(q, timed, conn) {
			logger.Warn("dropping %s: shutdown while queue was full", conn)
			_ = conn.Terminate()
			s.metrics.ConnectionDropped()
		}
	}
}

func (s *Server) acceptOne() (*tcp.Connection, bool) {
	fd, peer, err := transport.Accept(s.fd)
	if errors.Is(err, transport.ErrNoPending) {
		return nil, false
	}
	if err != nil {
		// The connection stays in the backlog, so the listener polls ready
		// again at once; back off for one interval (EMFILE, ENOBUFS).
		logger.Warn("accept on %s failed: %v", s.endpoint, err)
		s.metrics.AcceptFailed()
		time.Sleep(s.cfg.PollInterval)
		return nil, false
	}
	ep, err := tcp.EndpointFromAddrPort(peer)
	if err != nil {
		_ = transport.Close(fd)
		logger.Warn("accept on %s: %v", s.endpoint, err)
		s.metrics.AcceptFailed()
		return nil, false
	}
	conn := tcp.Adopt(fd, ep)
	s.metrics.ConnectionAccepted()
	logger.Debug("accepted %s", ep)
	return conn, true
}

// handOff pushes conn into q. With a TimedPusher the push is retried in
// poll-interval slices and abandoned once shutdown is requested; otherwise
// it blocks until the queue takes the connection.
func (s *Server) handOff(q api.Pusher[*tcp.Connection], timed api.TimedPusher[*tcp.Connection], conn *tcp.Connection) bool {
	start := time.Now()
	defer func() { s.metrics.ObservePushWait(time.Since(start)) }()

	if timed == nil {
		q.Push(conn)
		return true
	}
	for {
		if timed.PushTimeout(conn, s.cfg.PollInterval) {
			return true
		}
		if s.shutdown.Load() {
			return false
		}
	}
}
