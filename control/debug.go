// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug probes for internal inspection, served as JSON.

package control

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"

	"github.com/momentics/hioload-tcp/server"
)

// DebugProbes holds named state readers sampled on demand.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates an empty registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{probes: make(map[string]func() any)}
}

// RegisterProbe inserts a named reader, replacing any previous one.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// QueueGauge is the part of a queue the server readers sample.
type QueueGauge interface {
	Len() int
	Cap() int
}

// RegisterServer exposes the acceptor state of s and the depth of q under
// running, endpoint, queue_len and queue_cap. A nil q registers only the
// server entries.
func (dp *DebugProbes) RegisterServer(s *server.Server, q QueueGauge) {
	dp.RegisterProbe("running", func() any { return s.Running() })
	dp.RegisterProbe("endpoint", func() any { return s.Endpoint().String() })
	if q == nil {
		return
	}
	dp.RegisterProbe("queue_len", func() any { return q.Len() })
	dp.RegisterProbe("queue_cap", func() any { return q.Cap() })
}

// Names lists registered readers in sorted order.
func (dp *DebugProbes) Names() []string {
	dp.mu.RLock()
	names := make([]string, 0, len(dp.probes))
	for k := range dp.probes {
		names = append(names, k)
	}
	dp.mu.RUnlock()
	sort.Strings(names)
	return names
}

// DumpState samples every reader. Readers run outside the registry lock so
// they may call back into it.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	fns := make(map[string]func() any, len(dp.probes))
	for k, fn := range dp.probes {
		fns[k] = fn
	}
	dp.mu.RUnlock()

	out := make(map[string]any, len(fns))
	for k, fn := range fns {
		out[k] = fn()
	}
	return out
}

// Handler serves DumpState as a JSON object.
func (dp *DebugProbes) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dp.DumpState())
	})
}
