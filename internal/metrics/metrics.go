// Package metrics provides lightweight, lock-free counters for tracking
// runtime statistics of a gocalc process: sessions served, operations
// evaluated, and failures by kind.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a gocalc process.
// A nil Collector is safe to use — all methods become no-ops.
type Collector struct {
	sessionsActive   atomic.Int64
	sessionsTotal    atomic.Int64
	operationsTotal  atomic.Int64
	operationsFailed atomic.Int64
	memoryStores     atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	failures     map[string]int64 // keyed by error kind
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{
		startTime: time.Now(),
		failures:  make(map[string]int64),
	}
}

// ── Session metrics ──────────────────────────────────────────────────

// SessionOpened increments both the active and total counters.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.sessionsActive.Add(1)
	c.sessionsTotal.Add(1)
}

// SessionClosed decrements the active session counter.
func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.sessionsActive.Add(-1)
}

// ActiveSessions returns the current number of open sessions.
func (c *Collector) ActiveSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsActive.Load()
}

// TotalSessions returns the lifetime session count.
func (c *Collector) TotalSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsTotal.Load()
}

// ── Operation metrics ────────────────────────────────────────────────

// OperationSucceeded records one successfully evaluated operation.
func (c *Collector) OperationSucceeded() {
	if c == nil {
		return
	}
	c.operationsTotal.Add(1)
}

// OperationFailed records one failed operation of the given kind
// (see errors.Kind) and remembers msg as the last error.
func (c *Collector) OperationFailed(kind, msg string) {
	if c == nil {
		return
	}
	c.operationsTotal.Add(1)
	c.operationsFailed.Add(1)
	c.mu.Lock()
	c.failures[kind]++
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// MemoryStored records a write to a memory register.
func (c *Collector) MemoryStored() {
	if c == nil {
		return
	}
	c.memoryStores.Add(1)
}

// Operations returns the total number of operations recorded.
func (c *Collector) Operations() int64 {
	if c == nil {
		return 0
	}
	return c.operationsTotal.Load()
}

// Failures returns the number of failed operations.
func (c *Collector) Failures() int64 {
	if c == nil {
		return 0
	}
	return c.operationsFailed.Load()
}

// FailuresOf returns the number of failures recorded for kind.
func (c *Collector) FailuresOf(kind string) int64 {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.failures[kind]
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string           `json:"uptime"`
	SessionsActive   int64            `json:"sessions_active"`
	SessionsTotal    int64            `json:"sessions_total"`
	OperationsTotal  int64            `json:"operations_total"`
	OperationsFailed int64            `json:"operations_failed"`
	MemoryStores     int64            `json:"memory_stores"`
	FailuresByKind   map[string]int64 `json:"failures_by_kind,omitempty"`
	LastError        string           `json:"last_error,omitempty"`
	LastErrorMessage string           `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:           time.Since(c.startTime).Truncate(time.Second).String(),
		SessionsActive:   c.sessionsActive.Load(),
		SessionsTotal:    c.sessionsTotal.Load(),
		OperationsTotal:  c.operationsTotal.Load(),
		OperationsFailed: c.operationsFailed.Load(),
		MemoryStores:     c.memoryStores.Load(),
	}
	if len(c.failures) > 0 {
		s.FailuresByKind = make(map[string]int64, len(c.failures))
		for k, v := range c.failures {
			s.FailuresByKind[k] = v
		}
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
