package calculator

import "sync"

// Shared serialises access to one Engine for callers that use it from
// several goroutines.  The zero value is not usable; call NewShared.
type Shared struct {
	mu sync.Mutex
	e  *Engine
}

// NewShared wraps e.  A nil e gets a fresh engine.
func NewShared(e *Engine) *Shared {
	if e == nil {
		e = New()
	}
	return &Shared{e: e}
}

// Do runs fn with exclusive access to the engine and returns its error.
// fn must not retain the engine after returning.
func (s *Shared) Do(fn func(e *Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.e)
}

// Status returns the engine status under the lock.
func (s *Shared) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.Status()
}
