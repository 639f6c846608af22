// Package calculator is the computational core shared by every gocalc
// front-end: four-function arithmetic, trigonometry with a
// degrees/radians mode, a one-slot memory register and the cached last
// result.
//
// The core performs no I/O.  Every failing call returns the fallback
// value 0 together with an error that can be matched with errors.Is
// against the sentinels below; front-ends decide how to present it.
// An Engine is not safe for concurrent use; see Shared.
package calculator

import (
	"fmt"

	calcerr "gocalc/internal/errors"
)

// Sentinel errors returned by the engine.
var (
	ErrDivisionByZero   = calcerr.ErrDivisionByZero
	ErrDomain           = calcerr.ErrDomain
	ErrInvalidOperation = calcerr.ErrInvalidOperation
	ErrInvalidFunction  = calcerr.ErrInvalidFunction
	ErrEmptyMemory      = calcerr.ErrEmptyMemory
)

// Engine owns one Memory, one AngleConverter and the last result.
type Engine struct {
	memory     Memory
	trig       AngleConverter
	lastResult float64
}

// New returns an engine with empty memory, degree mode and a last
// result of 0.
func New() *Engine {
	return &Engine{trig: NewAngleConverter()}
}

// ── Arithmetic ───────────────────────────────────────────────────────

// Calculate applies op to a and b.  Division by zero and unknown
// operators return 0 and an error and leave the last result unchanged.
func (e *Engine) Calculate(a, b float64, op Operator) (float64, error) {
	var r float64
	switch op {
	case Add:
		r = a + b
	case Subtract:
		r = a - b
	case Multiply:
		r = a * b
	case Divide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		r = a / b
	default:
		return 0, fmt.Errorf("%w %q", ErrInvalidOperation, op)
	}
	e.lastResult = r
	return r, nil
}

// IsValidOperation reports whether Calculate accepts op.
func (e *Engine) IsValidOperation(op Operator) bool { return op.Valid() }

// ── Trigonometry ─────────────────────────────────────────────────────

// Trig evaluates the function called name (see ParseFunc) at v.
func (e *Engine) Trig(name string, v float64) (float64, error) {
	fn, err := ParseFunc(name)
	if err != nil {
		return 0, err
	}
	return e.Apply(fn, v)
}

// Apply evaluates fn at v in the active angle mode.  Inverse sine and
// cosine reject inputs outside [-1, 1] with a *DomainError.
func (e *Engine) Apply(fn Func, v float64) (float64, error) {
	var (
		r   float64
		err error
	)
	switch fn {
	case Sin:
		r = e.trig.Sin(v)
	case Cos:
		r = e.trig.Cos(v)
	case Tan:
		r = e.trig.Tan(v)
	case Asin:
		r, err = e.trig.Asin(v)
	case Acos:
		r, err = e.trig.Acos(v)
	case Atan:
		r = e.trig.Atan(v)
	default:
		err = fmt.Errorf("%w %v", ErrInvalidFunction, fn)
	}
	if err != nil {
		return 0, err
	}
	e.lastResult = r
	return r, nil
}

// IsValidTrigFunction reports whether Trig accepts name.
func (e *Engine) IsValidTrigFunction(name string) bool {
	_, err := ParseFunc(name)
	return err == nil
}

// ── Angle mode ───────────────────────────────────────────────────────

// SetAngleMode selects degrees (true) or radians (false).
func (e *Engine) SetAngleMode(degrees bool) { e.trig.SetDegrees(degrees) }

// AngleMode reports true in degree mode.
func (e *Engine) AngleMode() bool { return e.trig.Degrees() }

// Mode returns the active AngleMode.
func (e *Engine) Mode() AngleMode { return e.trig.Mode() }

// AngleModeString returns "Degrees" or "Radians".
func (e *Engine) AngleModeString() string { return e.trig.Mode().String() }

// ── Memory ───────────────────────────────────────────────────────────

// StoreInMemory overwrites the memory register.
func (e *Engine) StoreInMemory(v float64) { e.memory.Store(v) }

// RecallFromMemory returns the stored value or 0 and ErrEmptyMemory.
func (e *Engine) RecallFromMemory() (float64, error) { return e.memory.Recall() }

// ClearMemory empties the register.
func (e *Engine) ClearMemory() { e.memory.Clear() }

// HasMemoryValue reports whether the register holds a value.
func (e *Engine) HasMemoryValue() bool { return !e.memory.IsEmpty() }

// MemoryStatus renders the register, e.g. "Memory contains: 5".
func (e *Engine) MemoryStatus() string { return e.memory.String() }

// ── Last result ──────────────────────────────────────────────────────

// LastResult returns the result of the most recent successful
// operation, or the value last passed to SetLastResult.
func (e *Engine) LastResult() float64 { return e.lastResult }

// SetLastResult overrides the cached last result.
func (e *Engine) SetLastResult(v float64) { e.lastResult = v }

// ── Status ───────────────────────────────────────────────────────────

// Status is a point-in-time view of the engine's state.
type Status struct {
	HasMemory  bool      `json:"has_memory"`
	Memory     float64   `json:"memory"`
	Mode       AngleMode `json:"-"`
	ModeName   string    `json:"mode"`
	LastResult float64   `json:"last_result"`
}

// String renders the status line, e.g.
// "Ready | Memory: Empty | Mode: Degrees".
func (s Status) String() string {
	mem := "Empty"
	if s.HasMemory {
		mem = "Has Value"
	}
	return fmt.Sprintf("Ready | Memory: %s | Mode: %s", mem, s.Mode)
}

// Status returns the current state.
func (e *Engine) Status() Status {
	mode := e.trig.Mode()
	return Status{
		HasMemory:  !e.memory.IsEmpty(),
		Memory:     e.memory.value,
		Mode:       mode,
		ModeName:   mode.String(),
		LastResult: e.lastResult,
	}
}
