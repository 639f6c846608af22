// Package errors provides domain-specific error types for gocalc.
//
// Calculator failures are recoverable and local: every failing engine
// call returns a fallback value together with one of the sentinels
// below, and adapters decide how to present it.  The structured types
// carry the operation and input that failed so adapters can render a
// useful message without re-parsing strings.
package errors

import (
	"errors"
	"fmt"
	"strconv"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrDivisionByZero   = errors.New("division by zero")
	ErrDomain           = errors.New("domain error")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInvalidFunction  = errors.New("invalid trigonometric function")
	ErrEmptyMemory      = errors.New("memory is empty")
)

// ── Structured error types ───────────────────────────────────────────

// DomainError reports an inverse-trig argument outside [-1, 1].
type DomainError struct {
	Func  string // "asin" or "acos"
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s(%s): %v: input must be between -1 and 1",
		e.Func, formatFloat(e.Value), ErrDomain)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// OperationError attaches the operation and its input to a calculator
// failure.
type OperationError struct {
	Op    string // "div", "asin", "recall", ...
	Input string // rendered operands, may be empty
	Err   error
}

func (e *OperationError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Input, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// ParseError represents shell input that could not be understood.
type ParseError struct {
	Input   string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Message)
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// Wrap creates an OperationError.  A nil err yields nil.
func Wrap(op, input string, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Op: op, Input: input, Err: err}
}

// ── Classification helpers ───────────────────────────────────────────

// Kind returns a short stable label for err, suitable as a metrics key.
func Kind(err error) string {
	var pe *ParseError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, ErrDomain):
		return "domain"
	case errors.Is(err, ErrInvalidOperation):
		return "invalid_operation"
	case errors.Is(err, ErrInvalidFunction):
		return "invalid_function"
	case errors.Is(err, ErrEmptyMemory):
		return "empty_memory"
	case errors.As(err, &pe):
		return "parse"
	default:
		return "other"
	}
}

// IsCalculation reports whether err is one of the engine's recoverable
// calculation failures (as opposed to input or transport errors).
func IsCalculation(err error) bool {
	return errors.Is(err, ErrDivisionByZero) ||
		errors.Is(err, ErrDomain) ||
		errors.Is(err, ErrInvalidOperation) ||
		errors.Is(err, ErrInvalidFunction) ||
		errors.Is(err, ErrEmptyMemory)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use gocalc/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }
