package errors

import (
	"fmt"
	"testing"
)

func TestDomainError_Format(t *testing.T) {
	err := &DomainError{Func: "asin", Value: 1.5}
	want := "asin(1.5): domain error: input must be between -1 and 1"
	if got := err.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !Is(err, ErrDomain) {
		t.Error("should unwrap to ErrDomain")
	}
}

func TestOperationError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  OperationError
		want string
	}{
		{
			name: "with input",
			err:  OperationError{Op: "div", Input: "10 0", Err: ErrDivisionByZero},
			want: "div 10 0: division by zero",
		},
		{
			name: "no input",
			err:  OperationError{Op: "recall", Err: ErrEmptyMemory},
			want: "recall: memory is empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap("add", "1 2", nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}
	err := Wrap("div", "1 0", ErrDivisionByZero)
	if !Is(err, ErrDivisionByZero) {
		t.Error("should unwrap to ErrDivisionByZero")
	}
	var oe *OperationError
	if !As(err, &oe) || oe.Op != "div" {
		t.Errorf("expected *OperationError with Op=div, got %#v", err)
	}
}

func TestConfigError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  ConfigError
		want string
	}{
		{
			name: "with value and hint",
			err: ConfigError{
				Field:   "port",
				Value:   99999,
				Message: "out of range 1-65535",
				Hint:    "use a port between 1 and 65535",
			},
			want: "config: --port=99999: out of range 1-65535\n  hint: use a port between 1 and 65535",
		},
		{
			name: "missing value no hint",
			err: ConfigError{
				Field:   "script",
				Message: "required with --watch",
			},
			want: "config: --script: required with --watch",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrDivisionByZero, "division_by_zero"},
		{Wrap("div", "1 0", ErrDivisionByZero), "division_by_zero"},
		{&DomainError{Func: "acos", Value: 2}, "domain"},
		{ErrInvalidOperation, "invalid_operation"},
		{ErrInvalidFunction, "invalid_function"},
		{ErrEmptyMemory, "empty_memory"},
		{&ParseError{Input: "??", Message: "unknown command"}, "parse"},
		{fmt.Errorf("boom"), "other"},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestIsCalculation(t *testing.T) {
	if !IsCalculation(Wrap("asin", "2", &DomainError{Func: "asin", Value: 2})) {
		t.Error("domain error should be a calculation error")
	}
	if IsCalculation(&ParseError{Input: "x"}) {
		t.Error("parse error should not be a calculation error")
	}
	if IsCalculation(nil) {
		t.Error("nil should not be a calculation error")
	}
}

func TestSentinels(t *testing.T) {
	sentinels := []error{
		ErrDivisionByZero, ErrDomain, ErrInvalidOperation,
		ErrInvalidFunction, ErrEmptyMemory,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && Is(a, b) {
				t.Errorf("sentinel %d and %d should not match", i, j)
			}
		}
	}
}
