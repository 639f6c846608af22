// Package keypad models a pocket-calculator front panel: keys are
// pressed one at a time and the display shows either the number being
// typed or the latest result.  It holds no widgets, so any GUI (or the
// web export) can drive it.
package keypad

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gocalc/calculator"
	"gocalc/internal/shell"
)

// ErrUnknownKey is returned by Press for a key the panel doesn't have.
var ErrUnknownKey = errors.New("unknown key")

// ErrorText is shown on the display after a failed operation.
const ErrorText = "Error"

// Keypad is the panel state on top of one engine.  It is not safe for
// concurrent use.
type Keypad struct {
	engine    *calculator.Engine
	precision int

	input   string              // display contents
	result  float64             // unrounded value behind input, valid when exact
	exact   bool
	operand float64             // left operand of the pending operator
	pending calculator.Operator // 0 when no operator is pending
	waiting bool                // the next digit starts a new number
	failed  bool                // display shows ErrorText
	notice  string              // message from the last key, if any
}

// New returns a keypad showing "0".  A nil e gets a fresh engine.
func New(e *calculator.Engine) *Keypad {
	if e == nil {
		e = calculator.New()
	}
	return &Keypad{
		engine:    e,
		precision: shell.DefaultPrecision,
		input:     "0",
		waiting:   true,
	}
}

// SetPrecision sets the significant digits used to show results.
func (k *Keypad) SetPrecision(n int) { k.precision = n }

// Engine returns the engine behind the panel.
func (k *Keypad) Engine() *calculator.Engine { return k.engine }

// Display returns the text on the display.
func (k *Keypad) Display() string {
	if k.failed {
		return ErrorText
	}
	return k.input
}

// Status returns the status line,
// e.g. "Ready | Memory: Empty | Mode: Degrees".
func (k *Keypad) Status() string { return k.engine.Status().String() }

// ModeLabel returns the caption of the angle-mode key: "DEG" or "RAD".
func (k *Keypad) ModeLabel() string {
	if k.engine.AngleMode() {
		return "DEG"
	}
	return "RAD"
}

// Notice returns the message produced by the last key press (memory
// status for M?), or "".
func (k *Keypad) Notice() string { return k.notice }

// Pending returns the operator waiting for its right operand, if any.
func (k *Keypad) Pending() (calculator.Operator, bool) { return k.pending, k.pending != 0 }

// Press handles one key.  The error reports a failed operation (the
// display then shows ErrorText), an empty memory on MR, or an unknown
// key; the panel stays usable in every case.
func (k *Keypad) Press(key string) error {
	k.notice = ""
	if k.failed {
		k.failed = false
		k.setInput("0")
	}

	switch {
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		k.digit(key)
		return nil
	case key == ".":
		k.decimal()
		return nil
	case key == "=":
		return k.equals()
	}

	if op, err := calculator.ParseOperator(key); err == nil {
		return k.operator(op)
	}

	switch strings.ToUpper(key) {
	case "C":
		k.setInput("0")
		k.operand = 0
		k.pending = 0
		k.waiting = true
		return nil
	case "CE":
		k.setInput("0")
		k.waiting = true
		return nil
	case "MS":
		k.engine.StoreInMemory(k.value())
		return nil
	case "MR":
		v, err := k.engine.RecallFromMemory()
		if err != nil {
			k.notice = k.engine.MemoryStatus()
			return err
		}
		k.show(v)
		return nil
	case "MC":
		k.engine.ClearMemory()
		return nil
	case "M?":
		k.notice = k.engine.MemoryStatus()
		return nil
	case "DEG":
		k.engine.SetAngleMode(true)
		return nil
	case "RAD":
		k.engine.SetAngleMode(false)
		return nil
	case "DEG/RAD":
		k.engine.SetAngleMode(!k.engine.AngleMode())
		return nil
	}

	if fn, err := calculator.ParseFunc(key); err == nil {
		r, err := k.engine.Apply(fn, k.value())
		if err != nil {
			return k.fail(err)
		}
		k.show(r)
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownKey, key)
}

func (k *Keypad) digit(d string) {
	switch {
	case k.waiting:
		k.setInput(d)
		k.waiting = false
	case k.input == "0":
		k.setInput(d)
	default:
		k.setInput(k.input + d)
	}
}

func (k *Keypad) decimal() {
	switch {
	case k.waiting:
		k.setInput("0.")
		k.waiting = false
	case !strings.Contains(k.input, "."):
		k.setInput(k.input + ".")
	}
}

// operator applies any pending operator (chaining) and makes op the
// new pending one.  Pressing operators back to back only replaces the
// pending operator.
func (k *Keypad) operator(op calculator.Operator) error {
	if k.pending != 0 && k.waiting {
		k.pending = op
		return nil
	}
	if k.pending != 0 {
		r, err := k.engine.Calculate(k.operand, k.value(), k.pending)
		if err != nil {
			return k.fail(err)
		}
		k.show(r)
		k.operand = r
	} else {
		k.operand = k.value()
	}
	k.pending = op
	k.waiting = true
	return nil
}

func (k *Keypad) equals() error {
	if k.pending == 0 {
		return nil
	}
	r, err := k.engine.Calculate(k.operand, k.value(), k.pending)
	k.pending = 0
	if err != nil {
		return k.fail(err)
	}
	k.show(r)
	return nil
}

// value returns the number on the display.  A shown result keeps its
// full precision; typed input is parsed.
func (k *Keypad) value() float64 {
	if k.exact {
		return k.result
	}
	v, _ := strconv.ParseFloat(k.input, 64)
	return v
}

func (k *Keypad) setInput(s string) {
	k.input = s
	k.exact = false
}

func (k *Keypad) show(v float64) {
	k.input = shell.FormatNumber(v, k.precision)
	k.result = v
	k.exact = true
	k.waiting = true
}

// fail puts the panel into the error state: the display shows
// ErrorText and the pending operation is dropped.
func (k *Keypad) fail(err error) error {
	k.failed = true
	k.setInput("0")
	k.operand = 0
	k.pending = 0
	k.waiting = true
	return err
}
