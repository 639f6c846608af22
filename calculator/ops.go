package calculator

import (
	"fmt"
	"strings"
)

// Operator is one of the four arithmetic symbols.
type Operator byte

const (
	Add      Operator = '+'
	Subtract Operator = '-'
	Multiply Operator = '*'
	Divide   Operator = '/'
)

func (o Operator) String() string { return string(rune(o)) }

// Valid reports whether o is one of + - * /.
func (o Operator) Valid() bool {
	switch o {
	case Add, Subtract, Multiply, Divide:
		return true
	}
	return false
}

// ParseOperator accepts "+", "-", "*", "/" as well as the keypad glyphs
// "×" and "÷" and the letter "x".
func ParseOperator(s string) (Operator, error) {
	switch strings.TrimSpace(s) {
	case "+":
		return Add, nil
	case "-", "−":
		return Subtract, nil
	case "*", "×", "x", "X":
		return Multiply, nil
	case "/", "÷":
		return Divide, nil
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidOperation, s)
}

// Func identifies a trigonometric function.
type Func int

const (
	Sin Func = iota + 1
	Cos
	Tan
	Asin
	Acos
	Atan
)

var funcNames = map[Func]string{
	Sin:  "sin",
	Cos:  "cos",
	Tan:  "tan",
	Asin: "asin",
	Acos: "acos",
	Atan: "atan",
}

var funcAliases = map[string]Func{
	"sin": Sin, "sine": Sin,
	"cos": Cos, "cosine": Cos,
	"tan": Tan, "tangent": Tan,
	"asin": Asin, "arcsin": Asin, "arcsine": Asin,
	"acos": Acos, "arccos": Acos, "arccosine": Acos,
	"atan": Atan, "arctan": Atan, "arctangent": Atan,
}

func (f Func) String() string {
	if n, ok := funcNames[f]; ok {
		return n
	}
	return fmt.Sprintf("Func(%d)", int(f))
}

// Inverse reports whether f is one of asin, acos, atan.
func (f Func) Inverse() bool { return f == Asin || f == Acos || f == Atan }

// ParseFunc resolves a short or long function name, ignoring case and
// surrounding whitespace.
func ParseFunc(name string) (Func, error) {
	if f, ok := funcAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidFunction, name)
}

// FuncNames returns every accepted function name, short names first.
func FuncNames() []string {
	return []string{
		"sin", "cos", "tan", "asin", "acos", "atan",
		"sine", "cosine", "tangent",
		"arcsin", "arccos", "arctan",
		"arcsine", "arccosine", "arctangent",
	}
}
