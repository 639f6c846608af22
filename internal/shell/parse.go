package shell

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gocalc/calculator"
	calcerr "gocalc/internal/errors"
)

// operand resolves a single operand token: a number, a named constant,
// the memory register or the last result.  A leading '-' negates named
// operands ("-pi", "-m").
func (s *Shell) operand(tok string) (float64, error) {
	neg := false
	name := strings.ToLower(tok)
	if len(name) > 1 && name[0] == '-' {
		if _, err := strconv.ParseFloat(name, 64); err != nil {
			neg = true
			name = name[1:]
		}
	}

	var v float64
	switch name {
	case "m", "mr", "mem":
		r, err := s.engine.RecallFromMemory()
		if err != nil {
			return 0, calcerr.Wrap("recall", "", err)
		}
		v = r
	case "ans", "last":
		v = s.engine.LastResult()
	case "pi", "π":
		v = math.Pi
	case "e":
		v = math.E
	default:
		f, err := strconv.ParseFloat(name, 64)
		if err != nil || math.IsNaN(f) {
			return 0, &calcerr.ParseError{Input: tok, Message: "not a number"}
		}
		v = f
	}
	if neg {
		v = -v
	}
	return v, nil
}

// argument resolves a function argument: an operand or a compact
// binary expression such as "pi/2".  The expression is evaluated on a
// scratch engine so the last result only changes when the function
// itself succeeds.
func (s *Shell) argument(tok string) (float64, error) {
	v, err := s.operand(tok)
	if err == nil {
		return v, nil
	}
	lhs, sym, rhs, ok := splitBinary(tok)
	if !ok {
		return 0, err
	}
	op, perr := calculator.ParseOperator(sym)
	if perr != nil {
		return 0, err
	}
	a, err := s.operand(lhs)
	if err != nil {
		return 0, err
	}
	b, err := s.operand(rhs)
	if err != nil {
		return 0, err
	}
	r, err := calculator.New().Calculate(a, b, op)
	if err != nil {
		return 0, calcerr.Wrap("calculate", fmt.Sprintf("%s %s %s", s.num(a), op, s.num(b)), err)
	}
	return r, nil
}

func isOperator(tok string) bool {
	_, err := calculator.ParseOperator(tok)
	return err == nil
}

// isOpRune reports whether r can act as a binary operator in compact
// input such as "2+3" or "6÷2".
func isOpRune(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '×', '÷':
		return true
	}
	return false
}

// splitBinary splits compact input "a<op>b" at the first operator that
// is not a sign: not at the start, not after another operator, and not
// the sign of a decimal exponent ("1e-3").
func splitBinary(s string) (a, op, b string, ok bool) {
	rs := []rune(s)
	for i := 1; i < len(rs)-1; i++ {
		if !isOpRune(rs[i]) {
			continue
		}
		prev := rs[i-1]
		if isOpRune(prev) {
			continue
		}
		if (prev == 'e' || prev == 'E') && i >= 2 && isNumRune(rs[i-2]) {
			continue
		}
		return string(rs[:i]), string(rs[i]), string(rs[i+1:]), true
	}
	return "", "", "", false
}

func isNumRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}

// unwrapCall rewrites "fn(x)" as "fn x".
func unwrapCall(line string) string {
	i := strings.IndexByte(line, '(')
	if i <= 0 || !strings.HasSuffix(line, ")") {
		return line
	}
	return strings.TrimSpace(line[:i]) + " " + strings.TrimSpace(line[i+1:len(line)-1])
}

// chainOperator returns the operator that starts a chained expression
// such as "+ 3" or "*2", where the last result is the left operand.  A
// leading '-' only chains when followed by whitespace, so "-3" stays a
// number.
func chainOperator(fields []string) (calculator.Operator, string, bool) {
	first := fields[0]
	if len(fields) == 2 {
		if op, err := calculator.ParseOperator(first); err == nil {
			return op, fields[1], true
		}
		return 0, "", false
	}
	if len(fields) != 1 {
		return 0, "", false
	}
	r := []rune(first)
	if len(r) < 2 || r[0] == '-' || !isOpRune(r[0]) {
		return 0, "", false
	}
	op, err := calculator.ParseOperator(string(r[0]))
	if err != nil {
		return 0, "", false
	}
	return op, string(r[1:]), true
}

// FormatNumber renders v with at most precision significant digits
// (shortest exact representation when precision ≤ 0).  Negative zero
// renders as "0".
func FormatNumber(v float64, precision int) string {
	if v == 0 {
		return "0"
	}
	if precision <= 0 {
		precision = -1
	}
	return strconv.FormatFloat(v, 'g', precision, 64)
}
