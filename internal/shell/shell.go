// Package shell implements the line-oriented command language shared by
// the console, script, TCP and SSH front-ends.
//
// A Shell wraps one calculator.Engine and turns each input line into a
// Reply.  It never writes anywhere itself: rendering the reply is the
// caller's job, which keeps every front-end a thin loop around Exec.
package shell

import (
	"fmt"
	"sort"
	"strings"

	"gocalc/calculator"
	calcerr "gocalc/internal/errors"
	"gocalc/internal/metrics"
)

// DefaultPrecision is the number of significant digits in rendered
// results.
const DefaultPrecision = 10

// Reply is the outcome of one input line.
type Reply struct {
	Text     string  // rendered output; empty for blank lines
	Value    float64 // numeric result, valid when HasValue
	HasValue bool
	Err      error
	Quit     bool // the user asked to end the session
}

// String renders the reply for display: the error when there is one,
// the text otherwise.
func (r Reply) String() string {
	if r.Err != nil {
		return "error: " + r.Err.Error()
	}
	return r.Text
}

// Option configures a Shell.
type Option func(*Shell)

// WithMetrics records every evaluated operation in c.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Shell) { s.metrics = c }
}

// WithPrecision sets the number of significant digits in results.
func WithPrecision(n int) Option {
	return func(s *Shell) { s.precision = n }
}

// Shell evaluates command lines against one engine.  Like the engine it
// wraps, a Shell is not safe for concurrent use.
type Shell struct {
	engine    *calculator.Engine
	metrics   *metrics.Collector
	precision int
}

// New returns a Shell over e.  A nil e gets a fresh engine.
func New(e *calculator.Engine, opts ...Option) *Shell {
	if e == nil {
		e = calculator.New()
	}
	s := &Shell{engine: e, precision: DefaultPrecision}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Engine returns the wrapped engine.
func (s *Shell) Engine() *calculator.Engine { return s.engine }

// Prompt returns the interactive prompt, which shows the angle mode.
func (s *Shell) Prompt() string {
	if s.engine.AngleMode() {
		return "deg> "
	}
	return "rad> "
}

func (s *Shell) num(v float64) string { return FormatNumber(v, s.precision) }

// Exec evaluates one line.  Blank lines and '#' comments produce an
// empty reply.
func (s *Shell) Exec(line string) Reply {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Reply{}
	}
	r := s.exec(unwrapCall(line))
	if r.Err != nil {
		s.metrics.OperationFailed(calcerr.Kind(r.Err), r.Err.Error())
	}
	return r
}

func (s *Shell) exec(line string) Reply {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "help", "?":
		return Reply{Text: helpText}
	case "quit", "exit", "q":
		return Reply{Text: "bye", Quit: true}
	case "ms":
		return s.memoryStore(args)
	case "mr":
		if len(args) == 0 {
			v, err := s.engine.RecallFromMemory()
			if err != nil {
				return Reply{Err: calcerr.Wrap("recall", "", err)}
			}
			return s.value(v, "memory: "+s.num(v))
		}
	case "mc":
		s.engine.ClearMemory()
		return Reply{Text: "memory cleared"}
	case "m?", "mem", "memory":
		return Reply{Text: s.engine.MemoryStatus()}
	case "deg", "degrees":
		return s.setMode(true)
	case "rad", "radians":
		return s.setMode(false)
	case "mode":
		return s.mode(args)
	case "status":
		return Reply{Text: s.engine.Status().String()}
	case "ans", "last":
		if len(args) == 0 {
			v := s.engine.LastResult()
			return s.value(v, s.num(v))
		}
	}

	if fn, err := calculator.ParseFunc(cmd); err == nil {
		return s.trig(fn, args)
	}
	if op, rhs, ok := chainOperator(fields); ok {
		return s.binary(s.engine.LastResult(), op, rhs)
	}

	if len(fields) == 3 {
		if op, err := calculator.ParseOperator(fields[1]); err == nil {
			return s.operands(fields[0], op, fields[2])
		}
	}
	if a, op, b, ok := splitBinary(strings.Join(fields, "")); ok {
		o, err := calculator.ParseOperator(op)
		if err != nil {
			return Reply{Err: err}
		}
		return s.operands(a, o, b)
	}

	if len(fields) == 1 {
		v, err := s.operand(fields[0])
		if err == nil {
			s.engine.SetLastResult(v)
			return s.value(v, s.num(v))
		}
		var pe *calcerr.ParseError
		if !calcerr.As(err, &pe) {
			return Reply{Err: err}
		}
	}
	return Reply{Err: &calcerr.ParseError{Input: line, Message: "unknown command (try 'help')"}}
}

func (s *Shell) operands(lhs string, op calculator.Operator, rhs string) Reply {
	a, err := s.operand(lhs)
	if err != nil {
		return Reply{Err: err}
	}
	return s.binary(a, op, rhs)
}

func (s *Shell) binary(a float64, op calculator.Operator, rhs string) Reply {
	b, err := s.operand(rhs)
	if err != nil {
		return Reply{Err: err}
	}
	input := fmt.Sprintf("%s %s %s", s.num(a), op, s.num(b))
	r, err := s.engine.Calculate(a, b, op)
	if err != nil {
		return Reply{Err: calcerr.Wrap("calculate", input, err)}
	}
	s.metrics.OperationSucceeded()
	return s.value(r, input+" = "+s.num(r))
}

func (s *Shell) trig(fn calculator.Func, args []string) Reply {
	var arg string
	switch {
	case len(args) == 1:
		arg = args[0]
	case len(args) == 3 && isOperator(args[1]):
		arg = strings.Join(args, "")
	default:
		return s.usage(fn.String())
	}
	v, err := s.argument(arg)
	if err != nil {
		return Reply{Err: err}
	}
	r, err := s.engine.Apply(fn, v)
	if err != nil {
		var de *calcerr.DomainError
		if !calcerr.As(err, &de) {
			err = calcerr.Wrap(fn.String(), s.num(v), err)
		}
		return Reply{Err: err}
	}
	s.metrics.OperationSucceeded()
	return s.value(r, fmt.Sprintf("%s(%s) = %s", fn, s.num(v), s.num(r)))
}

func (s *Shell) memoryStore(args []string) Reply {
	var v float64
	switch len(args) {
	case 0:
		v = s.engine.LastResult()
	case 1:
		var err error
		if v, err = s.operand(args[0]); err != nil {
			return Reply{Err: err}
		}
	default:
		return s.usage("ms")
	}
	s.engine.StoreInMemory(v)
	s.metrics.MemoryStored()
	return s.value(v, "stored "+s.num(v)+" in memory")
}

func (s *Shell) setMode(degrees bool) Reply {
	s.engine.SetAngleMode(degrees)
	return Reply{Text: "angle mode: " + s.engine.AngleModeString()}
}

func (s *Shell) mode(args []string) Reply {
	if len(args) == 0 {
		return Reply{Text: "angle mode: " + s.engine.AngleModeString()}
	}
	if len(args) > 1 {
		return s.usage("mode")
	}
	switch strings.ToLower(args[0]) {
	case "deg", "degrees":
		return s.setMode(true)
	case "rad", "radians":
		return s.setMode(false)
	case "toggle":
		return s.setMode(!s.engine.AngleMode())
	}
	return s.usage("mode")
}

func (s *Shell) value(v float64, text string) Reply {
	return Reply{Text: text, Value: v, HasValue: true}
}

func (s *Shell) usage(cmd string) Reply {
	u, ok := usages[cmd]
	if !ok {
		u = cmd + " <x>"
	}
	return Reply{Err: &calcerr.ParseError{Input: cmd, Message: "usage: " + u}}
}

var usages = map[string]string{
	"ms":   "ms [x]",
	"mode": "mode [deg|rad|toggle]",
}

// commands lists every keyword for completion.
var commands = []string{
	"help", "quit", "exit", "ms", "mr", "mc", "m?", "memory",
	"deg", "rad", "mode", "status", "ans", "last", "pi",
}

// Complete returns the keywords and function names that start with the
// given prefix, sorted.
func Complete(prefix string) []string {
	prefix = strings.ToLower(prefix)
	var out []string
	for _, w := range append(append([]string{}, commands...), calculator.FuncNames()...) {
		if strings.HasPrefix(w, prefix) {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

const helpText = `arithmetic:  <a> <op> <b>     op is one of + - * / (also x × ÷)
             <op> <b>         apply to the last result
trigonometry: sin cos tan asin acos atan <x>   (also sin(x), sine x, ...)
             <x> may be <a><op><b>, e.g. sin pi/2
operands:    numbers, pi, e, m (memory), ans (last result)
memory:      ms [x]  store x (default: last result)
             mr      recall      mc  clear      m?  show
mode:        deg | rad | mode [deg|rad|toggle]
other:       status | ans | help | quit`
