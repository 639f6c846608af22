package capability

import (
	"context"
	"fmt"

	"gocalc/internal/session"
)

// Eval evaluates a fixed list of expressions, as given with -e or read
// from a script file, writing one reply per line.
type Eval struct {
	Lines []string
}

// Handle evaluates every line in order.  It stops early on quit or
// context cancellation.  When any line fails, the returned error
// reports the count and wraps the first failure.
func (e *Eval) Handle(ctx context.Context, sess *session.Session) error {
	var (
		failed int
		first  error
	)
	for _, line := range e.Lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		r := sess.Shell.Exec(line)
		if out := r.String(); out != "" {
			fmt.Fprintln(sess.Out, out)
		}
		if r.Err != nil {
			failed++
			if first == nil {
				first = r.Err
			}
		}
		if r.Quit {
			break
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d lines failed: %w", failed, len(e.Lines), first)
	}
	return nil
}
