package capability

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"gocalc/internal/session"
	"gocalc/util"
)

// Lines reads the session input one line at a time and writes one
// reply per line.  It suits pipes and raw TCP clients such as nc.
type Lines struct {
	Banner string // written once before the first prompt
	Prompt bool   // write the shell prompt before each line
}

// Handle evaluates lines until EOF, quit or context cancellation.
func (l *Lines) Handle(ctx context.Context, sess *session.Session) error {
	if l.Banner != "" {
		fmt.Fprintln(sess.Out, l.Banner)
	}
	l.prompt(sess)

	sc := bufio.NewScanner(sess.In)
	scan := func() (string, error) {
		if sc.Scan() {
			return sc.Text(), nil
		}
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	for {
		line, err := readLine(ctx, scan)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			if util.IsClosed(err) {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		r := sess.Shell.Exec(line)
		if out := r.String(); out != "" {
			fmt.Fprintln(sess.Out, out)
		}
		if r.Err != nil {
			sess.Logger.Debug("%v", r.Err)
		}
		if r.Quit {
			return nil
		}
		l.prompt(sess)
	}
}

func (l *Lines) prompt(sess *session.Session) {
	if l.Prompt {
		fmt.Fprint(sess.Out, sess.Shell.Prompt())
	}
}
