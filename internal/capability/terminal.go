package capability

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"gocalc/internal/session"
	"gocalc/internal/shell"
)

// Terminal runs the shell over an interactive terminal: line editing,
// history and tab completion of commands and function names.  The
// session's In/Out must be the raw side of a TTY (a local terminal in
// raw mode or an SSH channel with a pty).
type Terminal struct {
	Banner string
}

// Handle reads lines through a term.Terminal until EOF, quit or
// context cancellation.
func (t *Terminal) Handle(ctx context.Context, sess *session.Session) error {
	tty := term.NewTerminal(readWriter{sess.In, sess.Out}, sess.Shell.Prompt())
	tty.AutoCompleteCallback = completeWord

	if t.Banner != "" {
		fmt.Fprintln(tty, t.Banner)
	}

	for {
		tty.SetPrompt(sess.Shell.Prompt())
		line, err := readLine(ctx, tty.ReadLine)
		if ctx.Err() != nil || err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}

		r := sess.Shell.Exec(line)
		if out := r.String(); out != "" {
			fmt.Fprintln(tty, out)
		}
		if r.Quit {
			return nil
		}
	}
}

type readWriter struct {
	io.Reader
	io.Writer
}

// completeWord expands the word before the cursor on Tab.  A unique
// match is completed in full; several matches are completed up to
// their common prefix.
func completeWord(line string, pos int, key rune) (string, int, bool) {
	if key != '\t' {
		return "", 0, false
	}
	start := strings.LastIndexAny(line[:pos], " (") + 1
	word := line[start:pos]
	if word == "" {
		return "", 0, false
	}

	matches := shell.Complete(word)
	if len(matches) == 0 {
		return "", 0, false
	}
	fill := matches[0]
	if len(matches) > 1 {
		fill = commonPrefix(matches)
	} else {
		fill += " "
	}
	if len(fill) <= len(word) {
		return "", 0, false
	}

	newLine := line[:start] + fill + line[pos:]
	return newLine, start + len(fill), true
}

func commonPrefix(words []string) string {
	p := words[0]
	for _, w := range words[1:] {
		for !strings.HasPrefix(w, p) {
			p = p[:len(p)-1]
		}
	}
	return p
}
