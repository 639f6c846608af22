package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gosuri/uilive"

	"gocalc/internal/capability"
	"gocalc/internal/metrics"
	"gocalc/internal/session"
	"gocalc/util"
)

// ScriptMode evaluates a fixed list of lines (-e) or a script file
// (-s), one reply per line.  With Watch it keeps running and
// re-evaluates the file on every change, redrawing the results in
// place.
type ScriptMode struct {
	Lines    []string
	Path     string
	Watch    bool
	Debounce time.Duration
	NewShell ShellFactory
	Logger   *util.Logger
	Metrics  *metrics.Collector

	// Stdout defaults to os.Stdout when nil.
	Stdout io.Writer
}

func (m *ScriptMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

func (m *ScriptMode) String() string {
	switch {
	case m.Watch:
		return "watch " + m.Path
	case m.Path != "":
		return "script " + m.Path
	default:
		return fmt.Sprintf("eval (%d lines)", len(m.Lines))
	}
}

// Run evaluates the script.  Without Watch the error reports failed
// lines; with Watch, Run returns only when ctx is cancelled or the
// watcher fails.
func (m *ScriptMode) Run(ctx context.Context) error {
	if m.Watch {
		return m.watch(ctx)
	}
	lines := m.Lines
	if m.Path != "" {
		var err error
		if lines, err = readScript(m.Path); err != nil {
			return err
		}
	}
	return m.eval(ctx, lines, m.stdout())
}

func (m *ScriptMode) eval(ctx context.Context, lines []string, out io.Writer) error {
	sess := session.New(nil, out, m.NewShell(), m.Logger.With("script"))
	return runSession(sess, m.Metrics, func() error {
		return (&capability.Eval{Lines: lines}).Handle(ctx, sess)
	})
}

func readScript(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n"), nil
}

// ── watch ────────────────────────────────────────────────────────────

func (m *ScriptMode) watch(ctx context.Context) error {
	path, err := filepath.Abs(m.Path)
	if err != nil {
		return fmt.Errorf("script: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	writer := uilive.New()
	writer.Out = m.stdout()
	writer.RefreshInterval = 100 * time.Millisecond
	writer.Start()
	defer writer.Stop()

	m.Logger.Verbose("watching %s", path)
	m.rerun(ctx, path, writer)

	debounce := m.Debounce
	if debounce <= 0 {
		debounce = time.Millisecond
	}
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				m.Logger.Debug("%s", event)
				timer.Reset(debounce)
			}

		case <-timer.C:
			m.rerun(ctx, path, writer)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}

// rerun evaluates the file with a fresh engine and redraws the live
// output.
func (m *ScriptMode) rerun(ctx context.Context, path string, w *uilive.Writer) {
	lines, err := readScript(path)
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		w.Flush() //nolint:errcheck
		return
	}

	status := "ok"
	if err := m.eval(ctx, lines, w); err != nil {
		status = err.Error()
	}
	fmt.Fprintf(w, "── %s @ %s: %s\n", filepath.Base(path), time.Now().Format("15:04:05"), status)
	w.Flush() //nolint:errcheck
}
