package capability

import "context"

type lineResult struct {
	line string
	err  error
}

// readLine calls read on its own goroutine and waits for it or for
// ctx, whichever comes first.  A read left blocked by cancellation
// finishes when the underlying stream is closed.  Callers must stop
// reading once ctx is done.
func readLine(ctx context.Context, read func() (string, error)) (string, error) {
	res := make(chan lineResult, 1)
	go func() {
		line, err := read()
		res <- lineResult{line, err}
	}()

	select {
	case r := <-res:
		return r.line, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
