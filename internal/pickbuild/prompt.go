package pickbuild

import (
	"bufio"
	"context"
	"io"

	"golang.org/x/term"
)

// isTerminal is a seam for tests.
var isTerminal = func(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// checkTerminal refuses a file-backed in that is not a terminal unless
// allowNonTerminal is set. Readers without a descriptor pass.
func checkTerminal(in io.Reader, allowNonTerminal bool) error {
	if f, ok := in.(interface{ Fd() uintptr }); ok && !allowNonTerminal && !isTerminal(f.Fd()) {
		return ErrNoTerminal
	}
	return nil
}

// confirm blocks until a line is read from in. EOF, a read error or a
// cancelled ctx abort the run.
func confirm(ctx context.Context, in io.Reader) error {
	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(in).ReadString('\n')
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return ErrAborted
		}
		return nil
	case <-ctx.Done():
		return ErrAborted
	}
}
