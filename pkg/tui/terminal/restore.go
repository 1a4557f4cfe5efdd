// ABOUTME: RestoreOnPanic recovers from panics, releases the raw-mode guard, and prints the stack trace.
// ABOUTME: Intended for use as a deferred call in the goroutine that owns the terminal.

package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
)

// RestoreOnPanic should be deferred right after Acquire. On panic it shows
// the cursor, releases the guard, prints the panic value and stack trace,
// then exits with code 1.
func RestoreOnPanic(g *Guard) {
	r := recover()
	if r == nil {
		return
	}

	exit := os.Exit
	if g != nil {
		// Best-effort: the frame may have been cut while the cursor was hidden.
		_, _ = g.term.Write(seqShowCursor)
		_ = g.Release()
		exit = g.exit
	}

	fmt.Fprintf(os.Stderr, "\r\npanic: %v\n\n%s\n", r, debug.Stack())
	exit(1)
}
