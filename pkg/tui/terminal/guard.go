// ABOUTME: Guard scopes raw mode to a lifetime: Acquire enters it, Release restores it once.
// ABOUTME: A signal watcher releases the guard before the process dies from SIGINT/SIGTERM/SIGHUP/SIGQUIT.

package terminal

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var defaultSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT}

// Guard holds a Terminal in raw mode until Release.
type Guard struct {
	term Terminal

	once sync.Once
	err  error

	signals  []os.Signal
	sigCh    chan os.Signal
	stopCh   chan struct{}
	doneCh   chan struct{}
	onSignal func(os.Signal)
	exit     func(code int)
	errOut   io.Writer
}

// GuardOption configures Acquire.
type GuardOption func(*Guard)

// WithSignals replaces the set of signals that trigger restoration.
// Passing none disables the watcher.
func WithSignals(sigs ...os.Signal) GuardOption {
	return func(g *Guard) { g.signals = sigs }
}

// WithSignalHook registers fn to run when a watched signal arrives,
// before the terminal is restored.
func WithSignalHook(fn func(os.Signal)) GuardOption {
	return func(g *Guard) { g.onSignal = fn }
}

// WithExit overrides os.Exit for the signal and panic paths.
func WithExit(fn func(code int)) GuardOption {
	return func(g *Guard) { g.exit = fn }
}

// Acquire puts t into raw mode and starts the signal watcher.
func Acquire(t Terminal, opts ...GuardOption) (*Guard, error) {
	g := &Guard{
		term:    t,
		signals: defaultSignals,
		sigCh:   make(chan os.Signal, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		exit:    os.Exit,
		errOut:  os.Stderr,
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := t.EnterRawMode(); err != nil {
		return nil, err
	}
	g.watch()
	return g, nil
}

// Release stops the signal watcher and restores the terminal. Only the
// first call has any effect; later calls return the first result.
func (g *Guard) Release() error {
	g.once.Do(func() {
		if len(g.signals) > 0 {
			signal.Stop(g.sigCh)
		}
		close(g.stopCh)
		g.err = g.term.RestoreMode()
	})
	return g.err
}

func (g *Guard) watch() {
	if len(g.signals) == 0 {
		close(g.doneCh)
		return
	}
	signal.Notify(g.sigCh, g.signals...)

	go func() {
		defer close(g.doneCh)
		select {
		case <-g.stopCh:
		case sig := <-g.sigCh:
			if g.onSignal != nil {
				g.onSignal(sig)
			}
			// The signal may have cut a frame while the cursor was hidden.
			_, _ = g.term.Write(seqShowCursor)
			if err := g.Release(); err != nil {
				fmt.Fprintf(g.errOut, "\r\nrestoring terminal after %s: %v\n", sig, err)
			}
			g.exit(signalExitCode(sig))
		}
	}()
}

// signalExitCode follows the shell convention of 128 plus the signal number.
func signalExitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}
