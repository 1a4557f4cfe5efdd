// ABOUTME: Tests for RestoreOnPanic recovery with an injected exit function
// ABOUTME: Verifies panics release the guard, show the cursor, and exit with code 1

package terminal

import (
	"strings"
	"testing"
)

func TestRestoreOnPanic_CatchesPanic(t *testing.T) {
	t.Parallel()

	vt := NewVirtualTerminal(24, 80)
	exitCode := -1
	g, err := Acquire(vt, WithSignals(), WithExit(func(code int) { exitCode = code }))
	if err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer RestoreOnPanic(g)
		panic("test panic")
	}()
	<-done

	if exitCode != 1 {
		t.Errorf("exit code = %d, want 1", exitCode)
	}
	if vt.IsRawMode() {
		t.Error("expected terminal restored on panic")
	}
	if !strings.Contains(vt.Output(), "\x1b[?25h") {
		t.Error("expected show-cursor sequence on panic")
	}
}

func TestRestoreOnPanic_NoPanic(t *testing.T) {
	t.Parallel()

	vt := NewVirtualTerminal(24, 80)
	exitCode := -1
	g, err := Acquire(vt, WithSignals(), WithExit(func(code int) { exitCode = code }))
	if err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer RestoreOnPanic(g)
		// no panic: normal return
	}()
	<-done

	if exitCode != -1 {
		t.Errorf("exit called with %d without a panic", exitCode)
	}
	if !vt.IsRawMode() {
		t.Error("guard released without a panic")
	}
}
