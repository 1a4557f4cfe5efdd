// ABOUTME: VirtualTerminal implements Terminal for testing without a real TTY.
// ABOUTME: Plays back scripted input, captures output, and tracks raw-mode enter/exit calls.

package terminal

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// VirtualTerminal is a fake Terminal for unit tests.
// An empty input queue reads as a raw-mode timeout (0, nil) until Close.
type VirtualTerminal struct {
	mu         sync.Mutex
	out        bytes.Buffer
	in         []byte
	closed     bool
	geometry   Geometry
	geomErr    error
	restoreErr error
	rawMode    bool
	enterCount int
	exitCount  int
	writes     int
}

// NewVirtualTerminal returns a VirtualTerminal with the given viewport.
func NewVirtualTerminal(rows, cols int) *VirtualTerminal {
	return &VirtualTerminal{
		geometry: Geometry{Rows: rows, Cols: cols},
	}
}

// EnterRawMode records a raw-mode entry.
func (v *VirtualTerminal) EnterRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.rawMode {
		return ErrRawModeActive
	}
	v.rawMode = true
	v.enterCount++
	return nil
}

// RestoreMode records a raw-mode exit.
func (v *VirtualTerminal) RestoreMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.exitCount++
	if v.restoreErr != nil {
		return v.restoreErr
	}
	v.rawMode = false
	return nil
}

// Geometry returns the configured viewport.
func (v *VirtualTerminal) Geometry() (Geometry, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.geomErr != nil {
		return Geometry{}, v.geomErr
	}
	return v.geometry, nil
}

// Read hands out queued input, one call's worth at a time.
func (v *VirtualTerminal) Read(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.in) == 0 {
		if v.closed {
			return 0, io.EOF
		}
		return 0, nil
	}
	n := copy(p, v.in)
	v.in = v.in[n:]
	return n, nil
}

// Write appends data to the output buffer.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.writes++
	n, err := v.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	return n, nil
}

// --- Test helpers (not part of Terminal interface) ---

// Feed queues bytes to be returned by Read.
func (v *VirtualTerminal) Feed(data string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.in = append(v.in, data...)
}

// Close makes Read return io.EOF once the queue drains.
func (v *VirtualTerminal) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
}

// SetGeometryError makes Geometry fail with err.
func (v *VirtualTerminal) SetGeometryError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.geomErr = err
}

// SetRestoreError makes RestoreMode fail with err and leave raw mode on.
func (v *VirtualTerminal) SetRestoreError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.restoreErr = err
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.out.String()
}

// Reset clears the output buffer and the write counter.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.out.Reset()
	v.writes = 0
}

// WriteCount returns how many Write calls were made since the last Reset.
func (v *VirtualTerminal) WriteCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.writes
}

// IsRawMode reports whether raw mode is currently active.
func (v *VirtualTerminal) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rawMode
}

// EnterCount returns how many times EnterRawMode succeeded.
func (v *VirtualTerminal) EnterCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.enterCount
}

// ExitCount returns how many times RestoreMode was called.
func (v *VirtualTerminal) ExitCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.exitCount
}
