// ABOUTME: Defines the Terminal interface, viewport Geometry, and session error values.
// ABOUTME: Abstracts raw-mode control so the editor can target real or virtual terminals.

package terminal

import (
	"errors"
	"io"
)

// Terminal abstracts the device the editor draws on: raw-mode transitions,
// viewport geometry, and byte-level I/O.
type Terminal interface {
	io.ReadWriter
	EnterRawMode() error
	RestoreMode() error
	Geometry() (Geometry, error)
}

// Geometry is the viewport size in character cells.
type Geometry struct {
	Rows int
	Cols int
}

// Valid reports whether both dimensions are positive.
func (g Geometry) Valid() bool {
	return g.Rows > 0 && g.Cols > 0
}

// MaxReportLen caps the cursor-position report read back from the terminal.
// A response that does not terminate within this many bytes is a protocol
// error.
const MaxReportLen = 32

var (
	// ErrNotTerminal is returned by Open when stdin is not a tty.
	ErrNotTerminal = errors.New("stdin is not a terminal")

	// ErrUnsupported is returned on platforms without termios.
	ErrUnsupported = errors.New("terminal control not supported on this platform")

	// ErrRawModeActive is returned by EnterRawMode when the session is already raw.
	ErrRawModeActive = errors.New("raw mode already active")

	// ErrShortWrite is returned when a control sequence is only partially written.
	ErrShortWrite = errors.New("short write of control sequence")

	// ErrNoReportTerminator is returned when the cursor report has no 'R'
	// within MaxReportLen bytes or before input runs dry.
	ErrNoReportTerminator = errors.New("cursor position report not terminated")

	// ErrMalformedReport is returned when the cursor report fails validation.
	ErrMalformedReport = errors.New("malformed cursor position report")
)
