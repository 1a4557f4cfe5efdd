// ABOUTME: Viewport discovery: window-size ioctl with a cursor-probe fallback.
// ABOUTME: Implements the ESC[6n cursor-position query and report parsing.

package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	seqQueryCursor = []byte("\x1b[6n")

	// Cursor motion clamps at the viewport edge, so moving 999 right and
	// 999 down lands on the bottom-right cell.
	seqProbeCorner = []byte("\x1b[999C\x1b[999B")

	seqShowCursor = []byte("\x1b[?25h")
)

// WindowSizer reports the viewport size as known to the device driver.
type WindowSizer interface {
	WindowSize() (Geometry, error)
}

// DiscoverGeometry asks the driver for the window size. If the query fails
// or reports a degenerate size, it moves the cursor to the bottom-right
// corner and reads the position back over rw.
func DiscoverGeometry(sizer WindowSizer, rw io.ReadWriter) (Geometry, error) {
	g, err := sizer.WindowSize()
	if err == nil && g.Valid() {
		return g, nil
	}

	if err := writeSequence(rw, seqProbeCorner); err != nil {
		return Geometry{}, fmt.Errorf("getWindowSize: %w", err)
	}
	rows, cols, err := QueryCursorPosition(rw)
	if err != nil {
		return Geometry{}, fmt.Errorf("getWindowSize: %w", err)
	}

	g = Geometry{Rows: rows, Cols: cols}
	if !g.Valid() {
		return Geometry{}, fmt.Errorf("getWindowSize: %w: %dx%d", ErrMalformedReport, rows, cols)
	}
	return g, nil
}

// QueryCursorPosition requests a cursor-position report and returns the
// 1-indexed row and column the terminal answers with.
func QueryCursorPosition(rw io.ReadWriter) (row, col int, err error) {
	if err := writeSequence(rw, seqQueryCursor); err != nil {
		return 0, 0, err
	}

	var buf [MaxReportLen]byte
	n := 0
	for n < len(buf) {
		m, rerr := rw.Read(buf[n : n+1])
		if m != 1 {
			if rerr != nil {
				return 0, 0, fmt.Errorf("%w: %w", ErrNoReportTerminator, rerr)
			}
			return 0, 0, ErrNoReportTerminator
		}
		if buf[n] == 'R' {
			return parseCursorReport(buf[:n])
		}
		n++
	}
	return 0, 0, ErrNoReportTerminator
}

// parseCursorReport parses "ESC [ row ; col" (terminator already removed).
// Like a "%d;%d" scan, each number may follow blanks and carry a sign, and
// bytes after the column are ignored.
func parseCursorReport(report []byte) (row, col int, err error) {
	if len(report) < 2 || report[0] != 0x1b || report[1] != '[' {
		return 0, 0, ErrMalformedReport
	}

	row, rest, ok := scanInt(string(report[2:]))
	if !ok || !strings.HasPrefix(rest, ";") {
		return 0, 0, ErrMalformedReport
	}
	col, _, ok = scanInt(rest[1:])
	if !ok {
		return 0, 0, ErrMalformedReport
	}
	return row, col, nil
}

// scanInt reads an optionally signed decimal after leading blanks and
// returns the unread remainder.
func scanInt(s string) (int, string, bool) {
	s = strings.TrimLeft(s, " \t")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, s, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, s, false
	}
	return n, s[end:], true
}

// writeSequence writes seq in one call and treats anything short of the
// full length as a failure.
func writeSequence(w io.Writer, seq []byte) error {
	n, err := w.Write(seq)
	if n != len(seq) {
		if err != nil {
			return fmt.Errorf("%w: %w", ErrShortWrite, err)
		}
		return ErrShortWrite
	}
	return err
}
