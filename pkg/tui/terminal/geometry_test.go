// ABOUTME: Tests for cursor-position report parsing and geometry discovery fallback.
// ABOUTME: Drives the protocol through an in-memory device that replays canned responses.

package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// scriptedDevice replays a canned terminal response and records writes.
type scriptedDevice struct {
	response *bytes.Reader
	written  bytes.Buffer
	shortBy  int
}

func newScriptedDevice(response string) *scriptedDevice {
	return &scriptedDevice{response: bytes.NewReader([]byte(response))}
}

func (d *scriptedDevice) Read(p []byte) (int, error) {
	return d.response.Read(p)
}

func (d *scriptedDevice) Write(p []byte) (int, error) {
	n := len(p) - d.shortBy
	if n < 0 {
		n = 0
	}
	d.written.Write(p[:n])
	return n, nil
}

type fixedSizer struct {
	g   Geometry
	err error
}

func (s fixedSizer) WindowSize() (Geometry, error) { return s.g, s.err }

func TestQueryCursorPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		wantRow  int
		wantCol  int
		wantErr  error
	}{
		{name: "standard report", response: "\x1b[24;80R", wantRow: 24, wantCol: 80},
		{name: "single digits", response: "\x1b[1;1R", wantRow: 1, wantCol: 1},
		{name: "large viewport", response: "\x1b[120;400R", wantRow: 120, wantCol: 400},
		{name: "extra parameter ignored", response: "\x1b[24;80;1R", wantRow: 24, wantCol: 80},
		{name: "trailing bytes ignored", response: "\x1b[24;80xR", wantRow: 24, wantCol: 80},
		{name: "leading blanks", response: "\x1b[ 24; 80R", wantRow: 24, wantCol: 80},
		{name: "missing row", response: "\x1b[;80R", wantErr: ErrMalformedReport},
		{name: "missing column", response: "\x1b[24;R", wantErr: ErrMalformedReport},
		{name: "blank before separator", response: "\x1b[24 ;80R", wantErr: ErrMalformedReport},
		{name: "missing integers", response: "\x1b[R", wantErr: ErrMalformedReport},
		{name: "one integer", response: "\x1b[24R", wantErr: ErrMalformedReport},
		{name: "non-numeric", response: "\x1b[a;bR", wantErr: ErrMalformedReport},
		{name: "bad escape", response: "x[24;80R", wantErr: ErrMalformedReport},
		{name: "bad bracket", response: "\x1bO24;80R", wantErr: ErrMalformedReport},
		{name: "terminator only", response: "R", wantErr: ErrMalformedReport},
		{name: "no terminator", response: "\x1b[24;80", wantErr: ErrNoReportTerminator},
		{name: "empty response", response: "", wantErr: ErrNoReportTerminator},
		{name: "overlong response", response: "\x1b[" + strings.Repeat("9", 40) + ";80R", wantErr: ErrNoReportTerminator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dev := newScriptedDevice(tt.response)

			row, col, err := QueryCursorPosition(dev)
			if got := dev.written.String(); got != "\x1b[6n" {
				t.Errorf("wrote %q, want %q", got, "\x1b[6n")
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("QueryCursorPosition() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("QueryCursorPosition() unexpected error: %v", err)
			}
			if row != tt.wantRow || col != tt.wantCol {
				t.Errorf("QueryCursorPosition() = (%d, %d), want (%d, %d)", row, col, tt.wantRow, tt.wantCol)
			}
		})
	}
}

func TestQueryCursorPosition_ReportAtCapacity(t *testing.T) {
	t.Parallel()

	// ESC [ + 27-digit row ; 1 R is exactly MaxReportLen bytes.
	report := "\x1b[" + strings.Repeat("0", 26) + "7;1R"
	if len(report) != MaxReportLen {
		t.Fatalf("test report is %d bytes, want %d", len(report), MaxReportLen)
	}

	row, col, err := QueryCursorPosition(newScriptedDevice(report))
	if err != nil {
		t.Fatalf("QueryCursorPosition() unexpected error: %v", err)
	}
	if row != 7 || col != 1 {
		t.Errorf("QueryCursorPosition() = (%d, %d), want (7, 1)", row, col)
	}
}

func TestQueryCursorPosition_StopsAtTerminator(t *testing.T) {
	t.Parallel()

	dev := newScriptedDevice("\x1b[5;7Rxyz")
	if _, _, err := QueryCursorPosition(dev); err != nil {
		t.Fatalf("QueryCursorPosition() unexpected error: %v", err)
	}
	if dev.response.Len() != 3 {
		t.Errorf("consumed past terminator: %d bytes left, want 3", dev.response.Len())
	}
}

func TestQueryCursorPosition_ShortWrite(t *testing.T) {
	t.Parallel()

	dev := newScriptedDevice("\x1b[24;80R")
	dev.shortBy = 1

	if _, _, err := QueryCursorPosition(dev); !errors.Is(err, ErrShortWrite) {
		t.Fatalf("QueryCursorPosition() error = %v, want ErrShortWrite", err)
	}
	if dev.response.Len() != len("\x1b[24;80R") {
		t.Error("response read despite failed request")
	}
}

func TestDiscoverGeometry_Ioctl(t *testing.T) {
	t.Parallel()

	dev := newScriptedDevice("")
	g, err := DiscoverGeometry(fixedSizer{g: Geometry{Rows: 24, Cols: 80}}, dev)
	if err != nil {
		t.Fatalf("DiscoverGeometry() unexpected error: %v", err)
	}
	if g != (Geometry{Rows: 24, Cols: 80}) {
		t.Errorf("DiscoverGeometry() = %+v, want 24x80", g)
	}
	if dev.written.Len() != 0 {
		t.Errorf("primary path wrote %q to the device", dev.written.String())
	}
}

func TestDiscoverGeometry_Fallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		sizer fixedSizer
	}{
		{name: "ioctl unsupported", sizer: fixedSizer{err: errors.New("operation not supported")}},
		{name: "zero columns", sizer: fixedSizer{g: Geometry{Rows: 24, Cols: 0}}},
		{name: "zero everything", sizer: fixedSizer{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dev := newScriptedDevice("\x1b[33;101R")

			g, err := DiscoverGeometry(tt.sizer, dev)
			if err != nil {
				t.Fatalf("DiscoverGeometry() unexpected error: %v", err)
			}
			if g != (Geometry{Rows: 33, Cols: 101}) {
				t.Errorf("DiscoverGeometry() = %+v, want 33x101", g)
			}
			if want := "\x1b[999C\x1b[999B\x1b[6n"; dev.written.String() != want {
				t.Errorf("wrote %q, want %q", dev.written.String(), want)
			}
		})
	}
}

func TestDiscoverGeometry_Failures(t *testing.T) {
	t.Parallel()

	unsupported := fixedSizer{err: errors.New("operation not supported")}

	tests := []struct {
		name     string
		response string
		shortBy  int
		wantErr  error
	}{
		{name: "malformed report", response: "\x1b[R", wantErr: ErrMalformedReport},
		{name: "no report", response: "", wantErr: ErrNoReportTerminator},
		{name: "degenerate report", response: "\x1b[0;0R", wantErr: ErrMalformedReport},
		{name: "short probe write", response: "\x1b[24;80R", shortBy: 3, wantErr: ErrShortWrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dev := newScriptedDevice(tt.response)
			dev.shortBy = tt.shortBy

			_, err := DiscoverGeometry(unsupported, dev)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("DiscoverGeometry() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.HasPrefix(err.Error(), "getWindowSize:") {
				t.Errorf("error %q not tagged with getWindowSize", err)
			}
		})
	}
}
