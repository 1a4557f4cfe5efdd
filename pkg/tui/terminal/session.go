// ABOUTME: Session owns the cooked/raw mode lifecycle of one terminal device.
// ABOUTME: Captures the original attributes once and reapplies them verbatim on restore.

package terminal

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// Device is the line-discipline side of a terminal: attribute get/set and
// the driver's window-size query.
type Device interface {
	Attributes() (Attributes, error)
	SetAttributes(Attributes) error
	WindowSize() (Geometry, error)
}

// Session is a Terminal backed by a Device plus the byte streams attached
// to it. The zero value is not usable; construct with NewSession or Open.
type Session struct {
	in  io.Reader
	out io.Writer
	dev Device

	mu       sync.Mutex
	orig     Attributes
	captured bool
	raw      bool
}

// NewSession returns a cooked-mode session over dev, reading from in and
// writing to out.
func NewSession(in io.Reader, out io.Writer, dev Device) *Session {
	return &Session{in: in, out: out, dev: dev}
}

// EnterRawMode snapshots the device attributes (first call only) and applies
// the raw-mode override on top of a copy.
func (s *Session) EnterRawMode() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.raw {
		return ErrRawModeActive
	}
	if !s.captured {
		attrs, err := s.dev.Attributes()
		if err != nil {
			return fmt.Errorf("tcgetattr: %w", err)
		}
		s.orig = attrs
		s.captured = true
	}

	if err := s.dev.SetAttributes(makeRaw(s.orig)); err != nil {
		return fmt.Errorf("tcsetattr: %w", err)
	}
	s.raw = true
	return nil
}

// RestoreMode reapplies the captured snapshot. It is a no-op before the
// first EnterRawMode and safe to call any number of times.
func (s *Session) RestoreMode() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.captured {
		return nil
	}
	if err := s.dev.SetAttributes(s.orig); err != nil {
		return fmt.Errorf("tcsetattr: %w", err)
	}
	s.raw = false
	return nil
}

// IsRaw reports whether the raw override is currently applied.
func (s *Session) IsRaw() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.raw
}

// Geometry discovers the viewport size, falling back to the cursor probe
// when the driver query is unavailable.
func (s *Session) Geometry() (Geometry, error) {
	return DiscoverGeometry(s.dev, s)
}

// Read reads from the device. In raw mode a read that times out after
// VTIME returns (0, nil) rather than io.EOF.
func (s *Session) Read(p []byte) (int, error) {
	n, err := s.in.Read(p)
	if n == 0 && errors.Is(err, io.EOF) {
		return 0, nil
	}
	return n, err
}

// Write writes p to the device in a single call.
func (s *Session) Write(p []byte) (int, error) {
	return s.out.Write(p)
}
