// ABOUTME: Stub Attributes and Open for platforms without termios.
// ABOUTME: Open always fails with ErrUnsupported.

//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

import "os"

// Attributes is empty where termios is unavailable.
type Attributes struct{}

func makeRaw(a Attributes) Attributes { return a }

// Open is unsupported on this platform.
func Open(in, out *os.File) (*Session, error) {
	return nil, ErrUnsupported
}
