// ABOUTME: termios-backed Attributes and the tty Device for Unix platforms.
// ABOUTME: Uses golang.org/x/sys/unix ioctls for attribute and window-size access.

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Attributes is an opaque snapshot of the device's line discipline.
type Attributes struct {
	termios unix.Termios
}

// makeRaw derives the raw-mode attribute set from a copy of a.
//
// Reads return after at most one tenth of a second (VMIN=0, VTIME=1), even
// when no byte has arrived.
func makeRaw(a Attributes) Attributes {
	t := a.termios
	t.Oflag &^= unix.OPOST
	t.Iflag &^= unix.IXON | unix.ICRNL | unix.BRKINT | unix.INPCK | unix.ISTRIP
	t.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag |= unix.CS8
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 1
	return Attributes{termios: t}
}

// ttyDevice applies attributes to the input fd and queries size on the
// output fd.
type ttyDevice struct {
	inFd  int
	outFd int
}

func (d ttyDevice) Attributes() (Attributes, error) {
	t, err := unix.IoctlGetTermios(d.inFd, ioctlGetAttr)
	if err != nil {
		return Attributes{}, err
	}
	return Attributes{termios: *t}, nil
}

func (d ttyDevice) SetAttributes(a Attributes) error {
	return unix.IoctlSetTermios(d.inFd, ioctlSetAttr, &a.termios)
}

func (d ttyDevice) WindowSize() (Geometry, error) {
	ws, err := unix.IoctlGetWinsize(d.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return Geometry{}, err
	}
	return Geometry{Rows: int(ws.Row), Cols: int(ws.Col)}, nil
}

// Open returns a cooked-mode Session over the given tty streams,
// typically os.Stdin and os.Stdout.
func Open(in, out *os.File) (*Session, error) {
	inFd := int(in.Fd())
	if !term.IsTerminal(inFd) {
		return nil, fmt.Errorf("tcgetattr: %w", ErrNotTerminal)
	}
	dev := ttyDevice{inFd: inFd, outFd: int(out.Fd())}
	return NewSession(in, out, dev), nil
}
