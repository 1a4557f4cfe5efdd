// ABOUTME: BSD and darwin termios ioctl requests for the tty Device.
// ABOUTME: Attributes are set with drain semantics so pending typeahead survives.

//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlGetAttr = unix.TIOCGETA
	ioctlSetAttr = unix.TIOCSETAW
)
