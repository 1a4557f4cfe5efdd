// ABOUTME: Linux termios ioctl requests for the tty Device.
// ABOUTME: Attributes are set with drain semantics so pending typeahead survives.

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlGetAttr = unix.TCGETS
	ioctlSetAttr = unix.TCSETSW
)
