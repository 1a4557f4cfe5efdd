// ABOUTME: Pre-allocated ANSI/VT100 control sequences used to compose frames
// ABOUTME: Cursor visibility, addressing, line erase, and screen clear

package tui

// Control sequences emitted by the renderer. Treat as read-only.
var (
	SeqCSI = []byte("\x1b[")

	SeqHideCursor  = []byte("\x1b[?25l")
	SeqShowCursor  = []byte("\x1b[?25h")
	SeqCursorHome  = []byte("\x1b[H")
	SeqEraseLine   = []byte("\x1b[K")
	SeqClearScreen = []byte("\x1b[2J")
	SeqLineBreak   = []byte("\r\n")
)
