// ABOUTME: Defines the Key type and ParseKey for raw terminal keyboard input.
// ABOUTME: Handles printable runes, Ctrl+letter bytes, and delegates escape sequences to the legacy table.

package key

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Key represents a parsed keyboard input event.
type Key struct {
	Type  KeyType
	Rune  rune // For KeyRune, including Ctrl/Alt chords
	Alt   bool
	Ctrl  bool
	Shift bool
}

// KeyType enumerates the kinds of key events the editor can receive.
type KeyType int

const (
	KeyNone      KeyType = iota // No input before the read timeout
	KeyRune                     // Printable character or Ctrl/Alt chord
	KeyEnter                    // Enter / Return
	KeyTab                      // Tab
	KeyBackTab                  // Shift+Tab
	KeyBackspace                // Backspace / DEL (0x7F)
	KeyDelete                   // Delete key
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyHome                     // Home
	KeyEnd                      // End
	KeyPageUp                   // Page Up
	KeyPageDown                 // Page Down
	KeyEscape                   // Escape
	KeyUnknown                  // Unrecognized input
)

// CtrlByte returns the byte a terminal sends for Ctrl+r, mirroring the
// 0x1f mask applied by the keyboard driver.
func CtrlByte(r rune) byte {
	return byte(r) & 0x1f
}

// ParseKey parses raw terminal input data into a Key.
// It handles single bytes, UTF-8 runes, and escape sequences.
func ParseKey(data string) Key {
	if len(data) == 0 {
		return Key{Type: KeyNone}
	}

	// Single-byte fast path
	if len(data) == 1 {
		return parseSingleByte(data[0])
	}

	// Escape sequence path
	if data[0] == 0x1b {
		return parseEscapeSequence(data)
	}

	// Multi-byte UTF-8 rune
	r, size := utf8.DecodeRuneInString(data)
	if r == utf8.RuneError || size != len(data) {
		return Key{Type: KeyUnknown}
	}
	return Key{Type: KeyRune, Rune: r}
}

// parseSingleByte handles a single-byte input (ASCII or control character).
func parseSingleByte(b byte) Key {
	switch {
	case b == 0x0d:
		return Key{Type: KeyEnter}
	case b == 0x09:
		return Key{Type: KeyTab}
	case b == 0x7f, b == 0x08:
		return Key{Type: KeyBackspace}
	case b == 0x1b:
		return Key{Type: KeyEscape}
	case b >= 0x20 && b <= 0x7e:
		return Key{Type: KeyRune, Rune: rune(b)}
	case b >= 0x01 && b <= 0x1a:
		return Key{Type: KeyRune, Rune: rune('a' + b - 1), Ctrl: true}
	}
	return Key{Type: KeyUnknown}
}

// parseEscapeSequence resolves ESC-prefixed data through the legacy table.
func parseEscapeSequence(data string) Key {
	if k, ok := legacySequences[data]; ok {
		return k
	}

	// Alt+letter: ESC followed by a single printable byte (0x20..0x7e)
	if len(data) == 2 && data[1] >= 0x20 && data[1] <= 0x7e {
		return Key{Type: KeyRune, Rune: rune(data[1]), Alt: true}
	}

	return Key{Type: KeyUnknown}
}

// keyTypeNames maps each non-rune KeyType to its human-readable label
// and its binding name as written in the config file.
var keyTypeNames = map[KeyType]struct{ label, binding string }{
	KeyNone:      {"None", ""},
	KeyEnter:     {"Enter", "enter"},
	KeyTab:       {"Tab", "tab"},
	KeyBackTab:   {"BackTab", "shift+tab"},
	KeyBackspace: {"Backspace", "backspace"},
	KeyDelete:    {"Delete", "delete"},
	KeyUp:        {"Up", "up"},
	KeyDown:      {"Down", "down"},
	KeyLeft:      {"Left", "left"},
	KeyRight:     {"Right", "right"},
	KeyHome:      {"Home", "home"},
	KeyEnd:       {"End", "end"},
	KeyPageUp:    {"PageUp", "pgup"},
	KeyPageDown:  {"PageDown", "pgdown"},
	KeyEscape:    {"Escape", "escape"},
	KeyUnknown:   {"Unknown", ""},
}

// String returns a human-readable representation of the Key for debug display.
func (k Key) String() string {
	if k.Type == KeyRune {
		return formatRuneKey(k)
	}
	if name, ok := keyTypeNames[k.Type]; ok {
		return name.label
	}
	return "Unknown"
}

// Binding returns the lowercase name used for k in keybinding config,
// e.g. "up", "k", "ctrl+q", "alt+x". Unbindable keys return "".
func (k Key) Binding() string {
	if k.Type != KeyRune {
		return keyTypeNames[k.Type].binding
	}
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl+")
	}
	if k.Alt {
		b.WriteString("alt+")
	}
	b.WriteRune(k.Rune)
	return b.String()
}

// formatRuneKey builds a display string for rune keys with modifiers.
func formatRuneKey(k Key) string {
	s := string(k.Rune)
	if k.Ctrl {
		s = fmt.Sprintf("Ctrl+%s", strings.ToUpper(s))
	}
	if k.Alt {
		s = fmt.Sprintf("Alt+%s", s)
	}
	return s
}
