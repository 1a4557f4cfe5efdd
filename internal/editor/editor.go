// ABOUTME: Editor owns viewport geometry, the line store, and the cursor for one session.
// ABOUTME: Run drives the refresh, read-key, and dispatch cycle until quit or a fatal error.

package editor

import (
	"context"
	"fmt"
	"io"

	"github.com/mauromedda/kirby/internal/config"
	"github.com/mauromedda/kirby/internal/log"
	"github.com/mauromedda/kirby/internal/textbuf"
	"github.com/mauromedda/kirby/pkg/tui"
	"github.com/mauromedda/kirby/pkg/tui/input"
	"github.com/mauromedda/kirby/pkg/tui/key"
	"github.com/mauromedda/kirby/pkg/tui/terminal"
)

// Version is shown in the welcome banner and by --version.
const Version = "0.0.1"

// Cursor is the logical cursor cell, 0-indexed.
type Cursor struct {
	X, Y int
}

// Editor is the state of one viewing session.
type Editor struct {
	term     io.ReadWriter
	keys     *input.Reader
	bindings *config.Keybindings
	store    *textbuf.Store
	geom     terminal.Geometry
	cursor   Cursor
}

// Option configures an Editor.
type Option func(*Editor)

// WithKeybindings replaces the default key map.
func WithKeybindings(kb *config.Keybindings) Option {
	return func(e *Editor) { e.bindings = kb }
}

// New returns an Editor drawing store into a viewport of size geom over
// term. A nil store is treated as empty.
func New(term io.ReadWriter, geom terminal.Geometry, store *textbuf.Store, opts ...Option) *Editor {
	if store == nil {
		store = textbuf.New()
	}
	e := &Editor{
		term:     term,
		keys:     input.NewReader(term),
		bindings: config.NewKeybindings(),
		store:    store,
		geom:     geom,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cursor returns the current cursor cell.
func (e *Editor) Cursor() Cursor {
	return e.cursor
}

// Run refreshes the screen and handles keys until the quit action, a
// cancelled ctx, or an I/O failure. Quitting clears the screen and
// returns nil.
func (e *Editor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.RefreshScreen(); err != nil {
			return fmt.Errorf("refresh: %w", err)
		}

		k, err := e.keys.ReadKey()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if k.Type == key.KeyNone {
			continue
		}
		if e.ProcessKeypress(k) {
			log.Debug("quit requested")
			return e.clearScreen()
		}
	}
}

// ProcessKeypress applies the action bound to k and reports whether it
// was the quit action. Unbound keys are ignored.
func (e *Editor) ProcessKeypress(k key.Key) bool {
	action, ok := e.bindings.Resolve(k)
	if !ok {
		log.Debug("unbound key %s", k)
		return false
	}

	rows, cols := e.geom.Rows, e.geom.Cols
	switch action {
	case config.ActionQuit:
		return true
	case config.ActionCursorUp:
		e.cursor.Y--
	case config.ActionCursorDown:
		e.cursor.Y++
	case config.ActionCursorLeft:
		e.cursor.X--
	case config.ActionCursorRight:
		e.cursor.X++
	case config.ActionHome:
		e.cursor.X = 0
	case config.ActionEnd:
		e.cursor.X = cols - 1
	case config.ActionPageUp:
		e.cursor.Y -= rows
	case config.ActionPageDown:
		e.cursor.Y += rows
	}
	e.cursor.X = clamp(e.cursor.X, 0, cols-1)
	e.cursor.Y = clamp(e.cursor.Y, 0, rows-1)
	return false
}

func (e *Editor) clearScreen() error {
	buf := tui.AcquireBuffer()
	defer buf.Release()

	buf.Append(tui.SeqClearScreen)
	buf.Append(tui.SeqCursorHome)
	return buf.Flush(e.term)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
