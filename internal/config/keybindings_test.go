// ABOUTME: Tests for default keybindings, overrides, and key resolution

package config

import (
	"strings"
	"testing"

	"github.com/mauromedda/kirby/pkg/tui/key"
)

func TestKeybindings_Defaults(t *testing.T) {
	t.Parallel()

	kb := NewKeybindings()
	for _, action := range allActions {
		if len(kb.GetBindings(action)) == 0 {
			t.Errorf("expected default bindings for %s", action)
		}
	}
}

func TestKeybindings_Resolve(t *testing.T) {
	t.Parallel()

	kb := NewKeybindings()
	tests := []struct {
		input string
		want  KeyAction
		ok    bool
	}{
		{"\x1b[A", ActionCursorUp, true},
		{"\x1b[B", ActionCursorDown, true},
		{"\x1b[D", ActionCursorLeft, true},
		{"\x1b[C", ActionCursorRight, true},
		{"\x1b[H", ActionHome, true},
		{"\x1b[4~", ActionEnd, true},
		{"\x1b[5~", ActionPageUp, true},
		{"\x1b[6~", ActionPageDown, true},
		{"\x11", ActionQuit, true},
		{"\x10", ActionCursorUp, true},
		{"x", "", false},
		{"\x00", "", false},
	}

	for _, tt := range tests {
		got, ok := kb.Resolve(key.ParseKey(tt.input))
		if ok != tt.ok || got != tt.want {
			t.Errorf("Resolve(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKeybindings_Apply(t *testing.T) {
	t.Parallel()

	kb := NewKeybindings()
	err := kb.Apply(map[string][]string{
		"quit":     {"Ctrl+X", "q"},
		"pageDown": {"ctrl+f", "pgdown"},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if a, ok := kb.Resolve(key.ParseKey("\x18")); !ok || a != ActionQuit {
		t.Errorf("ctrl+x resolved to %q, %v; want quit", a, ok)
	}
	if a, ok := kb.Resolve(key.ParseKey("q")); !ok || a != ActionQuit {
		t.Errorf("q resolved to %q, %v; want quit", a, ok)
	}
	if _, ok := kb.Resolve(key.ParseKey("\x11")); ok {
		t.Error("ctrl+q should no longer be bound after override")
	}
	if a, _ := kb.Resolve(key.ParseKey("\x06")); a != ActionPageDown {
		t.Errorf("ctrl+f resolved to %q; want pageDown", a)
	}
	for _, k := range kb.GetBindings(ActionCursorRight) {
		if k == "ctrl+f" {
			t.Error("ctrl+f still listed under cursorRight")
		}
	}
}

func TestKeybindings_ApplyErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		overrides map[string][]string
		want      string
	}{
		{"unknown action", map[string][]string{"save": {"ctrl+s"}}, "unknown action"},
		{"conflict", map[string][]string{"quit": {"q"}, "home": {"q"}}, "bound to both"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := NewKeybindings().Apply(tt.overrides)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Apply error = %v; want containing %q", err, tt.want)
			}
		})
	}
}

func TestNormalizeKeyName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		" Ctrl+Q ": "ctrl+q",
		"PgUp":     "pgup",
		"K":        "K",
		"k":        "k",
	}
	for in, want := range tests {
		if got := normalizeKeyName(in); got != want {
			t.Errorf("normalizeKeyName(%q) = %q; want %q", in, got, want)
		}
	}
}
