// ABOUTME: Keybindings: default key names per action plus YAML overrides
// ABOUTME: Resolve maps a parsed key event to the action bound to it

package config

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/mauromedda/kirby/pkg/tui/key"
)

// KeyAction represents an action that can be bound to keys
type KeyAction string

const (
	ActionCursorUp    KeyAction = "cursorUp"
	ActionCursorDown  KeyAction = "cursorDown"
	ActionCursorLeft  KeyAction = "cursorLeft"
	ActionCursorRight KeyAction = "cursorRight"
	ActionHome        KeyAction = "home"
	ActionEnd         KeyAction = "end"
	ActionPageUp      KeyAction = "pageUp"
	ActionPageDown    KeyAction = "pageDown"
	ActionQuit        KeyAction = "quit"
)

// allActions fixes iteration order so lookups build deterministically.
var allActions = []KeyAction{
	ActionCursorUp, ActionCursorDown, ActionCursorLeft, ActionCursorRight,
	ActionHome, ActionEnd, ActionPageUp, ActionPageDown, ActionQuit,
}

// Keybindings maps actions to key names as produced by key.Key.Binding.
type Keybindings struct {
	Bindings map[KeyAction][]string
	lookup   map[string]KeyAction
}

// NewKeybindings creates a new Keybindings with default bindings
func NewKeybindings() *Keybindings {
	kb := &Keybindings{
		Bindings: map[KeyAction][]string{
			ActionCursorUp:    {"up", "ctrl+p"},
			ActionCursorDown:  {"down", "ctrl+n"},
			ActionCursorLeft:  {"left", "ctrl+b"},
			ActionCursorRight: {"right", "ctrl+f"},
			ActionHome:        {"home", "ctrl+a"},
			ActionEnd:         {"end", "ctrl+e"},
			ActionPageUp:      {"pgup"},
			ActionPageDown:    {"pgdown"},
			ActionQuit:        {"ctrl+q"},
		},
	}
	kb.rebuild()
	return kb
}

// Apply replaces the bindings of each action named in overrides. A key
// claimed by an override is removed from the default action that held it.
func (kb *Keybindings) Apply(overrides map[string][]string) error {
	claimed := make(map[string]KeyAction)
	for name, keys := range overrides {
		action := KeyAction(name)
		if !slices.Contains(allActions, action) {
			return fmt.Errorf("keybindings: unknown action %q", name)
		}
		norm := make([]string, 0, len(keys))
		for _, k := range keys {
			k = normalizeKeyName(k)
			if prev, dup := claimed[k]; dup && prev != action {
				return fmt.Errorf("keybindings: %q bound to both %s and %s", k, prev, action)
			}
			claimed[k] = action
			norm = append(norm, k)
		}
		kb.Bindings[action] = norm
	}

	for _, action := range allActions {
		if _, overridden := overrides[string(action)]; overridden {
			continue
		}
		kb.Bindings[action] = slices.DeleteFunc(slices.Clone(kb.Bindings[action]), func(k string) bool {
			_, taken := claimed[k]
			return taken
		})
	}

	kb.rebuild()
	return nil
}

// Resolve returns the action bound to k.
func (kb *Keybindings) Resolve(k key.Key) (KeyAction, bool) {
	name := k.Binding()
	if name == "" {
		return "", false
	}
	action, ok := kb.lookup[name]
	return action, ok
}

// GetBindings returns the bindings for an action
func (kb *Keybindings) GetBindings(action KeyAction) []string {
	if kb == nil {
		return nil
	}
	return kb.Bindings[action]
}

func (kb *Keybindings) rebuild() {
	kb.lookup = make(map[string]KeyAction)
	for _, action := range allActions {
		for _, k := range kb.Bindings[action] {
			kb.lookup[normalizeKeyName(k)] = action
		}
	}
}

// normalizeKeyName lowercases named keys. Single characters keep their
// case so "K" and "k" stay distinct.
func normalizeKeyName(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= 1 {
		return s
	}
	return strings.ToLower(s)
}
