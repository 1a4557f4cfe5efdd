// ABOUTME: Resolves the file argument: tilde expansion plus Unicode-variant lookup.
// ABOUTME: Tries NFC, NFD, ASCII-space, and straight-quote spellings before giving up.

package pathutil

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// "~user" forms are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// asciiSpaces maps Unicode space characters to U+0020.
func asciiSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\u00A0', r == '\u202F', r == '\u205F', r == '\u3000':
			return ' '
		case r >= '\u2000' && r <= '\u200A':
			return ' '
		}
		return r
	}, s)
}

func straightQuotes(s string) string {
	return strings.NewReplacer("\u2018", "'", "\u2019", "'").Replace(s)
}

// Variants lists the spellings of path to try, in order, without duplicates.
// The first entry is always the path as given (after tilde expansion).
func Variants(path string) []string {
	path = ExpandHome(path)
	cands := []string{
		path,
		norm.NFC.String(path),
		norm.NFD.String(path),
		asciiSpaces(path),
		straightQuotes(path),
		norm.NFD.String(straightQuotes(path)),
	}

	seen := make(map[string]struct{}, len(cands))
	out := cands[:0]
	for _, c := range cands {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// ResolveReadPath returns the first variant of path that exists. When none
// does, it returns the expanded path and false so the caller's open fails
// with the name the user typed.
func ResolveReadPath(path string) (string, bool) {
	vs := Variants(path)
	for _, v := range vs {
		if _, err := os.Stat(v); err == nil {
			return v, true
		}
	}
	return vs[0], false
}
