// ABOUTME: Tests for environment variable expansion in config
// ABOUTME: Validates ${VAR} replacement for set, unset, and embedded patterns

package config

import "testing"

func TestExpandEnv_Set(t *testing.T) {
	t.Setenv("KIRBY_LEVEL", "debug")
	if got := expandEnv("${KIRBY_LEVEL}"); got != "debug" {
		t.Errorf("expandEnv = %q; want %q", got, "debug")
	}
}

func TestExpandEnv_Unset(t *testing.T) {
	if got := expandEnv("${DEFINITELY_NOT_SET_12345}"); got != "" {
		t.Errorf("expandEnv = %q; want empty for unset var", got)
	}
}

func TestExpandEnv_Embedded(t *testing.T) {
	t.Setenv("KIRBY_STATE", "/var/state")
	if got := expandEnv("${KIRBY_STATE}/kirby.log"); got != "/var/state/kirby.log" {
		t.Errorf("expandEnv = %q; want %q", got, "/var/state/kirby.log")
	}
}

func TestExpandEnv_NoPattern(t *testing.T) {
	if got := expandEnv("plain $HOME string"); got != "plain $HOME string" {
		t.Errorf("expandEnv = %q; bare $VAR must be left alone", got)
	}
}
