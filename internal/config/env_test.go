package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("INVADERS_TEST_STR", "value")
	if got := GetEnv("INVADERS_TEST_STR", "fallback"); got != "value" {
		t.Errorf("GetEnv = %q", got)
	}
	if got := GetEnv("INVADERS_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv unset = %q", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("INVADERS_TEST_BOOL", "true")
	if !GetEnvBool("INVADERS_TEST_BOOL", false) {
		t.Error("expected true")
	}
	t.Setenv("INVADERS_TEST_BOOL", "nope")
	if !GetEnvBool("INVADERS_TEST_BOOL", true) {
		t.Error("malformed value should use fallback")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("INVADERS_TEST_INT", "2222")
	if got := GetEnvInt("INVADERS_TEST_INT", 1); got != 2222 {
		t.Errorf("GetEnvInt = %d", got)
	}
	t.Setenv("INVADERS_TEST_INT", "x")
	if got := GetEnvInt("INVADERS_TEST_INT", 1); got != 1 {
		t.Errorf("malformed GetEnvInt = %d", got)
	}
}
