package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitAndLevelString(t *testing.T) {
	Init("debug")
	if got := LevelString(); got != "debug" {
		t.Fatalf("LevelString() = %q, want %q", got, "debug")
	}
	Init("WARNING")
	if got := LevelString(); got != "warn" {
		t.Fatalf("LevelString() = %q, want %q", got, "warn")
	}
	Init("nonsense")
	if got := LevelString(); got != "info" {
		t.Fatalf("LevelString() = %q, want %q for unknown input", got, "info")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer restore(prev)

	Init("warn")
	defer Init("info")
	Debugf("debug-msg")
	Infof("info-msg")
	Warnf("warn-msg")
	Error("error-msg")

	out := buf.String()
	if strings.Contains(out, "debug-msg") || strings.Contains(out, "info-msg") {
		t.Fatalf("messages below warn should be suppressed: %q", out)
	}
	if !strings.Contains(out, "[WARN] warn-msg") {
		t.Fatalf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "[ERROR] error-msg") {
		t.Fatalf("error message missing: %q", out)
	}
}

func TestNamedLoggerPrefixesComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer restore(prev)
	Init("info")

	Named("bookings").Infof("admitted %s", "b-1")
	if !strings.Contains(buf.String(), "[INFO] bookings: admitted b-1") {
		t.Fatalf("unexpected line: %q", buf.String())
	}
}

func TestFatalfExits(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer restore(prev)
	code := 0
	origExit := exit
	exit = func(c int) { code = c }
	defer func() { exit = origExit }()

	Init("error")
	defer Init("info")
	Named("main").Fatalf("cannot start")
	if code != 1 || !strings.Contains(buf.String(), "[FATAL] main: cannot start") {
		t.Fatalf("unexpected fatal handling: code=%d out=%q", code, buf.String())
	}
}
