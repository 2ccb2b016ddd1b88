package logging

import (
	"testing"
)

func TestParseLine(t *testing.T) {
	line := `{"time":"2026-03-14T09:26:53Z","level":"INFO","msg":"validation passed","validator":"ownership","detail":"2 tasks"}`

	entry, ok := ParseLine(line)
	if !ok {
		t.Fatal("expected line to parse")
	}
	if entry.Level != LevelInfo {
		t.Errorf("Level = %q, want %q", entry.Level, LevelInfo)
	}
	if entry.Msg != "validation passed" {
		t.Errorf("Msg = %q", entry.Msg)
	}
	if entry.Validator != "ownership" {
		t.Errorf("Validator = %q", entry.Validator)
	}
	if entry.Extra["detail"] != "2 tasks" {
		t.Errorf("Extra[detail] = %v, want %q", entry.Extra["detail"], "2 tasks")
	}
	if _, known := entry.Extra["validator"]; known {
		t.Error("known fields should not appear in Extra")
	}
}

func TestParseLine_Invalid(t *testing.T) {
	for _, line := range []string{"", "not json", `{"other":"fields"}`} {
		if _, ok := ParseLine(line); ok {
			t.Errorf("ParseLine(%q) should not parse", line)
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   LevelDebug,
		"WARN":    LevelWarn,
		"Error":   LevelError,
		"info":    LevelInfo,
		"unknown": LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
