package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{
		"DEBUG": DebugLevel, " warn ": WarnLevel, "error": ErrorLevel, "": InfoLevel, "verbose": InfoLevel,
	} {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestComponentWritesJSONAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: WarnLevel, Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true}) })

	log := Component("watchlist")
	log.Info().Msg("dropped")
	log.Warn().Str("guest", "g1").Msg("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if entry["component"] != "watchlist" || entry["message"] != "kept" || entry["guest"] != "g1" {
		t.Errorf("entry = %v", entry)
	}
}
