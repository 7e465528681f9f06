package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")
	logger.Debug("hidden")
	logger.Info("shown", "table", "person")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if entry["msg"] != "shown" || entry["table"] != "person" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestWithFieldsCarriesRunID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(New(&buf, "debug", "text"))
	defer slog.SetDefault(prev)

	ctx := WithRunID(context.Background(), "run-1")
	if RunID(ctx) != "run-1" {
		t.Fatalf("RunID() = %q", RunID(ctx))
	}
	WithFields(ctx, "driver", "sqlite").Info("applied")

	out := buf.String()
	if !strings.Contains(out, "run_id=run-1") || !strings.Contains(out, "driver=sqlite") {
		t.Errorf("missing fields in %q", out)
	}
	if RunID(context.Background()) != "" {
		t.Error("empty context should have no run id")
	}
}
