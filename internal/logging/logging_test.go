package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcdole/cinewave/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"":        slog.LevelInfo,
		"loud":    slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "json", "warn")
		logger.Info("hidden")
		logger.Warn("shown", "id", 550)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 {
			t.Fatalf("got %d lines: %q", len(lines), buf.String())
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
			t.Fatalf("not json: %v", err)
		}
		if rec["msg"] != "shown" || rec["id"] != float64(550) {
			t.Errorf("record = %v", rec)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "text", "debug")
		logger.Debug("toggled favorite", "id", 7)

		out := buf.String()
		if !strings.Contains(out, "toggled favorite") || !strings.Contains(out, "id=7") {
			t.Errorf("output = %q", out)
		}
	})
}

func TestSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cinewave.log")
	logger, err := Setup(config.LoggingConfig{File: path, Level: "info", Format: "json", MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	logger.Info("started")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"started"`) {
		t.Errorf("log = %q", data)
	}
}
