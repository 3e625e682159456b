package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gamefinder/internal/config"
	"gamefinder/internal/logging"
	"gamefinder/internal/services"
)

func TestNewConsoleWritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "catalog").Info("category fetched", logging.String("category", "action"), logging.Int("games", 20))

	line := buf.String()
	if !strings.Contains(line, "INFO catalog: category fetched") {
		t.Fatalf("expected level, component and message, got %q", line)
	}
	if !strings.Contains(line, "category=action") || !strings.Contains(line, "games=20") {
		t.Fatalf("expected key=value fields, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be rendered as a prefix, got %q", line)
	}
}

func TestNewConsoleQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("price lookup", logging.String("title", "Half Life"))
	if !strings.Contains(buf.String(), `title="Half Life"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "WARN shown") {
		t.Fatalf("expected warn line, got %q", out)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("cache saved", logging.String("path", "/tmp/kb.json"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if payload["msg"] != "cache saved" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["level"] != "info" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key in %v", payload)
	}
	if payload["path"] != "/tmp/kb.json" {
		t.Fatalf("unexpected path: %v", payload["path"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewWritesToFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gamefinder.log")
	logger, err := logging.New(logging.Options{Level: "info", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("written")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "written") {
		t.Fatalf("expected log line in file, got %q", data)
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "debug"

	var buf bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("debug visible")
	if !strings.Contains(buf.String(), `"msg":"debug visible"`) {
		t.Fatalf("expected json debug line, got %q", buf.String())
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "price lookup degraded", "price_lookup_failed",
		logging.String(logging.FieldErrorHint, "check network access"),
		logging.Error(errors.New("boom")),
	)
	out := buf.String()
	for _, want := range []string{"event_type=price_lookup_failed", `error_hint="check network access"`, "impact=", "error=boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if strings.Count(out, "error_hint=") != 1 {
		t.Fatalf("error_hint should not be duplicated: %q", out)
	}
}

func TestWithContextAddsRunAndCategory(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithCategory(ctx, "rpg")

	logging.WithContext(ctx, logger).Info("fetched")
	out := buf.String()
	if !strings.Contains(out, "run_id=run-1") || !strings.Contains(out, "category=rpg") {
		t.Fatalf("expected context fields, got %q", out)
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("nop logger should never be enabled")
	}
	logging.WarnWithContext(nil, "ignored", "noop")
}
