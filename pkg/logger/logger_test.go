package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Re-initialization replaces the global without error.
	err = Init()
	if err != nil {
		t.Fatalf("failed to re-initialize logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after re-initialization")
	}
}

func TestLoggerWithWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Get().Info(ctx, "catalog loaded", String("table", "books"), Int("rows", 3))

	out := buf.String()
	if !strings.Contains(out, "catalog loaded") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "table=books") {
		t.Errorf("output missing string field: %q", out)
	}
	if !strings.Contains(out, "rows=3") {
		t.Errorf("output missing int field: %q", out)
	}
	if !strings.Contains(out, "source=") {
		t.Errorf("output missing caller annotation: %q", out)
	}
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf), WithJSONFormat()); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Get().Info(context.Background(), "ready", String("addr", ":9080"))

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not a JSON record: %v (%q)", err, buf.String())
	}
	if record["msg"] != "ready" {
		t.Errorf("unexpected msg field: %v", record["msg"])
	}
	if record["addr"] != ":9080" {
		t.Errorf("unexpected addr field: %v", record["addr"])
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf), WithLevel(slog.LevelInfo)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	ctx := context.Background()

	Get().Debug(ctx, "hidden at info")
	if buf.Len() != 0 {
		t.Errorf("debug record emitted at info level: %q", buf.String())
	}

	SetLevel(slog.LevelDebug)
	Get().Debug(ctx, "visible at debug")
	if !strings.Contains(buf.String(), "visible at debug") {
		t.Errorf("debug record missing after SetLevel: %q", buf.String())
	}
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	namedLogger := Named("engine")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}

	namedLogger.Info(context.Background(), "indexed", Int("likes", 42))
	if !strings.Contains(buf.String(), "engine.likes=42") {
		t.Errorf("group prefix missing from output: %q", buf.String())
	}
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	for _, level := range []string{"debug", "info", "warn", "warning", "error", "", "  INFO  "} {
		if err := SetLevelString(level); err != nil {
			t.Errorf("SetLevelString(%q) returned error: %v", level, err)
		}
	}

	if err := SetLevelString("verbose"); err == nil {
		t.Error("SetLevelString accepted an unknown level")
	}
}
