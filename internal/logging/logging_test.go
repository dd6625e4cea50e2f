package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// captureLogOutput captures log output for testing by temporarily
// redirecting the logger to write to a buffer
func captureLogOutput(f func()) string {
	var buf bytes.Buffer

	oldLogger := defaultLogger
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	defaultLogger = slog.New(handler)

	f()

	defaultLogger = oldLogger
	return buf.String()
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		format Format
	}{
		{"Debug level JSON format", LevelDebug, FormatJSON},
		{"Info level JSON format", LevelInfo, FormatJSON},
		{"Warn level JSON format", LevelWarn, FormatJSON},
		{"Error level JSON format", LevelError, FormatJSON},
		{"Info level Text format", LevelInfo, FormatText},
		{"Default level (invalid value)", Level(999), FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitLogger(tt.level, tt.format)
			if LoggerFromContext(context.Background()) == nil {
				t.Error("Expected logger to be initialized, got nil")
			}
		})
	}
	InitLogger(LevelInfo, FormatText)
}

func TestInitLoggerTo_TimestampFormat(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, LevelInfo, FormatJSON)
	defer InitLogger(LevelInfo, FormatText)

	InfoContext(context.Background(), "hello", "key", "value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	ts, _ := entry["time"].(string)
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("time %q is not RFC3339: %v", ts, err)
	}
	if entry["key"] != "value" {
		t.Errorf("key = %v", entry["key"])
	}
}

func TestInitLoggerTo_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, LevelWarn, FormatText)
	defer InitLogger(LevelInfo, FormatText)

	InfoContext(context.Background(), "hidden")
	WarnContext(context.Background(), "shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn message missing")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if f, err := ParseFormat("Text"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(Text) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if len(a) != 16 {
		t.Errorf("NewRunID() = %q, want 16 hex chars", a)
	}
	if a == b {
		t.Error("run IDs should differ")
	}

	ctx := WithRunID(context.Background(), a)
	if GetRunID(ctx) != a {
		t.Errorf("GetRunID() = %q", GetRunID(ctx))
	}
	if GetRunID(context.Background()) != "" {
		t.Error("empty context should have no run ID")
	}
	if GetRunID(context.WithValue(context.Background(), RunIDKey, 42)) != "" {
		t.Error("wrong-typed value should be ignored")
	}
}

func TestContextLoggingFunctions(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")

	tests := []struct {
		name string
		fn   func()
	}{
		{"DebugContext", func() { DebugContext(ctx, "debug message") }},
		{"InfoContext", func() { InfoContext(ctx, "info message") }},
		{"WarnContext", func() { WarnContext(ctx, "warning message") }},
		{"ErrorContext", func() { ErrorContext(ctx, "error message") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(tt.fn)
			if !strings.Contains(output, "run-123") {
				t.Errorf("Expected output to contain run ID, got %q", output)
			}
		})
	}
}

func TestDomainHelpers(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-9")

	tests := []struct {
		name     string
		fn       func()
		contains []string
	}{
		{
			name:     "Stage",
			fn:       func() { Stage(ctx, "render", 1500*time.Millisecond, "notes", 4) },
			contains: []string{"stage_done", "render", `"duration_ms":1500`, `"notes":4`},
		},
		{
			name:     "FileWritten",
			fn:       func() { FileWritten(ctx, "People/A.md", 2048) },
			contains: []string{"file_written", "People/A.md", "2.0 kB"},
		},
		{
			name:     "ParseSummary clean",
			fn:       func() { ParseSummary(ctx, "tree.ged", 12345, 0, 3) },
			contains: []string{`"level":"INFO"`, "12,345"},
		},
		{
			name:     "ParseSummary malformed",
			fn:       func() { ParseSummary(ctx, "tree.ged", 10, 2, 0) },
			contains: []string{`"level":"WARN"`, `"malformed":2`},
		},
		{
			name:     "DanglingReference",
			fn:       func() { DanglingReference(ctx, "@I1@", "FAMC", "@F9@") },
			contains: []string{"dangling_reference", "@F9@", "run-9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(tt.fn)
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output %q missing %q", output, want)
				}
			}
		})
	}
}
