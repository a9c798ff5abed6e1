package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestStdLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLoggerWithWriter(&buf, LevelWarn)

	l.Debug(context.Background(), "debug msg")
	l.Info(context.Background(), "info msg")
	l.Warn(context.Background(), "warn msg")

	out := buf.String()
	if strings.Contains(out, "debug msg") || strings.Contains(out, "info msg") {
		t.Errorf("Messages below the threshold were logged: %q", out)
	}
	if !strings.Contains(out, "[WARN] warn msg") {
		t.Errorf("Expected warn message in output, got %q", out)
	}
}

func TestStdLoggerSortedFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLoggerWithWriter(&buf, LevelDebug)

	l.Info(context.Background(), "fetch done", map[string]interface{}{
		"server": "gehennas-horde",
		"count":  120,
		"item":   "black-lotus",
	})

	out := buf.String()
	ci := strings.Index(out, "count=120")
	ii := strings.Index(out, "item=black-lotus")
	si := strings.Index(out, "server=gehennas-horde")
	if ci < 0 || ii < 0 || si < 0 {
		t.Fatalf("Missing fields in output: %q", out)
	}
	if !(ci < ii && ii < si) {
		t.Errorf("Fields not in sorted key order: %q", out)
	}
}

func TestStdLoggerComponentAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLoggerWithWriter(&buf, LevelDebug).WithComponent("pipeline")

	l.Error(context.Background(), errors.New("boom"), "stage failed")

	out := buf.String()
	if !strings.Contains(out, "[ERROR] [pipeline] stage failed | error: boom") {
		t.Errorf("Unexpected output: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warning", LevelWarn},
		{"error", LevelError},
		{"garbage", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
