package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	prevLevel := LevelVar.Level()
	slog.SetDefault(NewLogger(&buf))
	t.Cleanup(func() {
		slog.SetDefault(prev)
		SetLevel(prevLevel)
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := withBuffer(t)
	ctx := context.Background()

	SetLevel(LevelNotice)
	Info(ctx, "hidden %s", "info")
	Notice(ctx, "shown %s", "notice")

	out := buf.String()
	if strings.Contains(out, "hidden info") {
		t.Errorf("info message logged at notice level: %q", out)
	}
	if !strings.Contains(out, "[NOTICE]") || !strings.Contains(out, "shown notice") {
		t.Errorf("notice message missing: %q", out)
	}

	SetLevel(LevelDebug)
	Debug(ctx, "now visible")
	if !strings.Contains(buf.String(), "[DEBUG ]") {
		t.Errorf("debug message missing after SetLevel: %q", buf.String())
	}
}

func TestMultiLineSplit(t *testing.T) {
	buf := withBuffer(t)
	Warn(context.Background(), "first\nsecond")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines; want 2: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, "[WARN  ]") {
			t.Errorf("line %q lacks level label", line)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{"", LevelNotice, false},
		{"debug", LevelDebug, false},
		{"VERBOSE", LevelInfo, false},
		{"trace", LevelTrace, false},
		{"warning", LevelWarn, false},
		{"loud", LevelNotice, true},
	}

	for _, test := range tests {
		got, err := ParseLevel(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseLevel(%q) error = %v; wantErr %v", test.input, err, test.wantErr)
		}
		if got != test.expected {
			t.Errorf("ParseLevel(%q) = %v; want %v", test.input, got, test.expected)
		}
	}
}
