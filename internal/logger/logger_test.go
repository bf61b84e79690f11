package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"debug level", "debug", "console"},
		{"info level", "info", "json"},
		{"warn level", "warn", "auto"},
		{"error level", "error", ""},
		{"invalid level", "invalid", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level, tt.format)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewFromZap(zap.New(core))

	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	log.Warn(ctx, "warn message")
	log.Error(ctx, "error message")
	log.Info(ctx, "formatted message: %s %d", "test", 123)

	if got := logs.Len(); got != 4 {
		t.Fatalf("logged entries = %d, want 4", got)
	}
	if got := logs.FilterMessage("formatted message: test 123").Len(); got != 1 {
		t.Errorf("formatted entries = %d, want 1", got)
	}
	if got := logs.FilterLevelExact(zapcore.DebugLevel).Len(); got != 0 {
		t.Errorf("debug entries = %d, want 0", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zapcore.Level
	}{
		{"debug", "debug", zapcore.DebugLevel},
		{"upper case warn", "WARN", zapcore.WarnLevel},
		{"error", "error", zapcore.ErrorLevel},
		{"unknown defaults to info", "verbose", zapcore.InfoLevel},
		{"empty defaults to info", "", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLevel(tt.level); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestResolveFormat(t *testing.T) {
	// An invalid descriptor is never a terminal.
	const notATTY = ^uintptr(0)

	tests := []struct {
		format string
		want   string
	}{
		{"json", "json"},
		{"console", "console"},
		{"text", "console"},
		{"auto", "json"},
		{"", "json"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := resolveFormat(tt.format, notATTY); got != tt.want {
				t.Errorf("resolveFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}
