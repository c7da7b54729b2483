package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestInitLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug", LevelDebug, slog.LevelDebug, slog.LevelDebug - 1},
		{"info", LevelInfo, slog.LevelInfo, slog.LevelDebug},
		{"warn", LevelWarn, slog.LevelWarn, slog.LevelInfo},
		{"error", LevelError, slog.LevelError, slog.LevelWarn},
		{"unknown defaults to info", Level(99), slog.LevelInfo, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitLogger(tt.level, FormatText)
			logger := GetLogger()
			if logger == nil {
				t.Fatal("GetLogger() returned nil")
			}
			ctx := context.Background()
			if !logger.Enabled(ctx, tt.enabled) {
				t.Errorf("level %v should be enabled", tt.enabled)
			}
			if logger.Enabled(ctx, tt.muted) {
				t.Errorf("level %v should be muted", tt.muted)
			}
		})
	}
}

func TestInitLoggerSetsDefault(t *testing.T) {
	InitLogger(LevelInfo, FormatJSON)
	if slog.Default() != GetLogger() {
		t.Error("InitLogger should install the global logger as slog's default")
	}
}
