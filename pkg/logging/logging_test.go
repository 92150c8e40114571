package logging

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupLogger(tt.verbosity)

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("SetupLogger(%d) set level to %v, want %v",
					tt.verbosity, zerolog.GlobalLevel(), tt.wantLevel)
			}
		})
	}
}

func TestGetLogger(t *testing.T) {
	logger := GetLogger("pipeline")

	// The component field should be baked into the logger context
	var sb strings.Builder
	testLogger := logger.Output(&sb)
	testLogger.Warn().Msg("hello")

	if !strings.Contains(sb.String(), `"component":"pipeline"`) {
		t.Errorf("expected component field in output, got %q", sb.String())
	}
}

func TestGetLogFilePath(t *testing.T) {
	path := getLogFilePath()
	if !strings.HasSuffix(path, "sfstage/sfstage.log") {
		t.Errorf("unexpected log file path %q", path)
	}
}
