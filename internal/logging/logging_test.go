package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/patrol/internal/config"
)

func TestNew_Levels(t *testing.T) {
	cases := []struct {
		name    string
		cfg     config.LoggingConfig
		verbose bool
		want    zapcore.Level
	}{
		{"InfoConsole", config.LoggingConfig{Level: "info", Format: "console"}, false, zapcore.InfoLevel},
		{"WarnJSON", config.LoggingConfig{Level: "warn", Format: "json"}, false, zapcore.WarnLevel},
		{"VerboseWins", config.LoggingConfig{Level: "error", Format: "json"}, true, zapcore.DebugLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := New(tc.cfg, tc.verbose)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tc.want))
			if tc.want > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tc.want-1))
			}
		})
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud", Format: "json"}, false)
	assert.ErrorContains(t, err, "failed to parse log level")
}
