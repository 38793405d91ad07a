package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		encoding string
		want     zapcore.Level
	}{
		{"defaults", "", "", zapcore.InfoLevel},
		{"debug json", "debug", "json", zapcore.DebugLevel},
		{"mixed case", " WARN ", "console", zapcore.WarnLevel},
		{"invalid level falls back", "loud", "json", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level, tt.encoding)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNew_InvalidEncoding(t *testing.T) {
	_, err := New("info", "xml")
	assert.Error(t, err)
}
