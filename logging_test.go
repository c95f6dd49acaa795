package wafengine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_ConsoleOnly(t *testing.T) {
	logger, err := NewLogger("info", "")
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("hello")
}

func TestNewLogger_WithFileTeesToBoth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waf.log")
	logger, err := NewLogger("debug", path)
	require.NoError(t, err)
	logger.Debug("hello file")
	require.NoError(t, logger.Sync())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("unknown"))
}
