package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGet_BeforeInit(t *testing.T) {
	Set(nil)
	assert.NotNil(t, Get())
	assert.NoError(t, Sync())
}

func TestInit_Levels(t *testing.T) {
	defer Set(nil)
	for _, lvl := range []string{"debug", "info", "warn", "error", "bogus"} {
		require.NoError(t, Init(lvl, "production"))
		assert.NotNil(t, Get())
	}
	require.NoError(t, Init("info", "development"))
	assert.True(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Get().Core().Enabled(zapcore.DebugLevel))
}

func TestHelpers_WriteToGlobal(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	defer Set(nil)

	Info("analysis done", zap.String("symbol", "NEX/USD"))
	Warn("short series")

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "analysis done", entry.Message)
	assert.Equal(t, "NEX/USD", entry.ContextMap()["symbol"])
}

func TestHelpers_ReportCallerSite(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core, zap.AddCaller()))
	defer Set(nil)

	Info("from helper")
	Get().Info("from logger")

	require.Equal(t, 2, logs.Len())
	for _, entry := range logs.All() {
		require.True(t, entry.Caller.Defined, entry.Message)
		assert.Equal(t, "logger_test.go", filepath.Base(entry.Caller.File), entry.Message)
	}
}
