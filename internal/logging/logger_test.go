package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/rgehrsitz/ilpgo/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _ calculation.Logger = (*Sugared)(nil)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew(t *testing.T) {
	for _, production := range []bool{true, false} {
		logger := New("warn", production)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	}
}

func TestNewTo_ProductionWritesJSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	l := NewSugared(NewTo("info", true, &buf))

	l.Warnf("start age %d clamped", 36)

	var entry struct {
		Level  string `json:"level"`
		Msg    string `json:"msg"`
		Caller string `json:"caller"`
	}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry.Level)
	assert.Equal(t, "start age 36 clamped", entry.Msg)
	assert.Contains(t, entry.Caller, "logger_test.go", "caller should be the call site, not the adapter")
}

func TestNewTo_DevelopmentWritesConsole(t *testing.T) {
	var buf bytes.Buffer
	l := NewSugared(NewTo("debug", false, &buf))

	l.Debugf("year %d", 3)

	out := buf.String()
	assert.Contains(t, out, "year 3")
	assert.Contains(t, out, "logger_test.go")
	assert.False(t, strings.HasPrefix(out, "{"))
}

func TestSugared_ForwardsLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewSugared(zap.New(core))

	l.Debugf("year %d", 1)
	l.Infof("lapsed in %d", 12)
	l.Warnf("clamped")
	l.Errorf("failed: %v", "boom")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "year 1", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "failed: boom", entries[3].Message)
}

func TestSugared_NilIsNop(t *testing.T) {
	l := NewSugared(nil)
	assert.NotPanics(t, func() { l.Infof("nothing") })
}
