package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_ObservedFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := newZapLogger(core)

	l.WithFields(StringField("run", "r1")).
		Info("probe passed", StringField("probe", "own-keys"))
	l.Debug("detail")
	l.Warn("slow")
	l.Error("failed", ErrorField(nil))

	entries := logs.All()
	require.Len(t, entries, 4)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "probe passed", entries[0].Message)
	assert.Equal(t, "r1", ctx["run"])
	assert.Equal(t, "own-keys", ctx["probe"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestNewZapLogger_LevelAndJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger(&buf, LevelWarn)

	l.Info("hidden")
	l.Warn("shown", IntField("attempt", 2))
	require.NoError(t, l.Close())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
	assert.EqualValues(t, 2, entry["attempt"])
}

func TestZapLevelMapping(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, zapLevel(LevelDebug))
	assert.Equal(t, zapcore.InfoLevel, zapLevel(LevelInfo))
	assert.Equal(t, zapcore.WarnLevel, zapLevel(LevelWarn))
	assert.Equal(t, zapcore.ErrorLevel, zapLevel(LevelError))
}
