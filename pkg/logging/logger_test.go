package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{" warning ", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{"probe", "own-keys"}, StringField("probe", "own-keys"))
	assert.Equal(t, Field{"n", 3}, IntField("n", 3))
	assert.Equal(t, Field{"error", "<nil>"}, ErrorField(nil))
	assert.Equal(t, Field{"error", "boom"}, ErrorField(errors.New("boom")))
	assert.Equal(t, Field{"plan", "default"}, PlanField("default"))
	assert.Equal(t, Field{"run_id", "r1"}, RunIDField("r1"))

	type id string
	assert.Equal(t, Field{"probe_id", "own-keys"}, ProbeField(id("own-keys")))
}

func TestFields(t *testing.T) {
	got := Fields("probe", "own-keys", 7, true, "dangling")
	assert.Equal(t, []Field{
		{"probe", "own-keys"},
		{"arg2", true},
		{"dangling", "<missing>"},
	}, got)
	assert.Empty(t, Fields())
}

func TestMergeFields_DoesNotAlias(t *testing.T) {
	base := make([]Field, 1, 4)
	base[0] = LogField("a", 1)

	first := mergeFields(base, []Field{LogField("b", 2)})
	second := mergeFields(base, []Field{LogField("c", 3)})

	assert.Equal(t, "b", first[1].Key)
	assert.Equal(t, "c", second[1].Key)
}

func TestNew_SelectsBackend(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(FormatJSON, &buf, LevelInfo)
	require.NoError(t, err)
	assert.IsType(t, &ZapLogger{}, l)
	l.Info("json entry")
	require.NoError(t, l.Close())
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())), buf.String())

	buf.Reset()
	l, err = New("Console", &buf, LevelInfo)
	require.NoError(t, err)
	assert.IsType(t, &ConsoleLogger{}, l)
	l.Debug("dropped")
	l.Info("console entry")
	assert.Contains(t, buf.String(), "console entry")
	assert.NotContains(t, buf.String(), "dropped")

	_, err = New("xml", &buf, LevelInfo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log format")
}

func TestNullLogger(t *testing.T) {
	var l Logger = NullLogger{}
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	l.Debug("x")
	assert.Equal(t, NullLogger{}, l.WithFields(LogField("a", 1)))
	assert.NoError(t, l.Close())
}
