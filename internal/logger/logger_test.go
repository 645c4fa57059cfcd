package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log := New(Config{})
	assert.NotNil(t, log)
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithSink(Config{Level: "info", Component: "desktop"}, zapcore.AddSync(&buf))

	log.Info("Shader program linked", zap.String("stage", "fragment"), zap.Int("uniforms", 6))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Shader program linked", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "desktop", entry["component"])
	assert.Equal(t, "fragment", entry["stage"])
	assert.Equal(t, float64(6), entry["uniforms"])
	assert.Contains(t, entry, "ts")
	assert.Contains(t, entry, "caller")
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithSink(Config{Level: "warn"}, zapcore.AddSync(&buf))

	log.Debug("debug message")
	log.Info("info message")
	assert.Zero(t, buf.Len())

	log.Warn("warn message")
	assert.Contains(t, buf.String(), "warn message")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"":      zapcore.InfoLevel,
		"loud":  zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in).Level(), in)
	}
}

func TestDevelopmentUsesConsoleEncoding(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithSink(Config{Level: "debug", Development: true}, zapcore.AddSync(&buf))
	log.Debug("presence changed", zap.Float32("presence", 0.5))

	assert.Contains(t, buf.String(), "presence changed")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
