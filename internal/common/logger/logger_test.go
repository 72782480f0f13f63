package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestZapAdapter_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).Named("wizard").WithFields(map[string]interface{}{
		"sessionId": "abc",
	})

	log.WithError(errors.New("boom")).Warn("submission failed", map[string]interface{}{
		"statusCode": 500,
	})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		entry := entries[0]
		assert.Equal(t, "submission failed", entry.Message)
		assert.Equal(t, "wizard", entry.LoggerName)
		ctx := entry.ContextMap()
		assert.Equal(t, "abc", ctx["sessionId"])
		assert.Equal(t, "boom", ctx["error"])
		assert.EqualValues(t, 500, ctx["statusCode"])
	}
}

func TestNew_FallsBackToInfo(t *testing.T) {
	l := New(Options{Level: "nonsense", Format: "json"})
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
