package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevelAndFormat(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel(" warning "))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("nope"))
	assert.Equal(t, "error", Error.String())

	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("console"))
}

func TestZapLogger_WithAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core))

	l.With(map[string]any{"medicine_id": "m-1"}).Warn("reminder failed", map[string]any{
		"error":  errors.New("boom"),
		"status": 502,
		"":       "ignored",
	})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		e := entries[0]
		assert.Equal(t, "reminder failed", e.Message)
		assert.Equal(t, zapcore.WarnLevel, e.Level)

		ctx := e.ContextMap()
		assert.Equal(t, "m-1", ctx["medicine_id"])
		assert.Equal(t, "boom", ctx["error"])
		assert.EqualValues(t, 502, ctx["status"])
		assert.NotContains(t, ctx, "")
	}
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	l.Info("x", nil)
	l.With(nil).Error("y", map[string]any{"k": 1})
}
