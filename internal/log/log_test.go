package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilteringHandler(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	SetLevel(slog.LevelDebug)
	t.Cleanup(func() {
		SetLevel(slog.LevelWarn)
	})

	DefaultLogger.With("section", "inference").Debug("kept")
	DefaultLogger.With("section", "parser").Debug("dropped")
	DefaultLogger.With("section", "parser").Warn("warned")
	DefaultLogger.Debug("inline", "section", "program.load")

	out := buf.String()
	assert.Contains(t, out, "msg=kept")
	assert.NotContains(t, out, "msg=dropped")
	assert.Contains(t, out, "msg=warned")
	assert.Contains(t, out, "msg=inline")
}

func TestSetLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	SetLevel(slog.LevelError)
	t.Cleanup(func() {
		SetLevel(slog.LevelWarn)
	})

	DefaultLogger.With("section", "inference").Warn("below")
	assert.Empty(t, buf.String())
}
