package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewLogger(t *testing.T) {
	t.Run("level from env value", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger(&buf, false, "warn")
		log.Info("hidden")
		log.Warn("shown", "component", "Ledger")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "level=WARN msg=shown component=Ledger")
		assert.NotContains(t, buf.String(), "time=")
	})

	t.Run("debug flag overrides level", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger(&buf, true, "error")
		log.Debug("details")

		assert.Contains(t, buf.String(), "msg=details")
		assert.Contains(t, buf.String(), "time=")
		assert.Contains(t, buf.String(), "source=")
	})
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/ledger/ledger.go", shortPath("/home/dev/src/txledger/internal/ledger/ledger.go"))
	assert.Equal(t, "main.go", shortPath("/elsewhere/main.go"))
}
