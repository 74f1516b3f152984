package logger_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/vocabflash/internal/logger"
)

func fixedTime() time.Time {
	return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func TestLogger_FormatsLine(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithColors(false),
		logger.WithTimeSource(fixedTime),
	).WithPrefix("card_repo").WithFields(map[string]any{"user": 7, "deck": 2})

	log.Info("saved card vocab_id=%d", 42)

	line := buf.String()
	assert.Contains(t, line, "2026-03-14 12:00:00.000 INFO  [card_repo]")
	assert.Contains(t, line, "saved card vocab_id=42")
	assert.Contains(t, line, "deck=2 user=7")
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.False(t, log.Enabled(logger.INFO))
}

func TestLogger_DerivedDoesNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	_ = base.WithField("request_id", "abc")

	base.Info("plain")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("warning"))
	assert.Equal(t, logger.INFO, logger.ParseLevel("verbose"))

	_, ok := logger.LookupLevel("verbose")
	assert.False(t, ok)
}

func TestContext(t *testing.T) {
	log := logger.New(logger.WithPrefix("req"))
	ctx := logger.NewContext(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
