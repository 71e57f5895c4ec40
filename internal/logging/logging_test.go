package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_InfoLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Writer: &buf, NoColor: true})

	logger.Debug("hidden")
	logger.Info("created entity", "resource", "machine")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "created entity")
	assert.Contains(t, out, "resource=machine")
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Writer: &buf, Debug: true, NoColor: true})

	logger.Debug("visible")

	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "logging_test.go")
}

func TestSetup_InstallsDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	logger := Setup(Config{Writer: &buf, NoColor: true})

	assert.Same(t, logger, slog.Default())
	slog.Info("through default")
	assert.Contains(t, buf.String(), "through default")
}
