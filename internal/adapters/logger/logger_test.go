package logger_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brew/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(*logger.Logger)
		level string
		msg   string
	}{
		{name: "info", log: func(l *logger.Logger) { l.Info("some message") }, level: "INF", msg: "some message"},
		{name: "warn", log: func(l *logger.Logger) { l.Warn("some warning") }, level: "WRN", msg: "some warning"},
		{name: "error", log: func(l *logger.Logger) { l.Error(os.ErrPermission) }, level: "ERR", msg: "permission denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			out := buf.String()
			assert.Contains(t, out, tt.level)
			assert.Contains(t, out, tt.msg)
		})
	}
}

func TestLogger_DebugHiddenUntilVerbose(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Debug("hidden")
	assert.Empty(t, buf.String())

	lg.SetVerbose(true)
	lg.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.NotContains(t, buf.String(), "hidden")

	lg.SetVerbose(false)
	buf.Reset()
	lg.Debug("hidden again")
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorMetadata(t *testing.T) {
	lg, buf := newTestLogger(t)

	cause := zerr.With(zerr.Wrap(errors.New("exit status 1"), "compile crate"), "target", "inner")
	err := zerr.With(zerr.With(zerr.Wrap(cause, "build failed"), "target", "barista"), "task", "module")
	lg.Error(err)

	out := buf.String()
	assert.Contains(t, out, "build failed")
	assert.Contains(t, out, "target=barista")
	assert.Contains(t, out, "task=module")
	assert.NotContains(t, out, "target=inner")
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestFormatError(t *testing.T) {
	t.Run("standard error", func(t *testing.T) {
		assert.Equal(t, "boom", logger.FormatError(errors.New("boom")))
	})

	t.Run("zerr chain", func(t *testing.T) {
		err := zerr.Wrap(zerr.Wrap(errors.New("disk full"), "write record"), "build failed")
		got := logger.FormatError(err)

		require.Contains(t, got, "build failed")
		assert.Contains(t, got, "caused by: write record")
		assert.Contains(t, got, "disk full")
	})
}
