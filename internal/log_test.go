package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelError, ParseLogLevel("ERROR"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel(" debug "))
	assert.Equal(t, LogLevelTrace, ParseLogLevel("TRACE"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LogLevelInfo)

	l.Debug("hidden %d", 1)
	l.Trace("hidden %d", 2)
	l.Info("shown %d", 3)
	l.Error("failed %s", "load")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 3")
	assert.Contains(t, out, "failed load")
}

func TestLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LogLevelTrace).With("reshape")

	l.Trace("column %s skipped", "notes")

	assert.Contains(t, buf.String(), "[trace] column notes skipped")
	assert.Contains(t, buf.String(), "reshape")
	assert.Equal(t, LogLevelTrace, l.GetLevel())
}
