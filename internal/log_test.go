package internal

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tt := map[string]LogLevel{
		"ERROR": LogLevelError,
		"warn":  LogLevelWarn,
		"Info":  LogLevelInfo,
		"DEBUG": LogLevelDebug,
		"trace": LogLevelTrace,
	}
	for in, exp := range tt {
		got, ok := ParseLogLevel(in)
		assert.True(t, ok, in)
		assert.Equal(t, exp, got, in)
	}

	got, ok := ParseLogLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, LogLevelInfo, got)
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelWarn)

	logger.Info("hidden %d", 1)
	logger.Warn("shown %d", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &event))
	assert.Equal(t, "warn", event["level"])
	assert.Equal(t, "shown 2", event["message"])
}

func TestLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelDebug).With("audit_id", "abc")

	logger.Debug("loaded")

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "abc", event["audit_id"])
}
