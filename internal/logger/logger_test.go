package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Environment: "production", ServiceName: "hr-leave", Version: "1.2.3", Output: &buf})

	log.Info().Msg("dropped")
	log.Warn().Str("leave_id", "leave-1").Msg("kept")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "hr-leave", line["service"])
	assert.Equal(t, "1.2.3", line["version"])
	assert.Equal(t, "leave-1", line["leave_id"])
}

func TestNew_DefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "nonsense", Output: &buf})
	log.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
	log.Info().Msg("shown")
	assert.NotZero(t, buf.Len())
}
