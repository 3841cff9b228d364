package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pageza/culinary-assistant/backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(config.LogConfig{Level: "debug", Format: "json", ServiceName: "svc"}, &buf)
	require.NoError(t, err)

	l.WithComponent("search").Info().Str("query", "paneer").Msg("search complete")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "svc", entry["service"])
	assert.Equal(t, "search", entry["component"])
	assert.Equal(t, "paneer", entry["query"])
	assert.Equal(t, "search complete", entry["message"])
}

func TestNewDefaultsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(config.LogConfig{}, &buf)
	require.NoError(t, err)

	l.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	l.Info().Msg("shown")
	assert.Contains(t, buf.String(), "culinary-assistant")
}

func TestNewRejectsInvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
