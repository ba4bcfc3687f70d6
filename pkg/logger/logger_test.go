package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guestpass/pkg/logger"
)

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "info", Format: "json"}, &buf)

	log.Info("visitor denied", "reason", "exhausted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visitor denied", entry["msg"])
	assert.Equal(t, "exhausted", entry["reason"])
}

func TestNewText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "debug", Format: "text"}, &buf)

	log.Debug("resolved visitor")
	assert.True(t, strings.Contains(buf.String(), "resolved visitor"))
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "error", Format: "json"}, &buf)

	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Error("kept")
	assert.NotEmpty(t, buf.String())
}
