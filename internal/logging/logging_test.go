package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/logbook/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONToFallback(t *testing.T) {
	var buf bytes.Buffer

	log, closer, err := New(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	log.WithField("request_id", "abc").Info("api call")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lastLine(buf.Bytes()), &entry))
	assert.Equal(t, "api call", entry["msg"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer

	log, _, err := New(config.LoggingConfig{Level: "loud"}, &buf)
	require.NoError(t, err)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "Invalid log level 'loud'")
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "logbook.log")
	var buf bytes.Buffer

	log, closer, err := New(config.LoggingConfig{Level: "info", File: path}, &buf)
	require.NoError(t, err)
	log.Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Empty(t, buf.String())
}

func lastLine(b []byte) []byte {
	lines := bytes.Split(bytes.TrimSpace(b), []byte("\n"))
	return lines[len(lines)-1]
}
