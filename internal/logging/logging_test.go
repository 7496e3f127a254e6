// SPDX-License-Identifier: EPL-2.0

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// These tests reconfigure the global logger and so do not run in parallel.

func restore(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{})
	})
}

func TestSetup_JSON(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	require.NoError(t, Setup("debug", "json", &buf))

	log.WithField("path", "a.wav").Debug("probed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "probed", entry["msg"])
	require.Equal(t, "a.wav", entry["path"])
	require.Equal(t, "debug", entry["level"])
}

func TestSetup_LevelFilters(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	require.NoError(t, Setup("warn", "text", &buf))

	log.Info("hidden")
	require.Empty(t, buf.String())

	log.Warn("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestSetup_Errors(t *testing.T) {
	restore(t)

	require.Error(t, Setup("loud", "text", &bytes.Buffer{}))
	require.ErrorIs(t, Setup("info", "xml", &bytes.Buffer{}), ErrUnknownFormat)
}
