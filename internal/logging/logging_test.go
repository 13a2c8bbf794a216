// ABOUTME: Tests for logger construction
// ABOUTME: Checks level filtering and the collector's debug records

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"

	"github.com/prateek/marksweep/gc"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)

	log.Debug("hidden")
	log.Info("shown", "k", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "k=1")
}

func TestCollectorLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	m := gc.New(gc.Config{Logger: New(&buf, slog.LevelDebug)})
	_, err := m.PushInteger(1)
	assert.NoError(t, err)
	m.Collect()

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, `msg="Collected garbage"`)
	assert.Contains(t, out, "collected=0")
	assert.Contains(t, out, "remaining=1")
	assert.Contains(t, out, "threshold=2")
}
