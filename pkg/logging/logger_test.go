package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{
		Level:      LevelDebug,
		Component:  "test",
		JSONFormat: true,
		Output:     &buf,
	})

	log.Info("pipeline finished", F("records", 42), F("dropped", 1))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "pipeline finished", entry["message"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, float64(42), entry["records"])
	assert.Equal(t, float64(1), entry["dropped"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{
		Level:      LevelWarn,
		Component:  "test",
		JSONFormat: true,
		Output:     &buf,
	})

	log.Debug("hidden")
	log.Info("hidden too")
	assert.Zero(t, buf.Len())

	log.Warn("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{
		Level:      LevelInfo,
		Component:  "test",
		JSONFormat: true,
		Output:     &buf,
	})

	sub := log.With(F("language", "English"))
	sub.Info("classified")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "English", entry["language"])
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	// Should not panic and should accept any field types.
	log.Info("ignored", F("x", 1))
	log.With(Err(assert.AnError)).Error("also ignored")
}
