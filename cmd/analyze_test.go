package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCommand_Text(t *testing.T) {
	path := writeTranscript(t)

	out, err := execute(t, NewAnalyzeCommand(testDeps()), path)
	require.NoError(t, err)

	assert.Contains(t, out, "Chat Summary")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "Longest streak")
	assert.Contains(t, out, "coffee")
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	path := writeTranscript(t)

	out, err := execute(t, NewAnalyzeCommand(testDeps()), path, "-o", "json")
	require.NoError(t, err)

	var report struct {
		RunID   string `json:"run_id"`
		Summary struct {
			TotalMessages int `json:"total_messages"`
			UniqueAuthors int `json:"unique_authors"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 7, report.Summary.TotalMessages)
	assert.Equal(t, 2, report.Summary.UniqueAuthors)
}

func TestAnalyzeCommand_MissingFile(t *testing.T) {
	_, err := execute(t, NewAnalyzeCommand(testDeps()), "/does/not/exist.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening transcript")
}

func TestAnalyzeCommand_AuthorFilter(t *testing.T) {
	path := writeTranscript(t)

	out, err := execute(t, NewAnalyzeCommand(testDeps()), path, "-a", "Alice", "-o", "json")
	require.NoError(t, err)

	var report struct {
		Summary struct {
			UniqueAuthors int `json:"unique_authors"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Summary.UniqueAuthors)
}

func TestAnalyzeCommand_UnsupportedLanguage(t *testing.T) {
	path := writeTranscript(t)

	_, err := execute(t, NewAnalyzeCommand(testDeps()), path, "--lang", "Esperanto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Esperanto")
}
