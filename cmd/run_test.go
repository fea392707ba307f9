package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/chatlens/config"
)

// sampleExport is a small Android-format export touching several
// classifier paths: a link, a media placeholder, and a deletion.
const sampleExport = `3/15/23, 10:05 PM - Alice: Hello everyone!
3/15/23, 10:06 PM - Bob: Hi Alice, long time
3/16/23, 9:00 AM - Alice: check this https://example.com/article
3/16/23, 9:05 AM - Bob: <Media omitted>
3/17/23, 8:00 PM - Alice: This message was deleted
3/17/23, 8:30 PM - Bob: coffee tomorrow morning?
3/17/23, 8:45 PM - Alice: coffee sounds great
`

// writeTranscript drops the sample export into a temp file.
func writeTranscript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0600))
	return path
}

// testDeps returns deps with a fixed config so tests never touch the
// real config file.
func testDeps() *Deps {
	return &Deps{Config: config.DefaultConfig()}
}

// execute runs a command with args and returns its combined output.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// resetFlags clears the shared flag state between test runs.
func resetFlags() {
	flagLanguage = ""
	flagAuthors = nil
	flagOutput = ""
	flagDebug = false
	streakMessages = false
	activityRelative = false
	contentLimit = 25
}
