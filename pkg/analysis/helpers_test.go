package analysis

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/chatlens/pkg/pipeline"
)

// msg builds an annotated record the way the pipeline would emit it:
// parsed timestamp, derived calendar fields, content with its length.
func msg(t *testing.T, ts, author, text string) pipeline.Record {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", ts)
	require.NoError(t, err)

	length := utf8.RuneCountInString(text)
	_, week := parsed.ISOWeek()
	return pipeline.Record{
		Timestamp: parsed,
		Author:    author,
		Message:   &text,
		MsgLength: &length,
		Date:      parsed.Format("2006-01-02"),
		Year:      parsed.Year(),
		Week:      week,
	}
}
