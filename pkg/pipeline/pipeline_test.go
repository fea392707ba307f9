package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clerrors "github.com/otherjamesbrown/chatlens/pkg/errors"
	"github.com/otherjamesbrown/chatlens/pkg/transcript"
)

func rawRecord(ts, author, msg string) transcript.RawRecord {
	return transcript.RawRecord{Timestamp: ts, Author: author, Message: &msg}
}

func TestNormalize_DropsUnparseableAndSorts(t *testing.T) {
	raw := []transcript.RawRecord{
		rawRecord("3/15/23, 10:10 PM", "Alice", "later"),
		rawRecord("not a timestamp", "Alice", "dropped"),
		rawRecord("3/15/23, 10:05 PM", "Bob", "earlier"),
	}

	records, dropped := normalize(raw, []string{"Alice", "Bob"})

	assert.Equal(t, 1, dropped)
	require.Len(t, records, 2)
	assert.Equal(t, "Bob", records[0].Author, "output is chronological")
	assert.Equal(t, "Alice", records[1].Author)
	assert.Equal(t, "2023-03-15", records[0].Date)
}

func TestNormalize_StableTieOrder(t *testing.T) {
	raw := []transcript.RawRecord{
		rawRecord("2023-03-15 10:05", "Alice", "first"),
		rawRecord("2023-03-15 10:05", "Bob", "second"),
	}

	records, _ := normalize(raw, []string{"Alice", "Bob"})

	require.Len(t, records, 2)
	assert.Equal(t, "Alice", records[0].Author)
	assert.Equal(t, "Bob", records[1].Author)
}

func TestNormalize_AuthorAllowList(t *testing.T) {
	raw := []transcript.RawRecord{
		rawRecord("2023-03-15 10:05", "Alice", "kept"),
		rawRecord("2023-03-15 10:06", "Mallory", "excluded"),
	}

	records, dropped := normalize(raw, []string{"Alice"})

	assert.Zero(t, dropped)
	require.Len(t, records, 1)
	assert.Equal(t, "Alice", records[0].Author)
}

func TestFilterAuthors(t *testing.T) {
	records := []Record{
		{Author: "Alice"},
		{Author: "+49 170 1234567"},
		{Author: ""},
		{Author: "Bob"},
	}

	kept := filterAuthors(records)

	require.Len(t, kept, 2)
	assert.Equal(t, "Alice", kept[0].Author)
	assert.Equal(t, "Bob", kept[1].Author)
}

func TestNew_UnsupportedLanguage(t *testing.T) {
	_, err := New("Esperanto")
	require.Error(t, err)
	assert.True(t, clerrors.IsUnsupportedLanguage(err))
}

func TestRun_EmptyAllowListFailsFast(t *testing.T) {
	p, err := New("English")
	require.NoError(t, err)

	_, err = p.Run(context.Background(), nil, nil)
	require.Error(t, err)
	assert.True(t, clerrors.IsNoAuthors(err))
}

// TestRun_EndToEnd covers the full chain: three authors over two days
// with one image placeholder, one deletion indicator, and one bare URL.
func TestRun_EndToEnd(t *testing.T) {
	raw := []transcript.RawRecord{
		rawRecord("2023-03-15 08:00", "Alice", "good morning ☀️"),
		rawRecord("2023-03-15 08:05", "Bob", "image omitted"),
		rawRecord("2023-03-15 08:07", "Carol", "This message was deleted."),
		rawRecord("2023-03-15 18:00", "Alice", "https://example.com/article"),
		rawRecord("2023-03-16 09:00", "Bob", "new day, who dis This message was edited"),
		rawRecord("2023-03-16 09:01", "Carol", "Location https://maps.google.com/?q=48.1,11.5"),
		rawRecord("2023-03-16 09:02", "+49 170 1234567", "spam"),
	}

	p, err := New("English", WithMetrics(NewMetrics(prometheus.NewRegistry())))
	require.NoError(t, err)

	result, err := p.Run(context.Background(),
		raw, []string{"Alice", "Bob", "Carol", "+49 170 1234567"})
	require.NoError(t, err)

	// The phone-number author is filtered; six records survive.
	records := result.Records
	require.Len(t, records, 6)

	var images, deleted, links, edited, locations, starters int
	for _, r := range records {
		if r.IsImage {
			images++
			assert.Nil(t, r.Message, "image placeholder content is cleared")
		}
		if r.IsDeleted {
			deleted++
			assert.Nil(t, r.Message, "deleted content is cleared")
		}
		if r.IsLink {
			links++
			assert.Nil(t, r.MsgLength, "links have no length")
		}
		if r.IsEdited {
			edited++
			assert.NotNil(t, r.Message, "edited content is preserved")
		}
		if r.IsLocation {
			locations++
		}
		if r.IsConversationStarter {
			starters++
		}
	}
	assert.Equal(t, 1, images)
	assert.Equal(t, 1, deleted)
	assert.Equal(t, 1, links)
	assert.Equal(t, 1, edited)
	assert.Equal(t, 1, locations)

	// 08:07 -> 18:00 and 18:00 -> next morning both exceed 7 hours.
	assert.Equal(t, 2, starters)
	assert.False(t, records[0].IsConversationStarter)

	// Emoji flag on the first message only.
	assert.True(t, records[0].IsEmoji)

	// Coordinates extracted and split off the record set.
	require.Len(t, result.Locations, 1)
	assert.InDelta(t, 48.1, result.Locations[0].Lat, 1e-9)
	assert.InDelta(t, 11.5, result.Locations[0].Lon, 1e-9)

	// Calendar enrichment present on every record.
	for _, r := range records {
		assert.NotZero(t, r.Year)
		assert.NotZero(t, r.Week)
		assert.NotEmpty(t, r.Date)
	}
}

func TestRun_StarterGapOverride(t *testing.T) {
	raw := []transcript.RawRecord{
		rawRecord("2023-03-15 08:00", "Alice", "a"),
		rawRecord("2023-03-15 08:20", "Bob", "b"),
	}

	p, err := New("English", WithStarterGap(10*time.Minute))
	require.NoError(t, err)

	result, err := p.Run(context.Background(), raw, []string{"Alice", "Bob"})
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	assert.False(t, result.Records[0].IsConversationStarter)
	assert.True(t, result.Records[1].IsConversationStarter)
}
