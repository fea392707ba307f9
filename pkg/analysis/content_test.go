package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/chatlens/pkg/pipeline"
)

func TestWordStats(t *testing.T) {
	records := []pipeline.Record{
		msg(t, "2023-01-01 10:00", "Alice", "coffee tomorrow morning"),
		msg(t, "2023-01-01 10:05", "Bob", "coffee is on me"),
		msg(t, "2023-01-01 10:10", "Alice", "ok see you at ten"),
		msg(t, "2023-01-01 10:15", "Bob", "see you"),
	}

	words := WordStats(records)
	require.NotEmpty(t, words)

	assert.Equal(t, "coffee", words[0].Word)
	assert.Equal(t, 2, words[0].Count)
	assert.Equal(t, "1 out of 2 messages", words[0].Share)

	for _, w := range words {
		assert.Greater(t, len([]rune(w.Word)), minWordLength)
	}
}

func TestWordStats_ShortTokensDropped(t *testing.T) {
	records := []pipeline.Record{
		msg(t, "2023-01-01 10:00", "Alice", "ok you are the one"),
	}

	words := WordStats(records)
	for _, w := range words {
		assert.NotContains(t, []string{"ok", "you", "are", "the", "one"}, w.Word)
	}
}

func TestEmojiStats(t *testing.T) {
	records := []pipeline.Record{
		msg(t, "2023-01-01 10:00", "Alice", "great \U0001F600\U0001F600"),
		msg(t, "2023-01-01 10:05", "Bob", "\U0001F600 \U0001F389"),
	}

	emojis := EmojiStats(records)
	require.Len(t, emojis, 2)
	assert.Equal(t, "\U0001F600", emojis[0].Emoji)
	assert.Equal(t, 3, emojis[0].Count)
	assert.Equal(t, 1, emojis[1].Count)
}

func TestEmojiStats_NoEmojis(t *testing.T) {
	records := []pipeline.Record{
		msg(t, "2023-01-01 10:00", "Alice", "plain text only"),
	}
	assert.Empty(t, EmojiStats(records))
}

func TestEmojiStats_TopTenCap(t *testing.T) {
	var records []pipeline.Record
	for i := 0; i < 15; i++ {
		records = append(records,
			msg(t, "2023-01-01 10:00", "Alice", string(rune(0x1F600+i))))
	}

	emojis := EmojiStats(records)
	assert.Len(t, emojis, emojiTop)
}

func TestMonthlyMessageVolume(t *testing.T) {
	records := []pipeline.Record{
		msg(t, "2023-01-10 10:00", "Alice", "a"),
		msg(t, "2023-02-05 10:00", "Alice", "b"),
		msg(t, "2023-02-06 10:00", "Bob", "c"),
		msg(t, "2023-03-01 10:00", "Bob", "d"),
		msg(t, "2023-03-02 10:00", "Alice", "e"),
	}

	volume := MonthlyMessageVolume(records)
	require.Len(t, volume.Months, 3)
	assert.Equal(t, "2023-01", volume.Months[0].Month)

	// February and March tie at two; the earlier month wins.
	assert.Equal(t, "2023-02", volume.PeakMonth)
	assert.Equal(t, 2, volume.PeakCount)
}

func TestMessageCountsByAuthor(t *testing.T) {
	records := []pipeline.Record{
		msg(t, "2023-01-01 10:00", "Bob", "a"),
		msg(t, "2023-01-01 10:05", "Alice", "b"),
		msg(t, "2023-01-01 10:10", "Alice", "c"),
	}

	counts := MessageCountsByAuthor(records)
	require.Len(t, counts, 2)
	assert.Equal(t, AuthorCount{Author: "Alice", Messages: 2}, counts[0])
	assert.Equal(t, AuthorCount{Author: "Bob", Messages: 1}, counts[1])
}

func TestMostActive(t *testing.T) {
	counts := []AuthorCount{
		{Author: "Bob", Messages: 1},
		{Author: "Alice", Messages: 5},
		{Author: "Carol", Messages: 3},
	}

	best, ok := MostActive(counts)
	require.True(t, ok)
	assert.Equal(t, "Alice", best.Author)
	assert.Equal(t, 5, best.Messages)
}

func TestMostActive_Empty(t *testing.T) {
	_, ok := MostActive(nil)
	assert.False(t, ok)
}

func BenchmarkWordStats(b *testing.B) {
	var records []pipeline.Record
	for i := 0; i < 500; i++ {
		text := fmt.Sprintf("message number %d with some repeated words", i)
		records = append(records, pipeline.Record{Author: "Alice", Message: &text})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		WordStats(records)
	}
}
