package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/chatlens/pkg/pipeline"
)

func TestResponseTimes(t *testing.T) {
	records := []pipeline.Record{
		msg(t, "2023-01-01 10:00", "Alice", "hey"),
		msg(t, "2023-01-01 10:01", "Alice", "you there?"), // burst, excluded
		msg(t, "2023-01-01 10:10", "Bob", "yes"),          // 9 min
		msg(t, "2023-01-01 10:40", "Alice", "ok"),         // 30 min
		msg(t, "2023-01-01 10:50", "Bob", "good"),         // 10 min
	}

	stats := ResponseTimes(records)
	require.Len(t, stats.Medians, 2)

	assert.Equal(t, "Alice", stats.SlowestResponder)
	assert.Equal(t, "Alice", stats.Medians[0].Author)
	assert.Equal(t, 30.0, stats.Medians[0].MedianMinutes)
	assert.Equal(t, "Bob", stats.Medians[1].Author)
	assert.Equal(t, 9.5, stats.Medians[1].MedianMinutes)
}

func TestResponseTimes_SlowSelfResponseCounts(t *testing.T) {
	records := []pipeline.Record{
		msg(t, "2023-01-01 10:00", "Alice", "anyone?"),
		msg(t, "2023-01-01 12:00", "Alice", "guess not"),
	}

	stats := ResponseTimes(records)
	require.Len(t, stats.Medians, 1)
	assert.Equal(t, 120.0, stats.Medians[0].MedianMinutes,
		"same-author gap beyond the burst window is a real response")
}

func TestResponseTimes_Empty(t *testing.T) {
	stats := ResponseTimes(nil)
	assert.Empty(t, stats.Medians)
	assert.Empty(t, stats.SlowestResponder)
}

func TestResponses_RowsSumToOne(t *testing.T) {
	records := []pipeline.Record{
		msg(t, "2023-01-01 10:00", "Alice", "a"),
		msg(t, "2023-01-01 10:10", "Bob", "b"),
		msg(t, "2023-01-01 10:20", "Carol", "c"),
		msg(t, "2023-01-01 10:30", "Alice", "d"),
		msg(t, "2023-01-01 10:40", "Bob", "e"),
		msg(t, "2023-01-01 10:50", "Alice", "f"),
	}

	matrix := Responses(records)
	require.Equal(t, []string{"Alice", "Bob", "Carol"}, matrix.Authors)

	for row, author := range matrix.Authors {
		var sum float64
		for _, v := range matrix.Values[row] {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "row for %s", author)
	}
}

func TestResponses_BurstsExcludedBeforePairing(t *testing.T) {
	records := []pipeline.Record{
		msg(t, "2023-01-01 10:00", "Alice", "a"),
		msg(t, "2023-01-01 10:10", "Bob", "b"),
		msg(t, "2023-01-01 10:11", "Bob", "b2"), // burst, removed
		msg(t, "2023-01-01 10:20", "Carol", "c"),
	}

	matrix := Responses(records)
	require.Equal(t, []string{"Alice", "Bob", "Carol"}, matrix.Authors)

	// Carol responds to Bob's first message, not the burst follow-up.
	carol, bob := 2, 1
	assert.Equal(t, 1.0, matrix.Values[carol][bob])

	// Alice never responded to anyone; her row stays all zero.
	for _, v := range matrix.Values[0] {
		assert.Zero(t, v)
	}
}
