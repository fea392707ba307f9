package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/chatlens/pkg/pipeline"
)

func TestTalkativeness_Tiers(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		numAuthors int
		want       string
	}{
		{"well above double", 60, 4, VeryTalkative},
		{"between 1.5x and 2x", 45, 4, Talkative},
		{"around equal share", 25, 4, Average},
		{"between 0.5x and 0.75x", 15, 4, Quiet},
		{"below half share", 10, 4, VeryQuiet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Talkativeness(tt.percentage, tt.numAuthors))
		})
	}
}

func TestTalkativeness_BoundariesFallIntoLowerTier(t *testing.T) {
	// Strict > comparisons: exact boundary ratios take the lower tier.
	assert.Equal(t, Talkative, Talkativeness(50, 4), "ratio exactly 2")
	assert.Equal(t, Average, Talkativeness(37.5, 4), "ratio exactly 1.5")
	assert.Equal(t, Quiet, Talkativeness(18.75, 4), "ratio exactly 0.75")
	assert.Equal(t, VeryQuiet, Talkativeness(12.5, 4), "ratio exactly 0.5")
}

func TestAnalyzeTrend(t *testing.T) {
	t.Run("insufficient data", func(t *testing.T) {
		assert.Equal(t, InsufficientTrend, AnalyzeTrend(nil))
		assert.Equal(t, InsufficientTrend, AnalyzeTrend([]float64{5}))
	})

	t.Run("clear increase", func(t *testing.T) {
		series := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120}
		assert.Contains(t, AnalyzeTrend(series), "Increase")
	})

	t.Run("clear decrease", func(t *testing.T) {
		series := []float64{120, 110, 100, 90, 80, 70, 60, 50, 40, 30, 20, 10}
		assert.Contains(t, AnalyzeTrend(series), "Decrease")
	})

	t.Run("flat is no trend", func(t *testing.T) {
		series := []float64{50, 50, 50, 50, 50, 50}
		got := AnalyzeTrend(series)
		assert.Contains(t, got, "No trend")
		assert.Contains(t, got, "Slight")
	})

	t.Run("strong label above 50 percent change", func(t *testing.T) {
		series := []float64{10, 14, 18, 22, 26, 30, 34, 38, 42, 46}
		assert.Equal(t, "Strong Increase", AnalyzeTrend(series))
	})

	t.Run("zero start reads as strong", func(t *testing.T) {
		series := []float64{0, 5, 10, 15, 20, 25, 30, 35}
		assert.Equal(t, "Strong Increase", AnalyzeTrend(series))
	})

	t.Run("moderate label", func(t *testing.T) {
		// 30 -> 40 is a 33% change with a clean upward fit.
		series := []float64{30, 31, 33, 34, 36, 37, 39, 40}
		assert.Equal(t, "Moderate Increase", AnalyzeTrend(series))
	})
}

func TestAuthorStats(t *testing.T) {
	records := []pipeline.Record{
		msg(t, "2023-01-01 10:00", "Alice", "a"),
		msg(t, "2023-01-01 11:00", "Alice", "b"),
		msg(t, "2023-01-02 10:00", "Alice", "c"),
		msg(t, "2023-01-02 11:00", "Bob", "d"),
	}

	stats := AuthorStats(records)
	require.Len(t, stats, 2)

	assert.Equal(t, "Alice", stats[0].Author)
	assert.Equal(t, 3, stats[0].Messages)
	assert.Equal(t, 75.0, stats[0].TotalPercent)
	assert.Equal(t, Average, stats[0].Talkativeness, "75% of 2 authors is ratio 1.5 exactly")
	// Range is 2 calendar days: 3 messages / 2 days.
	assert.Equal(t, 1.5, stats[0].AvgPerDay)

	assert.Equal(t, "Bob", stats[1].Author)
	assert.Equal(t, 25.0, stats[1].TotalPercent)
	assert.Equal(t, VeryQuiet, stats[1].Talkativeness)
}

func TestMonthlyCountsByAuthor(t *testing.T) {
	records := []pipeline.Record{
		msg(t, "2023-01-10 10:00", "Alice", "a"),
		msg(t, "2023-01-20 10:00", "Bob", "b"),
		msg(t, "2023-03-05 10:00", "Alice", "c"),
	}

	counts := MonthlyCountsByAuthor(records)

	assert.Equal(t, []string{"2023-01", "2023-03"}, counts.Months)
	assert.Equal(t, []string{"Alice", "Bob"}, counts.Authors)
	assert.Equal(t, []float64{1, 1}, counts.Series("Alice"))
	assert.Equal(t, []float64{1, 0}, counts.Series("Bob"))
	assert.Nil(t, counts.Series("Carol"))
}

func TestMonthlyCounts_Tail(t *testing.T) {
	counts := MonthlyCounts{
		Months:  []string{"2023-01", "2023-02", "2023-03", "2023-04"},
		Authors: []string{"Alice"},
		Values:  [][]int{{1}, {2}, {3}, {4}},
	}

	tail := counts.Tail(2)
	assert.Equal(t, []string{"2023-03", "2023-04"}, tail.Months)
	assert.Equal(t, []float64{3, 4}, tail.Series("Alice"))

	assert.Equal(t, counts.Months, counts.Tail(10).Months)
}

func TestTrendStats_FillsTrendColumns(t *testing.T) {
	records := []pipeline.Record{
		msg(t, "2023-01-10 10:00", "Alice", "a"),
		msg(t, "2023-02-10 10:00", "Alice", "b"),
	}

	stats := TrendStats(records)
	require.Len(t, stats, 1)
	assert.NotEmpty(t, stats[0].Trend12Months)
	assert.NotEmpty(t, stats[0].Trend6Months)
	assert.NotEmpty(t, stats[0].Trend3Months)
}
