package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/otherjamesbrown/chatlens/pkg/mathutil"
	"github.com/otherjamesbrown/chatlens/pkg/pipeline"
)

// Talkativeness labels, most to least.
const (
	VeryTalkative = "Very talkative"
	Talkative     = "Talkative"
	Average       = "Average"
	Quiet         = "Quiet"
	VeryQuiet     = "Very quiet"
)

// InsufficientTrend is returned by AnalyzeTrend for series under two points.
const InsufficientTrend = "Insufficient data"

// pValueThreshold gates trend direction on statistical significance.
const pValueThreshold = 0.1

// AuthorStat is the per-author messaging profile.
type AuthorStat struct {
	Author        string  `json:"author"`
	Messages      int     `json:"messages"`
	TotalPercent  float64 `json:"total_percent"`
	Talkativeness string  `json:"talkativeness"`
	AvgPerDay     float64 `json:"avg_per_day"`
	Trend12Months string  `json:"trend_12_months,omitempty"`
	Trend6Months  string  `json:"trend_6_months,omitempty"`
	Trend3Months  string  `json:"trend_3_months,omitempty"`
}

// Talkativeness classifies an author's message share into one of five
// tiers by the ratio of their percentage to the equal share 100/n.
// All comparisons are strict, so exact boundary ratios fall into the
// lower tier.
func Talkativeness(percentage float64, numAuthors int) string {
	average := 100 / float64(numAuthors)
	ratio := percentage / average

	switch {
	case ratio > 2:
		return VeryTalkative
	case ratio > 1.5:
		return Talkative
	case ratio > 0.75:
		return Average
	case ratio > 0.5:
		return Quiet
	default:
		return VeryQuiet
	}
}

// AuthorStats computes message count, share of total, talkativeness
// tier, and average messages per day for each author, most messages
// first. Trend columns are left empty; TrendStats fills them.
func AuthorStats(records []pipeline.Record) []AuthorStat {
	if len(records) == 0 {
		return nil
	}

	counts := make(map[string]int)
	minTS, maxTS := records[0].Timestamp, records[0].Timestamp
	for _, r := range records {
		counts[r.Author]++
		if r.Timestamp.Before(minTS) {
			minTS = r.Timestamp
		}
		if r.Timestamp.After(maxTS) {
			maxTS = r.Timestamp
		}
	}

	total := len(records)
	numAuthors := len(counts)
	rangeDays := int(maxTS.Sub(minTS).Hours()/24) + 1

	stats := make([]AuthorStat, 0, numAuthors)
	for author, count := range counts {
		percent := mathutil.Round2(float64(count) * 100 / float64(total))
		stats = append(stats, AuthorStat{
			Author:        author,
			Messages:      count,
			TotalPercent:  percent,
			Talkativeness: Talkativeness(percent, numAuthors),
			AvgPerDay:     mathutil.Round2(float64(count) / float64(rangeDays)),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Messages != stats[j].Messages {
			return stats[i].Messages > stats[j].Messages
		}
		return stats[i].Author < stats[j].Author
	})
	return stats
}

// MonthlyCounts is the (calendar month x author) message-count grid,
// chronologically sorted and zero-filled.
type MonthlyCounts struct {
	Months  []string `json:"months"` // "2006-01"
	Authors []string `json:"authors"`
	Values  [][]int  `json:"values"` // Values[month][author column]
}

// Series returns one author's counts across all months as floats.
func (m MonthlyCounts) Series(author string) []float64 {
	col := -1
	for i, a := range m.Authors {
		if a == author {
			col = i
			break
		}
	}
	if col < 0 {
		return nil
	}
	series := make([]float64, len(m.Months))
	for row := range m.Months {
		series[row] = float64(m.Values[row][col])
	}
	return series
}

// Tail returns the trailing n months of the grid (all of it when n is
// larger than the month count).
func (m MonthlyCounts) Tail(n int) MonthlyCounts {
	if n >= len(m.Months) {
		return m
	}
	start := len(m.Months) - n
	return MonthlyCounts{
		Months:  m.Months[start:],
		Authors: m.Authors,
		Values:  m.Values[start:],
	}
}

// MonthlyCountsByAuthor pivots message counts into a month-by-author
// grid covering every month with at least one message.
func MonthlyCountsByAuthor(records []pipeline.Record) MonthlyCounts {
	if len(records) == 0 {
		return MonthlyCounts{}
	}

	authors := distinctAuthors(records)
	authorIdx := make(map[string]int, len(authors))
	for i, a := range authors {
		authorIdx[a] = i
	}

	monthSet := make(map[string]bool)
	for _, r := range records {
		monthSet[r.Timestamp.Format("2006-01")] = true
	}
	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	monthIdx := make(map[string]int, len(months))
	for i, m := range months {
		monthIdx[m] = i
	}

	values := make([][]int, len(months))
	for i := range values {
		values[i] = make([]int, len(authors))
	}
	for _, r := range records {
		values[monthIdx[r.Timestamp.Format("2006-01")]][authorIdx[r.Author]]++
	}

	return MonthlyCounts{Months: months, Authors: authors, Values: values}
}

// AnalyzeTrend labels the direction and strength of a series.
//
// Direction comes from an ordinary least-squares fit over the index:
// "Increase" or "Decrease" when the slope is significant (p < 0.1),
// "No trend" otherwise. Strength comes from the percent change between
// first and last value: "Strong" above 50, "Moderate" above 25,
// "Slight" otherwise. A first value of zero makes the change infinite,
// which reads as Strong. Series under two points are "Insufficient data".
func AnalyzeTrend(series []float64) string {
	if len(series) < 2 {
		return InsufficientTrend
	}

	x := make([]float64, len(series))
	for i := range x {
		x[i] = float64(i)
	}
	_, slope := stat.LinearRegression(x, series, nil, false)
	p := slopePValue(x, series)

	first, last := series[0], series[len(series)-1]
	pctChange := math.Inf(1)
	if first != 0 {
		pctChange = (last - first) / first * 100
	}

	direction := "No trend"
	if p < pValueThreshold {
		if slope > 0 {
			direction = "Increase"
		} else {
			direction = "Decrease"
		}
	}

	strength := "Slight"
	switch {
	case math.Abs(pctChange) > 50:
		strength = "Strong"
	case math.Abs(pctChange) > 25:
		strength = "Moderate"
	}

	return fmt.Sprintf("%s %s", strength, direction)
}

// slopePValue is the two-sided p-value of the regression slope, from
// the t statistic of the Pearson correlation with n-2 degrees of
// freedom. Degenerate series (constant, or only two points) yield 1.
func slopePValue(x, y []float64) float64 {
	n := float64(len(y))
	if n <= 2 {
		return 1
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 1
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	t := r * math.Sqrt((n-2)/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 2}
	return 2 * dist.CDF(-math.Abs(t))
}

// TrendStats is AuthorStats plus trend labels over the trailing 12, 6,
// and 3 months of monthly activity.
func TrendStats(records []pipeline.Record) []AuthorStat {
	stats := AuthorStats(records)
	counts := MonthlyCountsByAuthor(records)

	for i := range stats {
		stats[i].Trend12Months = AnalyzeTrend(counts.Tail(12).Series(stats[i].Author))
		stats[i].Trend6Months = AnalyzeTrend(counts.Tail(6).Series(stats[i].Author))
		stats[i].Trend3Months = AnalyzeTrend(counts.Tail(3).Series(stats[i].Author))
	}
	return stats
}
