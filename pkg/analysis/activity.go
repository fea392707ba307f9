// Package analysis derives per-author and time-series statistics from
// an annotated record set. Every function here is a pure function of
// its input: none mutates the records, so independent analyses are safe
// to run concurrently over the same set (see Suite).
package analysis

import (
	"sort"
	"time"

	"github.com/otherjamesbrown/chatlens/pkg/mathutil"
	"github.com/otherjamesbrown/chatlens/pkg/pipeline"
)

// Smoothing spreads for the activity time series.
const (
	dailySigma     = 6  // days
	timeOfDaySigma = 60 // minutes
	minutesPerDay  = 24 * 60
	wrapPad        = 120 // minutes mirrored across midnight before smoothing
)

// ActivityRate is the share of days an author was active.
type ActivityRate struct {
	Author  string  `json:"author"`
	Percent float64 `json:"percent"`
}

// ActivityRates computes per-author activity: the count of distinct
// calendar dates with at least one message, over the days between that
// author's own first message date and the global maximum date. A late
// joiner gets a shorter denominator, which rewards recent-but-consistent
// participants. Sorted most active first.
func ActivityRates(records []pipeline.Record) []ActivityRate {
	if len(records) == 0 {
		return nil
	}

	activeDays := make(map[string]map[string]bool)
	firstDay := make(map[string]time.Time)
	var maxDay time.Time

	for _, r := range records {
		day := dayOf(r.Timestamp)
		if day.After(maxDay) {
			maxDay = day
		}
		if activeDays[r.Author] == nil {
			activeDays[r.Author] = make(map[string]bool)
			firstDay[r.Author] = day
		}
		activeDays[r.Author][r.Date] = true
		if day.Before(firstDay[r.Author]) {
			firstDay[r.Author] = day
		}
	}

	rates := make([]ActivityRate, 0, len(activeDays))
	for author, days := range activeDays {
		span := int(maxDay.Sub(firstDay[author]).Hours() / 24)
		if span < 1 {
			// Author's first day is the last day of the chat.
			span = 1
		}
		rates = append(rates, ActivityRate{
			Author:  author,
			Percent: 100 * float64(len(days)) / float64(span),
		})
	}

	sort.Slice(rates, func(i, j int) bool {
		if rates[i].Percent != rates[j].Percent {
			return rates[i].Percent > rates[j].Percent
		}
		return rates[i].Author < rates[j].Author
	})
	return rates
}

// TimeSeries is a time-indexed table with one column per author.
type TimeSeries struct {
	Authors []string    `json:"authors"`
	Dates   []string    `json:"dates"`
	Values  [][]float64 `json:"values"` // Values[row][author column]
}

// SmoothedDailyActivity sums message length per author per day over the
// last years calendar years (relative to the max year present), fills
// missing days with zero, and smooths each author column with a
// Gaussian kernel along the time axis only. Day-to-day noise goes,
// week-scale trends stay.
func SmoothedDailyActivity(records []pipeline.Record, years int) TimeSeries {
	filtered := filterLastYears(records, years)
	if len(filtered) == 0 {
		return TimeSeries{}
	}

	authors := distinctAuthors(filtered)
	index := make(map[string]int, len(authors))
	for i, a := range authors {
		index[a] = i
	}

	start := dayOf(filtered[0].Timestamp)
	end := start
	for _, r := range filtered {
		day := dayOf(r.Timestamp)
		if day.Before(start) {
			start = day
		}
		if day.After(end) {
			end = day
		}
	}

	n := int(end.Sub(start).Hours()/24) + 1
	dates := make([]string, n)
	for i := 0; i < n; i++ {
		dates[i] = start.AddDate(0, 0, i).Format("2006-01-02")
	}

	// One column per author, zero-filled.
	columns := make([][]float64, len(authors))
	for i := range columns {
		columns[i] = make([]float64, n)
	}
	for _, r := range filtered {
		row := int(dayOf(r.Timestamp).Sub(start).Hours() / 24)
		columns[index[r.Author]][row] += float64(r.Length())
	}

	for i := range columns {
		columns[i] = mathutil.GaussianSmooth(columns[i], dailySigma)
	}

	return TimeSeries{Authors: authors, Dates: dates, Values: transpose(columns, n)}
}

// RelativeActivity is the smoothed daily series with each day's row
// normalized to sum to one: whose activity dominates on this day,
// independent of absolute volume. Days with no activity at all stay
// zero.
func RelativeActivity(records []pipeline.Record, years int) TimeSeries {
	ts := SmoothedDailyActivity(records, years)
	for row := range ts.Values {
		var total float64
		for _, v := range ts.Values[row] {
			total += v
		}
		if total == 0 {
			continue
		}
		for col := range ts.Values[row] {
			ts.Values[row][col] /= total
		}
	}
	return ts
}

// WeekdayProfile is per-author activity share by day of week.
type WeekdayProfile struct {
	Authors []string    `json:"authors"`
	Days    []string    `json:"days"`
	Values  [][]float64 `json:"values"` // Values[day][author column]
}

// weekdayNames is Monday-first, matching ISO ordering.
var weekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// ActivityByDayOfWeek sums message length per author per weekday and
// normalizes per author, so each author's seven values sum to one. The
// result answers which days are relatively busiest for an author, not
// how authors compare in absolute volume.
func ActivityByDayOfWeek(records []pipeline.Record) WeekdayProfile {
	authors := distinctAuthors(records)
	index := make(map[string]int, len(authors))
	for i, a := range authors {
		index[a] = i
	}

	sums := make([][]float64, 7)
	for i := range sums {
		sums[i] = make([]float64, len(authors))
	}
	for _, r := range records {
		// time.Weekday is Sunday-based; shift to Monday-first.
		day := (int(r.Timestamp.Weekday()) + 6) % 7
		sums[day][index[r.Author]] += float64(r.Length())
	}

	for col := range authors {
		var total float64
		for day := 0; day < 7; day++ {
			total += sums[day][col]
		}
		if total == 0 {
			continue
		}
		for day := 0; day < 7; day++ {
			sums[day][col] /= total
		}
	}

	return WeekdayProfile{Authors: authors, Days: weekdayNames, Values: sums}
}

// MinuteProfile is per-author activity by minute of day, 1440 bins.
type MinuteProfile struct {
	Authors []string    `json:"authors"`
	Values  [][]float64 `json:"values"` // Values[minute][author column]
}

// ActivityByTimeOfDay sums message length per author per minute of day
// and smooths each author column with a Gaussian kernel. The series
// wraps at midnight: the last wrapPad minutes are prepended and the
// first wrapPad appended before smoothing and trimmed after, so the
// kernel sees no artificial day boundary.
func ActivityByTimeOfDay(records []pipeline.Record) MinuteProfile {
	authors := distinctAuthors(records)
	index := make(map[string]int, len(authors))
	for i, a := range authors {
		index[a] = i
	}

	columns := make([][]float64, len(authors))
	for i := range columns {
		columns[i] = make([]float64, minutesPerDay)
	}
	for _, r := range records {
		minute := r.Timestamp.Hour()*60 + r.Timestamp.Minute()
		columns[index[r.Author]][minute] += float64(r.Length())
	}

	for i, col := range columns {
		padded := make([]float64, 0, minutesPerDay+2*wrapPad)
		padded = append(padded, col[minutesPerDay-wrapPad:]...)
		padded = append(padded, col...)
		padded = append(padded, col[:wrapPad]...)

		smoothed := mathutil.GaussianSmooth(padded, timeOfDaySigma)
		columns[i] = smoothed[wrapPad : wrapPad+minutesPerDay]
	}

	return MinuteProfile{Authors: authors, Values: transpose(columns, minutesPerDay)}
}

// filterLastYears keeps records with Year strictly greater than
// maxYear - years, mirroring the window the smoothed series covers.
func filterLastYears(records []pipeline.Record, years int) []pipeline.Record {
	maxYear := 0
	for _, r := range records {
		if r.Year > maxYear {
			maxYear = r.Year
		}
	}
	filtered := make([]pipeline.Record, 0, len(records))
	for _, r := range records {
		if r.Year > maxYear-years {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// distinctAuthors returns the sorted set of authors in the record set.
func distinctAuthors(records []pipeline.Record) []string {
	seen := make(map[string]bool)
	authors := make([]string, 0)
	for _, r := range records {
		if !seen[r.Author] {
			seen[r.Author] = true
			authors = append(authors, r.Author)
		}
	}
	sort.Strings(authors)
	return authors
}

// transpose flips author-major columns into row-major time series values.
func transpose(columns [][]float64, rows int) [][]float64 {
	values := make([][]float64, rows)
	for row := 0; row < rows; row++ {
		values[row] = make([]float64, len(columns))
		for col := range columns {
			values[row][col] = columns[col][row]
		}
	}
	return values
}

// dayOf truncates a timestamp to its calendar day.
func dayOf(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}
