package analysis

import (
	"sort"
	"time"

	"github.com/otherjamesbrown/chatlens/pkg/mathutil"
	"github.com/otherjamesbrown/chatlens/pkg/pipeline"
)

// selfResponseWindow is the gap under which a same-author follow-up is
// a burst artifact, not a response.
const selfResponseWindow = 180 * time.Second

// AuthorMedian is one author's median response time.
type AuthorMedian struct {
	Author        string  `json:"author"`
	MedianMinutes float64 `json:"median_minutes"`
}

// ResponseStats summarizes response latency per author.
type ResponseStats struct {
	Medians          []AuthorMedian `json:"medians"`
	SlowestResponder string         `json:"slowest_responder"`
}

// ResponseTimes computes each author's median gap to the previous
// message, excluding self-responses: rapid multi-part messages from
// the same author are not true replies. The author with the largest
// median is the slowest responder.
func ResponseTimes(records []pipeline.Record) ResponseStats {
	sorted := chronological(records)

	gaps := make(map[string][]float64)
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].Timestamp.Sub(sorted[i-1].Timestamp)
		if sorted[i].Author == sorted[i-1].Author && gap < selfResponseWindow {
			continue
		}
		gaps[sorted[i].Author] = append(gaps[sorted[i].Author], gap.Minutes())
	}

	medians := make([]AuthorMedian, 0, len(gaps))
	for author, values := range gaps {
		medians = append(medians, AuthorMedian{
			Author:        author,
			MedianMinutes: mathutil.Median(values),
		})
	}
	sort.Slice(medians, func(i, j int) bool {
		if medians[i].MedianMinutes != medians[j].MedianMinutes {
			return medians[i].MedianMinutes > medians[j].MedianMinutes
		}
		return medians[i].Author < medians[j].Author
	})

	stats := ResponseStats{Medians: medians}
	if len(medians) > 0 {
		stats.SlowestResponder = medians[0].Author
	}
	return stats
}

// ResponseMatrix is the row-normalized respondent x responded-to table:
// of X's responses, what fraction went to Y.
type ResponseMatrix struct {
	Authors []string    `json:"authors"` // both rows and columns
	Values  [][]float64 `json:"values"`  // Values[respondent][responded_to]
}

// Responses builds the response matrix. Self-response bursts are
// excluded first; "previous" then means the previous record in the
// remaining sequence. Every row with at least one qualifying response
// sums to one.
func Responses(records []pipeline.Record) ResponseMatrix {
	sorted := chronological(records)

	// Drop burst messages, keeping the first record unconditionally
	// (it has no gap to test).
	kept := make([]pipeline.Record, 0, len(sorted))
	for i, r := range sorted {
		if i > 0 &&
			r.Author == sorted[i-1].Author &&
			r.Timestamp.Sub(sorted[i-1].Timestamp) < selfResponseWindow {
			continue
		}
		kept = append(kept, r)
	}

	authors := distinctAuthors(records)
	index := make(map[string]int, len(authors))
	for i, a := range authors {
		index[a] = i
	}

	counts := make([][]float64, len(authors))
	for i := range counts {
		counts[i] = make([]float64, len(authors))
	}
	for i := 1; i < len(kept); i++ {
		counts[index[kept[i].Author]][index[kept[i-1].Author]]++
	}

	for row := range counts {
		var total float64
		for _, v := range counts[row] {
			total += v
		}
		if total == 0 {
			continue
		}
		for col := range counts[row] {
			counts[row][col] /= total
		}
	}

	return ResponseMatrix{Authors: authors, Values: counts}
}

// chronological returns a stably sorted copy; the input order is never
// touched.
func chronological(records []pipeline.Record) []pipeline.Record {
	sorted := make([]pipeline.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}
