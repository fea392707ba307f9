package pipeline

import (
	"sort"
	"time"

	"github.com/otherjamesbrown/chatlens/pkg/transcript"
)

// timestampLayouts covers the export formats the transcript package
// emits plus the common machine representations a caller-supplied
// source may hand over directly.
var timestampLayouts = []string{
	"1/2/06, 3:04 PM",
	"1/2/06, 15:04",
	"1/2/2006, 3:04 PM",
	"1/2/2006, 15:04",
	"2.1.06, 15:04:05",
	"2.1.06, 15:04",
	"2.1.2006, 15:04:05",
	"2.1.2006, 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// parseTimestamp tries each known layout in order.
func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// normalize parses timestamps, derives the calendar date, restricts the
// set to the selected authors, and establishes chronological order.
// A record whose timestamp fails to parse is dropped, not fatal to the
// batch. The sort is stable so ties keep their input order; this order
// is the sole basis for every "previous message" relationship computed
// downstream. It returns the surviving records and the number dropped
// for unparseable timestamps.
func normalize(raw []transcript.RawRecord, selectedAuthors []string) ([]Record, int) {
	allowed := make(map[string]bool, len(selectedAuthors))
	for _, a := range selectedAuthors {
		allowed[a] = true
	}

	records := make([]Record, 0, len(raw))
	dropped := 0
	for _, r := range raw {
		ts, ok := parseTimestamp(r.Timestamp)
		if !ok {
			dropped++
			continue
		}
		if !allowed[r.Author] {
			continue
		}
		records = append(records, Record{
			Timestamp: ts,
			Author:    r.Author,
			Message:   r.Message,
			Date:      ts.Format("2006-01-02"),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, dropped
}

// filterAuthors drops records whose author identity is untrustworthy:
// empty, or containing a '+' (an unnamed phone-number contact). It runs
// after content classification and before any per-author aggregation.
func filterAuthors(records []Record) []Record {
	kept := records[:0:0]
	for _, r := range records {
		if r.Author == "" || containsPlus(r.Author) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func containsPlus(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '+' {
			return true
		}
	}
	return false
}
