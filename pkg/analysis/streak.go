package analysis

import (
	"time"

	"github.com/otherjamesbrown/chatlens/pkg/pipeline"
)

// Streak is a maximal run of consecutive messages from one author,
// uninterrupted by any other author.
type Streak struct {
	Author   string            `json:"author"`
	Length   int               `json:"length"`
	Start    time.Time         `json:"start"`
	End      time.Time         `json:"end"`
	Messages []pipeline.Record `json:"messages"`
}

// LongestStreak scans the chronological sequence for the longest run of
// same-author messages. Ties go to the earliest run. An empty record
// set yields a zero Streak.
func LongestStreak(records []pipeline.Record) Streak {
	sorted := chronological(records)
	if len(sorted) == 0 {
		return Streak{}
	}

	best := Streak{}
	runStart := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && sorted[i].Author == sorted[runStart].Author {
			continue
		}
		if length := i - runStart; length > best.Length {
			best = Streak{
				Author:   sorted[runStart].Author,
				Length:   length,
				Start:    sorted[runStart].Timestamp,
				End:      sorted[i-1].Timestamp,
				Messages: sorted[runStart:i],
			}
		}
		runStart = i
	}
	return best
}
