package analysis

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/otherjamesbrown/chatlens/pkg/mathutil"
	"github.com/otherjamesbrown/chatlens/pkg/pipeline"
)

// minWordLength filters out short filler tokens; only words longer
// than this count toward the frequency table.
const minWordLength = 3

// emojiTop is how many emojis the frequency table reports.
const emojiTop = 10

// WordCount is one entry of the word frequency table.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
	Share string `json:"share"` // "k out of n messages"
}

// WordStats tokenizes all surviving message text on whitespace, keeps
// tokens longer than three characters, and counts them, most frequent
// first. Each word carries a human-readable fraction of the message
// volume it appears in.
func WordStats(records []pipeline.Record) []WordCount {
	counts := make(map[string]int)
	for _, r := range records {
		if !r.HasText() {
			continue
		}
		for _, token := range strings.Fields(r.Text()) {
			if utf8.RuneCountInString(token) > minWordLength {
				counts[token]++
			}
		}
	}

	total := len(records)
	result := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		share := ""
		if total > 0 {
			share = mathutil.PercentHelper(float64(count) / float64(total))
		}
		result = append(result, WordCount{Word: word, Count: count, Share: share})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Word < result[j].Word
	})
	return result
}

// emojiRanges mirrors the classifier's emoji pass so frequency counting
// and flagging agree on what an emoji is.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
	{0x2702, 0x27B0},
	{0x24C2, 0x1F251},
}

func isEmojiRune(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// EmojiCount is one entry of the emoji frequency table.
type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// EmojiStats counts every emoji character across all message text and
// returns the ten most used. An emoji-free corpus is a valid steady
// state and yields an empty slice, never an error.
func EmojiStats(records []pipeline.Record) []EmojiCount {
	counts := make(map[rune]int)
	for _, r := range records {
		if !r.HasText() {
			continue
		}
		for _, c := range r.Text() {
			if isEmojiRune(c) && !unicode.IsSpace(c) {
				counts[c]++
			}
		}
	}

	result := make([]EmojiCount, 0, len(counts))
	for emoji, count := range counts {
		result = append(result, EmojiCount{Emoji: string(emoji), Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Emoji < result[j].Emoji
	})

	if len(result) > emojiTop {
		result = result[:emojiTop]
	}
	return result
}

// MonthCount is one calendar month's message volume.
type MonthCount struct {
	Month string `json:"month"` // "2006-01"
	Count int    `json:"count"`
}

// MonthlyVolume is message volume per month with its peak.
type MonthlyVolume struct {
	Months    []MonthCount `json:"months"`
	PeakMonth string       `json:"peak_month"`
	PeakCount int          `json:"peak_count"`
}

// MonthlyMessageVolume counts messages per calendar month and
// identifies the busiest month. The earliest peak wins ties.
func MonthlyMessageVolume(records []pipeline.Record) MonthlyVolume {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Timestamp.Format("2006-01")]++
	}

	months := make([]MonthCount, 0, len(counts))
	for month, count := range counts {
		months = append(months, MonthCount{Month: month, Count: count})
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month < months[j].Month
	})

	volume := MonthlyVolume{Months: months}
	for _, m := range months {
		if m.Count > volume.PeakCount {
			volume.PeakMonth = m.Month
			volume.PeakCount = m.Count
		}
	}
	return volume
}

// AuthorCount is one author's message count.
type AuthorCount struct {
	Author   string `json:"author"`
	Messages int    `json:"messages"`
}

// MessageCountsByAuthor aggregates message counts from raw records,
// most messages first.
func MessageCountsByAuthor(records []pipeline.Record) []AuthorCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Author]++
	}

	result := make([]AuthorCount, 0, len(counts))
	for author, count := range counts {
		result = append(result, AuthorCount{Author: author, Messages: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Messages != result[j].Messages {
			return result[i].Messages > result[j].Messages
		}
		return result[i].Author < result[j].Author
	})
	return result
}

// MostActive picks the busiest entry from pre-aggregated counts. The
// two steps are separate operations on purpose: callers choose
// explicitly whether they hold raw records or counts.
func MostActive(counts []AuthorCount) (AuthorCount, bool) {
	if len(counts) == 0 {
		return AuthorCount{}, false
	}
	best := counts[0]
	for _, c := range counts[1:] {
		if c.Messages > best.Messages {
			best = c
		}
	}
	return best, true
}
