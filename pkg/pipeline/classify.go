package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/otherjamesbrown/chatlens/pkg/language"
)

var (
	linkRegex = regexp.MustCompile(`https?://\S+`)

	// coordRegex captures the "lat,lon" pair inside a shared-location
	// URL structurally instead of by fixed character offset, so a
	// different URL prefix length cannot silently shift the split.
	coordRegex = regexp.MustCompile(`(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
)

// emojiRanges are the code point ranges tested by the emoji pass:
// emoticons, symbols and pictographs, transport and map symbols, flags,
// dingbats, and enclosed characters.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
	{0x2702, 0x27B0},
	{0x24C2, 0x1F251},
}

// classifyLocations flags location shares, clears their content, and
// extracts the coordinate pairs. A message is a location share iff it
// contains the language's location marker. Pairs with missing or
// unparseable components are dropped from the output, never fatal.
// The returned locations are deduplicated in order of first appearance.
func classifyLocations(records []Record, settings language.Settings) []Location {
	locations := make([]Location, 0)
	seen := make(map[Location]bool)

	for i := range records {
		r := &records[i]
		if !r.HasText() || !strings.Contains(r.Text(), settings.Location) {
			continue
		}
		r.IsLocation = true

		if loc, ok := extractCoordinates(r.Text()); ok && !seen[loc] {
			seen[loc] = true
			locations = append(locations, loc)
		}
		r.clearText()
	}
	return locations
}

// extractCoordinates pulls the lat/lon pair out of a location message.
// The share format is "<marker-word> <url-with-coordinates>"; the pair
// is matched inside the second whitespace token.
func extractCoordinates(text string) (Location, bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return Location{}, false
	}

	m := coordRegex.FindStringSubmatch(fields[1])
	if m == nil {
		return Location{}, false
	}
	lat, err1 := strconv.ParseFloat(m[1], 64)
	lon, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return Location{}, false
	}
	return Location{Lat: lat, Lon: lon}, true
}

// classifyLinks flags messages matching an http(s) URL pattern.
func classifyLinks(records []Record) {
	for i := range records {
		r := &records[i]
		r.IsLink = r.HasText() && linkRegex.MatchString(r.Text())
	}
}

// computeLengths sets the character count of each message. Length is
// left undefined for links: URL length is not representative of
// authored content.
func computeLengths(records []Record) {
	for i := range records {
		r := &records[i]
		if !r.HasText() || r.IsLink {
			r.MsgLength = nil
			continue
		}
		n := runeLen(r.Text())
		r.MsgLength = &n
	}
}

// classifyMultimedia flags messages that exactly equal one of the
// language's media placeholder strings and clears their content.
// The placeholder strings are distinct, so at most one type fires.
func classifyMultimedia(records []Record, settings language.Settings) {
	for i := range records {
		r := &records[i]
		if !r.HasText() {
			continue
		}
		switch r.Text() {
		case settings.Image:
			r.IsImage = true
		case settings.Video:
			r.IsVideo = true
		case settings.GIF:
			r.IsGIF = true
		case settings.Sticker:
			r.IsSticker = true
		case settings.Audio:
			r.IsAudio = true
		case settings.Media:
			r.IsMedia = true
		default:
			continue
		}
		r.clearText()
	}
}

// classifyDeleted flags messages that exactly equal one of the deleted
// indicators and clears their content.
func classifyDeleted(records []Record, settings language.Settings) {
	for i := range records {
		r := &records[i]
		if !r.HasText() {
			continue
		}
		for _, indicator := range settings.Deleted {
			if r.Text() == indicator {
				r.IsDeleted = true
				r.clearText()
				break
			}
		}
	}
}

// classifyEdited flags messages that end with or equal one of the
// edited indicators, case-insensitively. The content is NOT cleared:
// the underlying text minus the indicator remains meaningful for word
// and emoji analysis. A nil message always yields false.
func classifyEdited(records []Record, settings language.Settings) {
	for i := range records {
		r := &records[i]
		if !r.HasText() {
			continue
		}
		text := strings.ToLower(strings.TrimSpace(r.Text()))
		for _, indicator := range settings.Edited {
			li := strings.ToLower(indicator)
			if text == li || strings.HasSuffix(text, li) {
				r.IsEdited = true
				break
			}
		}
	}
}

// classifyEmojis flags messages containing at least one character in
// the emoji ranges. Runs after the content-clearing passes so cleared
// placeholders are never counted as organic text.
func classifyEmojis(records []Record) {
	for i := range records {
		r := &records[i]
		r.IsEmoji = r.HasText() && containsEmoji(r.Text())
	}
}

func containsEmoji(s string) bool {
	for _, r := range s {
		for _, rng := range emojiRanges {
			if r >= rng[0] && r <= rng[1] {
				return true
			}
		}
	}
	return false
}

// markConversationStarters flags records whose gap since the previous
// record exceeds gap. Requires chronological order; must run after the
// author filter so the flags hold for the final record set. The first
// record has no predecessor and is never a starter.
func markConversationStarters(records []Record, gap time.Duration) {
	for i := range records {
		records[i].IsConversationStarter = i > 0 &&
			records[i].Timestamp.Sub(records[i-1].Timestamp) > gap
	}
}

// enrichCalendar derives the year and ISO calendar week fields.
func enrichCalendar(records []Record) {
	for i := range records {
		r := &records[i]
		r.Year = r.Timestamp.Year()
		_, r.Week = r.Timestamp.ISOWeek()
	}
}
