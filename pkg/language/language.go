// Package language holds the per-language pattern tables used to classify
// exported chat messages: media placeholders, deletion and edit markers,
// and the location-share marker. The tables are pure data; the only
// behavior is lookup with validation.
package language

import (
	"fmt"
	"strings"

	clerrors "github.com/otherjamesbrown/chatlens/pkg/errors"
)

// Settings holds the exact-match and marker strings for one language.
//
// Deleted entries are exact whole-message matches. Edited entries match
// case-insensitively as a suffix or as the whole message, because the
// edit indicator is appended to the original content rather than
// replacing it. Location is a substring marker.
type Settings struct {
	Image   string
	Video   string
	GIF     string
	Audio   string
	Sticker string
	Media   string

	Deleted  []string
	Edited   []string
	Location string
}

// Placeholder returns the exact placeholder string for the given media kind.
// Kind must be one of "image", "video", "gif", "audio", "sticker", "media".
func (s Settings) Placeholder(kind string) string {
	switch kind {
	case "image":
		return s.Image
	case "video":
		return s.Video
	case "gif":
		return s.GIF
	case "audio":
		return s.Audio
	case "sticker":
		return s.Sticker
	case "media":
		return s.Media
	default:
		return ""
	}
}

// Supported lists the languages with pattern tables, in display order.
var Supported = []string{"English", "Turkish", "German"}

var settings = map[string]Settings{
	"English": {
		Image:   "image omitted",
		Video:   "video omitted",
		GIF:     "GIF omitted",
		Audio:   "audio omitted",
		Sticker: "sticker omitted",
		Media:   "<Media omitted>",
		Deleted: []string{
			"This message was deleted.",
			"You deleted this message.",
			"This message was deleted",
		},
		Edited: []string{
			"This message was edited",
			"You edited this message",
		},
		Location: "Location https://",
	},
	"Turkish": {
		Image:   "görüntü dahil edilmedi",
		Video:   "video dahil edilmedi",
		GIF:     "GIF dahil edilmedi",
		Audio:   "ses dahil edilmedi",
		Sticker: "Çıkartma dahil edilmedi",
		Media:   "<görüntü dahil edilmedi>",
		Deleted: []string{
			"Bu mesaj silindi.",
			"Bu mesajı sildiniz.",
		},
		Edited: []string{
			"Bu mesaj düzenlendi",
			"Bu mesajı düzenlediniz",
		},
		Location: "Konum https://",
	},
	"German": {
		Image:   "Bild weggelassen",
		Video:   "Video weggelassen",
		GIF:     "GIF weggelassen",
		Audio:   "Audio weggelassen",
		Sticker: "Sticker weggelassen",
		Media:   "<Medien weggelassen>",
		Deleted: []string{
			"Diese Nachricht wurde gelöscht.",
			"Du hast diese Nachricht gelöscht.",
		},
		Edited: []string{
			"Diese Nachricht wurde bearbeitet",
			"Du hast diese Nachricht bearbeitet",
		},
		Location: "Standort https://",
	},
}

// Get returns the pattern table for the named language.
// Unknown names fail with ErrUnsupportedLanguage; the error message names
// the invalid input and the valid set so the caller can surface it as is.
func Get(name string) (Settings, error) {
	s, ok := settings[name]
	if !ok {
		return Settings{}, fmt.Errorf("%w: %q (supported: %s)",
			clerrors.ErrUnsupportedLanguage, name, strings.Join(Supported, ", "))
	}
	return s, nil
}
