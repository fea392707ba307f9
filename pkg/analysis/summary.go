package analysis

import (
	"fmt"

	clerrors "github.com/otherjamesbrown/chatlens/pkg/errors"
	"github.com/otherjamesbrown/chatlens/pkg/pipeline"
)

// Summary is the whole-chat overview.
type Summary struct {
	TotalMessages      int     `json:"total_messages"`
	UniqueAuthors      int     `json:"unique_authors"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	TotalDays          int     `json:"total_days"`
	AvgMessagesPerDay  float64 `json:"avg_messages_per_day"`
	MostActiveAuthor   string  `json:"most_active_author"`
	MostActiveMessages int     `json:"most_active_messages"`
	MostActivePercent  float64 `json:"most_active_percent"`
}

// ChatSummary aggregates the headline numbers: volume, author count,
// inclusive date span, daily average, and the most active author with
// their share of the total. An empty record set is an error here since
// there is nothing to summarize.
func ChatSummary(records []pipeline.Record) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, fmt.Errorf("chat summary: %w", clerrors.ErrEmptyTranscript)
	}

	first := dayOf(records[0].Timestamp)
	last := first
	for _, r := range records {
		day := dayOf(r.Timestamp)
		if day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}
	totalDays := int(last.Sub(first).Hours()/24) + 1

	counts := MessageCountsByAuthor(records)
	top, _ := MostActive(counts)

	total := len(records)
	return Summary{
		TotalMessages:      total,
		UniqueAuthors:      len(counts),
		StartDate:          first.Format("2006-01-02"),
		EndDate:            last.Format("2006-01-02"),
		TotalDays:          totalDays,
		AvgMessagesPerDay:  float64(total) / float64(totalDays),
		MostActiveAuthor:   top.Author,
		MostActiveMessages: top.Messages,
		MostActivePercent:  float64(top.Messages) / float64(total) * 100,
	}, nil
}

// AuthorAverages is the per-author mean profile: average message length
// and the rate of each classification flag.
type AuthorAverages struct {
	Author       string  `json:"author"`
	AvgMsgLength float64 `json:"avg_msg_length"`
	LinkRate     float64 `json:"link_rate"`
	ImageRate    float64 `json:"image_rate"`
	VideoRate    float64 `json:"video_rate"`
	GIFRate      float64 `json:"gif_rate"`
	StickerRate  float64 `json:"sticker_rate"`
	AudioRate    float64 `json:"audio_rate"`
	MediaRate    float64 `json:"media_rate"`
	DeletedRate  float64 `json:"deleted_rate"`
	EditedRate   float64 `json:"edited_rate"`
	EmojiRate    float64 `json:"emoji_rate"`
	LocationRate float64 `json:"location_rate"`
	StarterRate  float64 `json:"starter_rate"`
}

// Averages computes each author's mean message length (over messages
// where length is defined) and the fraction of their messages carrying
// each flag. Sorted by author name.
func Averages(records []pipeline.Record) []AuthorAverages {
	byAuthor := make(map[string][]pipeline.Record)
	for _, r := range records {
		byAuthor[r.Author] = append(byAuthor[r.Author], r)
	}

	result := make([]AuthorAverages, 0, len(byAuthor))
	for _, author := range distinctAuthors(records) {
		recs := byAuthor[author]
		n := float64(len(recs))

		var lengthSum, lengthCount float64
		a := AuthorAverages{Author: author}
		for _, r := range recs {
			if r.MsgLength != nil {
				lengthSum += float64(*r.MsgLength)
				lengthCount++
			}
			a.LinkRate += rate(r.IsLink)
			a.ImageRate += rate(r.IsImage)
			a.VideoRate += rate(r.IsVideo)
			a.GIFRate += rate(r.IsGIF)
			a.StickerRate += rate(r.IsSticker)
			a.AudioRate += rate(r.IsAudio)
			a.MediaRate += rate(r.IsMedia)
			a.DeletedRate += rate(r.IsDeleted)
			a.EditedRate += rate(r.IsEdited)
			a.EmojiRate += rate(r.IsEmoji)
			a.LocationRate += rate(r.IsLocation)
			a.StarterRate += rate(r.IsConversationStarter)
		}
		if lengthCount > 0 {
			a.AvgMsgLength = lengthSum / lengthCount
		}
		a.LinkRate /= n
		a.ImageRate /= n
		a.VideoRate /= n
		a.GIFRate /= n
		a.StickerRate /= n
		a.AudioRate /= n
		a.MediaRate /= n
		a.DeletedRate /= n
		a.EditedRate /= n
		a.EmojiRate /= n
		a.LocationRate /= n
		a.StarterRate /= n

		result = append(result, a)
	}
	return result
}

func rate(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// FlagDistribution is, per classification flag, each author's share of
// the chat-wide total for that flag.
type FlagDistribution struct {
	Authors []string    `json:"authors"`
	Flags   []string    `json:"flags"`
	Values  [][]float64 `json:"values"` // Values[author][flag]
}

// distributionFlags is the column order of FlagDistribution.
var distributionFlags = []string{
	"link", "image", "video", "gif", "sticker", "audio", "media",
	"deleted", "edited", "emoji", "location", "starter",
}

func flagValue(r pipeline.Record, flag string) bool {
	switch flag {
	case "link":
		return r.IsLink
	case "image":
		return r.IsImage
	case "video":
		return r.IsVideo
	case "gif":
		return r.IsGIF
	case "sticker":
		return r.IsSticker
	case "audio":
		return r.IsAudio
	case "media":
		return r.IsMedia
	case "deleted":
		return r.IsDeleted
	case "edited":
		return r.IsEdited
	case "emoji":
		return r.IsEmoji
	case "location":
		return r.IsLocation
	case "starter":
		return r.IsConversationStarter
	default:
		return false
	}
}

// Distribution computes who contributes what share of every flag. A
// flag nobody set leaves its column at zero.
func Distribution(records []pipeline.Record) FlagDistribution {
	authors := distinctAuthors(records)
	index := make(map[string]int, len(authors))
	for i, a := range authors {
		index[a] = i
	}

	values := make([][]float64, len(authors))
	for i := range values {
		values[i] = make([]float64, len(distributionFlags))
	}
	totals := make([]float64, len(distributionFlags))

	for _, r := range records {
		for col, flag := range distributionFlags {
			if flagValue(r, flag) {
				values[index[r.Author]][col]++
				totals[col]++
			}
		}
	}

	for row := range values {
		for col := range values[row] {
			if totals[col] > 0 {
				values[row][col] /= totals[col]
			}
		}
	}

	return FlagDistribution{Authors: authors, Flags: distributionFlags, Values: values}
}
