// Package pipeline turns a raw chat export into an annotated record set.
// It runs a fixed sequence of passes: normalization, content
// classification, author filtering, and calendar enrichment. The output
// is immutable by convention; every analysis function takes it by value
// and never writes back.
package pipeline

import (
	"time"
	"unicode/utf8"
)

// Record is one message after the full preprocessing pipeline.
//
// Message is nil when the content is unavailable or uninformative:
// media placeholders, deleted messages, and location shares are cleared.
// Edited messages keep their content since the text minus the indicator
// is still analyzable. MsgLength is nil for links because URL length
// says nothing about authored content.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
	Message   *string   `json:"message,omitempty"`

	Date string `json:"date"`
	Year int    `json:"year"`
	Week int    `json:"week"`

	IsLink     bool `json:"is_link"`
	IsImage    bool `json:"is_image"`
	IsVideo    bool `json:"is_video"`
	IsGIF      bool `json:"is_gif"`
	IsSticker  bool `json:"is_sticker"`
	IsAudio    bool `json:"is_audio"`
	IsMedia    bool `json:"is_media"`
	IsDeleted  bool `json:"is_deleted"`
	IsEdited   bool `json:"is_edited"`
	IsEmoji    bool `json:"is_emoji"`
	IsLocation bool `json:"is_location"`

	MsgLength             *int `json:"msg_length,omitempty"`
	IsConversationStarter bool `json:"is_conversation_starter"`
}

// Text returns the message content, or "" when it was cleared.
func (r Record) Text() string {
	if r.Message == nil {
		return ""
	}
	return *r.Message
}

// HasText reports whether the record still carries content.
func (r Record) HasText() bool {
	return r.Message != nil
}

// Length returns the message length in characters, or 0 when undefined.
func (r Record) Length() int {
	if r.MsgLength == nil {
		return 0
	}
	return *r.MsgLength
}

// Location is one shared coordinate pair, split off its source record.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Result is the pipeline output: the annotated record set plus the
// deduplicated locations extracted from location shares.
type Result struct {
	Records   []Record   `json:"records"`
	Locations []Location `json:"locations"`
}

// setText replaces the record's message, keeping length bookkeeping out
// of the classifier passes.
func (r *Record) setText(s string) {
	r.Message = &s
}

// clearText nulls the message content.
func (r *Record) clearText() {
	r.Message = nil
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
