// Package transcript reads exported chat logs into raw records.
// It is the message source for the preprocessing pipeline: it only
// splits lines into (timestamp, author, message) triples and makes no
// attempt to classify or order them.
package transcript

// RawRecord is one line of an exported chat, untouched beyond line
// splitting. Timestamp stays a string here; parsing and validation
// belong to the pipeline's normalizer. Message is nil for lines that
// carry no body at all.
type RawRecord struct {
	Timestamp string  `json:"timestamp"`
	Author    string  `json:"author"`
	Message   *string `json:"message,omitempty"`
}

// Result is a parsed chat export.
type Result struct {
	Records []RawRecord `json:"records"`
	// Authors holds the distinct author names in order of first appearance.
	// System lines with no author are not included.
	Authors []string `json:"authors"`
}
