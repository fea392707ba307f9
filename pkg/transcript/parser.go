package transcript

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Export line shapes. Android exports look like
//
//	3/15/23, 10:05 PM - Alice: message
//
// and iOS exports like
//
//	[15.03.23, 22:05:12] Alice: message
//
// System lines (encryption notice, group changes) have no "Author: "
// part; they are kept with an empty author so the pipeline's author
// filter can drop them.
const (
	androidSep = " - "
	iosOpen    = '['
	iosClose   = "] "
)

// Parse reads a chat export line by line.
// Lines that do not open a new record continue the previous message
// (multi-line messages are exported that way). Message text is NFC
// normalized and stripped of the invisible direction marks the exporter
// inserts around placeholders.
func Parse(r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	result := &Result{
		Records: make([]RawRecord, 0),
		Authors: make([]string, 0),
	}
	authorSet := make(map[string]bool)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		rec, ok := splitLine(line)
		if !ok {
			// Continuation of the previous message.
			if n := len(result.Records); n > 0 && result.Records[n-1].Message != nil {
				joined := *result.Records[n-1].Message + "\n" + cleanText(line)
				result.Records[n-1].Message = &joined
			}
			continue
		}

		result.Records = append(result.Records, rec)
		if rec.Author != "" && !authorSet[rec.Author] {
			authorSet[rec.Author] = true
			result.Authors = append(result.Authors, rec.Author)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// splitLine tries both export shapes and reports whether the line opens
// a new record.
func splitLine(line string) (RawRecord, bool) {
	line = strings.TrimLeft(line, "‎‏")

	if strings.HasPrefix(line, string(iosOpen)) {
		if end := strings.Index(line, iosClose); end > 1 {
			ts := line[1:end]
			if looksLikeTimestamp(ts) {
				return buildRecord(ts, line[end+len(iosClose):]), true
			}
		}
		return RawRecord{}, false
	}

	sep := strings.Index(line, androidSep)
	if sep <= 0 {
		return RawRecord{}, false
	}
	ts := line[:sep]
	if !looksLikeTimestamp(ts) {
		return RawRecord{}, false
	}
	return buildRecord(ts, line[sep+len(androidSep):]), true
}

// buildRecord splits "Author: message" off the line remainder.
func buildRecord(ts, rest string) RawRecord {
	rec := RawRecord{Timestamp: strings.TrimSpace(ts)}

	if colon := strings.Index(rest, ": "); colon > 0 {
		rec.Author = strings.TrimSpace(cleanText(rest[:colon]))
		msg := cleanText(rest[colon+2:])
		rec.Message = &msg
	} else {
		// System line, no author and the whole remainder as message.
		msg := cleanText(rest)
		rec.Message = &msg
	}
	return rec
}

// looksLikeTimestamp is a cheap shape check: a timestamp token must
// start with a digit and contain both a date and a time separator.
// Real parsing happens in the normalizer.
func looksLikeTimestamp(s string) bool {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return false
	}
	hasDate := strings.ContainsAny(s, "/.-")
	hasTime := strings.Contains(s, ":")
	return hasDate && hasTime
}

// cleanText NFC-normalizes text and drops the left-to-right and
// right-to-left marks WhatsApp wraps around placeholders.
func cleanText(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "‎", "")
	s = strings.ReplaceAll(s, "‏", "")
	return strings.TrimSpace(s)
}
