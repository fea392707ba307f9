// Package errors provides common domain error types for chatlens.
//
// This package defines sentinel errors for the configuration boundary
// (unsupported language, empty author allow-list) and for expected
// analytic steady states. Using typed errors enables consistent error
// handling with errors.Is() checks.
//
// Usage:
//
//	import clerrors "github.com/otherjamesbrown/chatlens/pkg/errors"
//
//	// Return a domain error
//	return Settings{}, fmt.Errorf("language %q: %w", name, clerrors.ErrUnsupportedLanguage)
//
//	// Check for domain errors
//	if clerrors.IsUnsupportedLanguage(err) {
//	    // surface the supported set to the user
//	}
package errors

import "errors"

// Domain errors - common sentinel errors for pipeline and analysis conditions.
var (
	// ErrUnsupportedLanguage indicates the requested language has no pattern table.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrNoAuthors indicates an empty author allow-list was supplied.
	ErrNoAuthors = errors.New("no authors selected")

	// ErrEmptyTranscript indicates the record set is empty after preprocessing.
	ErrEmptyTranscript = errors.New("empty transcript")

	// ErrInsufficientData indicates an analytic function has too few points to work with.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrParse indicates the transcript source could not be parsed at all.
	ErrParse = errors.New("parse error")
)

// IsUnsupportedLanguage reports whether any error in err's chain is ErrUnsupportedLanguage.
func IsUnsupportedLanguage(err error) bool {
	return errors.Is(err, ErrUnsupportedLanguage)
}

// IsNoAuthors reports whether any error in err's chain is ErrNoAuthors.
func IsNoAuthors(err error) bool {
	return errors.Is(err, ErrNoAuthors)
}

// IsEmptyTranscript reports whether any error in err's chain is ErrEmptyTranscript.
func IsEmptyTranscript(err error) bool {
	return errors.Is(err, ErrEmptyTranscript)
}

// IsInsufficientData reports whether any error in err's chain is ErrInsufficientData.
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

// IsParse reports whether any error in err's chain is ErrParse.
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}
