package timefmt

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrInvalidFormat classifies every FormatError.
	ErrInvalidFormat = errors.New("invalid format specifier")

	// ErrOutOfRange is returned when a matched value is outside its calendar
	// or clock range (month 13, hour 25, February 30, ...).
	ErrOutOfRange = errors.New("value out of range")

	// ErrInsufficient is returned when the format does not carry enough
	// fields to determine an instant (no date, no hour, 12-hour clock
	// without AM/PM, ...).
	ErrInsufficient = errors.New("not enough fields to build a timestamp")

	// ErrWeekdayMismatch is returned when a weekday token disagrees with the
	// parsed date.
	ErrWeekdayMismatch = errors.New("weekday does not match date")

	// ErrUnknownZone is returned for a zone abbreviation that cannot be
	// resolved to an offset.
	ErrUnknownZone = errors.New("unknown timezone abbreviation")

	// ErrNoMatch is returned by Parse when the text does not have the shape
	// of the format.
	ErrNoMatch = errors.New("text does not match format")
)

// FormatError reports a specifier that cannot be compiled.
type FormatError struct {
	Spec    string
	Message string
	Cause   error // Underlying error (e.g., regexp syntax error)
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("format %q: %s: %v", e.Spec, e.Message, e.Cause)
	}
	return fmt.Sprintf("format %q: %s", e.Spec, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *FormatError) Unwrap() error {
	return e.Cause
}

// Is reports ErrInvalidFormat as a match so callers can classify
// configuration errors with errors.Is.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// ParseError reports a matched timestamp that could not be turned into an
// instant.
type ParseError struct {
	Spec string // Format specifier used for parsing
	Text string // Matched text
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %q as %q: %v", e.Text, e.Spec, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
