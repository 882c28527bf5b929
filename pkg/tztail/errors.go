package tztail

import (
	"errors"

	"github.com/tztail/tztail-go/pkg/tztail/timefmt"
)

// Sentinel errors.
var (
	// ErrUnknownTimezone is returned by ResolveLocation for a name that is
	// not in the IANA database.
	ErrUnknownTimezone = errors.New("unknown timezone")

	// ErrInvalidFormat classifies custom format compile errors.
	// It is the same value as timefmt.ErrInvalidFormat.
	ErrInvalidFormat = timefmt.ErrInvalidFormat

	// ErrConflictingOptions is returned by New when options select more
	// than one format source or more than one target zone.
	ErrConflictingOptions = errors.New("conflicting options")
)
