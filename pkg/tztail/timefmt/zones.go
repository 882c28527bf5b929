package timefmt

import (
	"fmt"
	"time"
)

// abbreviations maps common zone abbreviations to their UTC offset in
// seconds. Abbreviations are ambiguous in general; the entries here follow
// the most common use in server logs (IST is India).
var abbreviations = map[string]int{
	"HST":  -10 * 3600,
	"AKST": -9 * 3600,
	"AKDT": -8 * 3600,
	"PST":  -8 * 3600,
	"PDT":  -7 * 3600,
	"MST":  -7 * 3600,
	"MDT":  -6 * 3600,
	"CST":  -6 * 3600,
	"CDT":  -5 * 3600,
	"EST":  -5 * 3600,
	"EDT":  -4 * 3600,
	"WET":  0,
	"WEST": 1 * 3600,
	"BST":  1 * 3600,
	"CET":  1 * 3600,
	"CEST": 2 * 3600,
	"EET":  2 * 3600,
	"EEST": 3 * 3600,
	"MSK":  3 * 3600,
	"PKT":  5 * 3600,
	"IST":  5*3600 + 1800,
	"ICT":  7 * 3600,
	"WIB":  7 * 3600,
	"HKT":  8 * 3600,
	"SGT":  8 * 3600,
	"AWST": 8 * 3600,
	"JST":  9 * 3600,
	"KST":  9 * 3600,
	"ACST": 9*3600 + 1800,
	"AEST": 10 * 3600,
	"AEDT": 11 * 3600,
	"NZST": 12 * 3600,
	"NZDT": 13 * 3600,
}

// resolveZone finds the location a zone abbreviation refers to. A location
// qualifies when its abbreviation at the given wall clock equals name, so
// "CEST" resolves to Europe/Paris in summer when Paris is a candidate.
func resolveZone(name string, wall func(*time.Location) time.Time, hints []*time.Location) (*time.Location, error) {
	switch name {
	case "UTC", "GMT", "UT", "Z":
		return time.UTC, nil
	}

	candidates := append([]*time.Location{time.Local}, hints...)
	for _, loc := range candidates {
		if loc == nil {
			continue
		}
		if abbr, _ := wall(loc).Zone(); abbr == name {
			return loc, nil
		}
	}

	if off, ok := abbreviations[name]; ok {
		return time.FixedZone(name, off), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
}
