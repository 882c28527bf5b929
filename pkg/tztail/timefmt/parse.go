package timefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// unset marks a field that no token provided.
const unset = -1

// fields collects the values decoded from the tokens of one match.
type fields struct {
	year, century, yy int
	month, day, yday  int
	isoYear, isoWeek  int
	weekSun, weekMon  int
	weekday           int

	hour, hour12, minute, second int
	nsec                         int
	pm                           int

	offset     int
	haveOffset bool
	zone       string

	epoch     int64
	haveEpoch bool
}

func newFields() *fields {
	fl := &fields{}
	for _, p := range []*int{
		&fl.year, &fl.century, &fl.yy,
		&fl.month, &fl.day, &fl.yday,
		&fl.isoYear, &fl.isoWeek,
		&fl.weekSun, &fl.weekMon, &fl.weekday,
		&fl.hour, &fl.hour12, &fl.minute, &fl.second,
		&fl.pm,
	} {
		*p = unset
	}
	return fl
}

// Parse converts text, which must have the exact shape of the format, into
// an instant.
//
// Timezone-aware formats take the offset or zone name from the text. Naive
// formats are read as UTC wall clock. Zone abbreviations (%Z) are resolved
// against UTC, the local zone, the optional hint locations, and a table of
// common abbreviations, in that order.
//
// Returns a *ParseError wrapping ErrNoMatch, ErrOutOfRange,
// ErrInsufficient, ErrWeekdayMismatch or ErrUnknownZone.
func (f *Format) Parse(text string, hints ...*time.Location) (time.Time, error) {
	t, err := f.parse(text, hints)
	if err != nil {
		return time.Time{}, &ParseError{Spec: f.spec, Text: text, Err: err}
	}
	return t, nil
}

func (f *Format) parse(text string, hints []*time.Location) (time.Time, error) {
	m := f.capture.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, ErrNoMatch
	}

	fl := newFields()
	for _, it := range f.items {
		if it.group == "" {
			continue
		}
		v := m[it.index]
		if v == "" {
			// Group sits in an alternative of the literal text that did not match.
			continue
		}
		if err := fl.decode(it.token, v); err != nil {
			return time.Time{}, err
		}
	}

	return fl.resolve(hints)
}

// decode stores the value of one token.
func (fl *fields) decode(token, v string) error {
	var err error
	switch token {
	case "%Y":
		fl.year, err = atoi(v)
	case "%C":
		fl.century, err = atoi(v)
	case "%y":
		fl.yy, err = atoi(v)
	case "%m":
		fl.month, err = atoi(v)
	case "%b", "%h":
		fl.month, err = lookupName(v, shortMonths)
	case "%B":
		fl.month, err = lookupName(v, longMonths)
	case "%d", "%e":
		fl.day, err = atoi(v)
	case "%a":
		fl.weekday, err = lookupName(v, shortDays)
		fl.weekday--
	case "%A":
		fl.weekday, err = lookupName(v, longDays)
		fl.weekday--
	case "%w":
		fl.weekday, err = atoi(v)
	case "%u":
		fl.weekday, err = atoi(v)
		fl.weekday %= 7
	case "%U":
		fl.weekSun, err = atoi(v)
	case "%W":
		fl.weekMon, err = atoi(v)
	case "%G":
		fl.isoYear, err = atoi(v)
	case "%g":
		var yy int
		yy, err = atoi(v)
		fl.isoYear = pivotYear(yy)
	case "%V":
		fl.isoWeek, err = atoi(v)
	case "%j":
		fl.yday, err = atoi(v)
	case "%D", "%x":
		err = fl.decodeAll(v, "/", "%m", "%d", "%y")
	case "%F":
		err = fl.decodeAll(v, "-", "%Y", "%m", "%d")
	case "%v":
		err = fl.decodeAll(strings.TrimSpace(v), "-", "%e", "%b", "%Y")

	case "%H", "%k":
		fl.hour, err = atoi(v)
	case "%I", "%l":
		fl.hour12, err = atoi(v)
	case "%p", "%P":
		fl.pm = 0
		if strings.EqualFold(v, "pm") {
			fl.pm = 1
		}
	case "%M":
		fl.minute, err = atoi(v)
	case "%S":
		fl.second, err = atoi(v)
	case "%f":
		// Nanoseconds as an integer, not a fraction.
		if len(v) > 9 {
			return fmt.Errorf("%w: nanoseconds %q", ErrOutOfRange, v)
		}
		fl.nsec, err = atoi(v)
	case "%3f", "%6f", "%9f":
		fl.nsec, err = fraction(v)
	case "%.f", "%.3f", "%.6f", "%.9f":
		fl.nsec, err = fraction(strings.TrimPrefix(v, "."))
	case "%R":
		err = fl.decodeAll(v, ":", "%H", "%M")
	case "%T", "%X":
		err = fl.decodeAll(v, ":", "%H", "%M", "%S")
	case "%r":
		clock, ampm, _ := strings.Cut(v, " ")
		if err = fl.decodeAll(clock, ":", "%I", "%M", "%S"); err == nil {
			err = fl.decode("%p", ampm)
		}

	case "%Z":
		fl.zone = v
	case "%z", "%:z", "%#z":
		fl.offset, err = parseOffset(v)
		fl.haveOffset = err == nil

	case "%c":
		parts := strings.Fields(v)
		if len(parts) != 5 {
			return fmt.Errorf("%w: %q", ErrNoMatch, v)
		}
		for i, tok := range []string{"%a", "%b", "%e", "%T", "%Y"} {
			if err := fl.decode(tok, parts[i]); err != nil {
				return err
			}
		}
	case "%+":
		err = fl.decodeRFC3339(v)
	case "%s":
		fl.epoch, err = strconv.ParseInt(v, 10, 64)
		fl.haveEpoch = err == nil
	}

	if err != nil {
		return fmt.Errorf("%s %q: %w", token, v, err)
	}
	return nil
}

// decodeAll splits a compound value on sep and decodes each part as the
// corresponding token.
func (fl *fields) decodeAll(v, sep string, tokens ...string) error {
	parts := strings.Split(v, sep)
	if len(parts) != len(tokens) {
		return fmt.Errorf("%w: %q", ErrNoMatch, v)
	}
	for i, tok := range tokens {
		if err := fl.decode(tok, parts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (fl *fields) decodeRFC3339(v string) error {
	t, err := time.Parse("2006-01-02T15:04:05.999999999Z07:00", v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	_, off := t.Zone()
	fl.year, fl.month, fl.day = t.Year(), int(t.Month()), t.Day()
	fl.hour, fl.minute, fl.second, fl.nsec = t.Hour(), t.Minute(), t.Second(), t.Nanosecond()
	fl.offset, fl.haveOffset = off, true
	return nil
}

// resolve validates the collected fields and builds the instant.
func (fl *fields) resolve(hints []*time.Location) (time.Time, error) {
	if fl.haveEpoch {
		return time.Unix(fl.epoch, int64(fl.nsec)).UTC(), nil
	}

	year := fl.year
	if year == unset && fl.yy != unset {
		if fl.century != unset {
			year = fl.century*100 + fl.yy
		} else {
			year = pivotYear(fl.yy)
		}
	}

	if err := fl.resolveClock(); err != nil {
		return time.Time{}, err
	}

	y, mon, d, err := fl.resolveDate(year)
	if err != nil {
		return time.Time{}, err
	}

	loc, err := fl.location(y, mon, d, hints)
	if err != nil {
		return time.Time{}, err
	}

	t := time.Date(y, time.Month(mon), d, fl.hour, fl.minute, fl.second, fl.nsec, loc)
	if fl.weekday != unset && int(t.Weekday()) != fl.weekday {
		return time.Time{}, fmt.Errorf("%w: %s is a %s", ErrWeekdayMismatch, t.Format("2006-01-02"), t.Weekday())
	}
	return t, nil
}

func (fl *fields) resolveClock() error {
	if fl.hour == unset && fl.hour12 != unset {
		if fl.pm == unset {
			return fmt.Errorf("%w: 12-hour clock without AM/PM", ErrInsufficient)
		}
		if fl.hour12 < 1 || fl.hour12 > 12 {
			return fmt.Errorf("%w: hour %d", ErrOutOfRange, fl.hour12)
		}
		fl.hour = fl.hour12%12 + 12*fl.pm
	}
	if fl.hour == unset {
		return fmt.Errorf("%w: no hour", ErrInsufficient)
	}
	if fl.minute == unset {
		return fmt.Errorf("%w: no minute", ErrInsufficient)
	}
	if fl.second == unset {
		fl.second = 0
	}

	switch {
	case fl.hour > 23:
		return fmt.Errorf("%w: hour %d", ErrOutOfRange, fl.hour)
	case fl.minute > 59:
		return fmt.Errorf("%w: minute %d", ErrOutOfRange, fl.minute)
	case fl.second > 59:
		return fmt.Errorf("%w: second %d", ErrOutOfRange, fl.second)
	}
	return nil
}

// resolveDate picks the first complete date description: year/month/day,
// year/day-of-year, ISO week date, or year/week-number/weekday.
func (fl *fields) resolveDate(year int) (y, m, d int, err error) {
	switch {
	case year != unset && fl.month != unset && fl.day != unset:
		if fl.month < 1 || fl.month > 12 {
			return 0, 0, 0, fmt.Errorf("%w: month %d", ErrOutOfRange, fl.month)
		}
		if fl.day < 1 || fl.day > daysIn(year, fl.month) {
			return 0, 0, 0, fmt.Errorf("%w: day %d of %d-%02d", ErrOutOfRange, fl.day, year, fl.month)
		}
		return year, fl.month, fl.day, nil

	case year != unset && fl.yday != unset:
		if fl.yday < 1 || fl.yday > daysInYear(year) {
			return 0, 0, 0, fmt.Errorf("%w: day of year %d", ErrOutOfRange, fl.yday)
		}
		t := time.Date(year, time.January, fl.yday, 0, 0, 0, 0, time.UTC)
		return t.Year(), int(t.Month()), t.Day(), nil

	case fl.isoYear != unset && fl.isoWeek != unset && fl.weekday != unset:
		if fl.isoWeek < 1 || fl.isoWeek > 53 {
			return 0, 0, 0, fmt.Errorf("%w: ISO week %d", ErrOutOfRange, fl.isoWeek)
		}
		t := isoWeekDate(fl.isoYear, fl.isoWeek, fl.weekday)
		if wy, _ := t.ISOWeek(); wy != fl.isoYear {
			return 0, 0, 0, fmt.Errorf("%w: ISO week %d of %d", ErrOutOfRange, fl.isoWeek, fl.isoYear)
		}
		return t.Year(), int(t.Month()), t.Day(), nil

	case year != unset && fl.weekday != unset && (fl.weekSun != unset || fl.weekMon != unset):
		t, err := weekNumberDate(year, fl.weekSun, fl.weekMon, fl.weekday)
		if err != nil {
			return 0, 0, 0, err
		}
		return t.Year(), int(t.Month()), t.Day(), nil
	}

	return 0, 0, 0, fmt.Errorf("%w: no complete date", ErrInsufficient)
}

// location returns the zone the wall clock is expressed in.
func (fl *fields) location(y, m, d int, hints []*time.Location) (*time.Location, error) {
	if fl.haveOffset {
		if fl.offset == 0 {
			return time.UTC, nil
		}
		return time.FixedZone("", fl.offset), nil
	}
	if fl.zone != "" {
		wall := func(loc *time.Location) time.Time {
			return time.Date(y, time.Month(m), d, fl.hour, fl.minute, fl.second, 0, loc)
		}
		return resolveZone(fl.zone, wall, hints)
	}
	return time.UTC, nil
}

func isoWeekDate(year, week, weekday int) time.Time {
	// January 4th is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	return monday.AddDate(0, 0, (week-1)*7+(weekday+6)%7)
}

// weekNumberDate implements %U (weeks start Sunday) and %W (weeks start
// Monday): days before the first such weekday of the year are in week 0.
func weekNumberDate(year, weekSun, weekMon, weekday int) (time.Time, error) {
	week, first := weekSun, time.Sunday
	if week == unset {
		week, first = weekMon, time.Monday
	}
	if week > 53 {
		return time.Time{}, fmt.Errorf("%w: week %d", ErrOutOfRange, week)
	}

	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	start := jan1.AddDate(0, 0, (int(first)-int(jan1.Weekday())+7)%7-7)
	t := start.AddDate(0, 0, week*7+(weekday-int(first)+7)%7)
	if t.Year() != year {
		return time.Time{}, fmt.Errorf("%w: week %d of %d", ErrOutOfRange, week, year)
	}
	return t, nil
}

func parseOffset(v string) (int, error) {
	sign := 1
	if v[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(v[1:], ":", "")

	hh, err := atoi(digits[:2])
	if err != nil {
		return 0, err
	}
	mm := 0
	if len(digits) > 2 {
		if mm, err = atoi(digits[2:]); err != nil {
			return 0, err
		}
	}
	if hh > 23 || mm > 59 {
		return 0, fmt.Errorf("%w: offset %s", ErrOutOfRange, v)
	}
	return sign * (hh*3600 + mm*60), nil
}

// pivotYear maps a two-digit year the way strptime does: 69-99 are the
// 1900s, 00-68 the 2000s.
func pivotYear(yy int) int {
	if yy >= 69 {
		return 1900 + yy
	}
	return 2000 + yy
}

// fraction converts the digits after a decimal point into nanoseconds.
func fraction(digits string) (int, error) {
	if len(digits) > 9 {
		digits = digits[:9]
	}
	n, err := atoi(digits)
	if err != nil {
		return 0, err
	}
	for i := len(digits); i < 9; i++ {
		n *= 10
	}
	return n, nil
}

func atoi(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrNoMatch, v)
	}
	return n, nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

var (
	shortMonths = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
	longMonths  = []string{"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"}
	shortDays   = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}
	longDays    = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
)

// lookupName returns the 1-based position of v in names, ignoring case.
func lookupName(v string, names []string) (int, error) {
	lower := strings.ToLower(v)
	for i, n := range names {
		if lower == n {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown name %q", ErrOutOfRange, v)
}
