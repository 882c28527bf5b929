package timefmt

import (
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// posixTokens are rendered by the strftime library.
var posixTokens = map[string]bool{
	"%Y": true, "%C": true, "%y": true, "%m": true, "%b": true, "%h": true,
	"%B": true, "%d": true, "%e": true, "%a": true, "%A": true, "%w": true,
	"%u": true, "%U": true, "%W": true, "%G": true, "%g": true, "%V": true,
	"%j": true, "%H": true, "%I": true, "%M": true, "%S": true, "%p": true,
	"%z": true, "%Z": true,
}

// compoundTokens are rendered through their expansion.
var compoundTokens = map[string]string{
	"%D": "%m/%d/%y",
	"%x": "%m/%d/%y",
	"%F": "%Y-%m-%d",
	"%v": "%e-%b-%Y",
	"%R": "%H:%M",
	"%T": "%H:%M:%S",
	"%X": "%H:%M:%S",
	"%r": "%I:%M:%S %p",
	"%c": "%a %b %e %H:%M:%S %Y",
	"%+": "%Y-%m-%dT%H:%M:%S%.f%:z",
}

// Render formats t with the Format's specifier. Field widths follow the
// specifier, so a two-digit hour stays two digits and "%.3f" always
// produces three fractional digits.
func (f *Format) Render(t time.Time) string {
	var b strings.Builder
	renderItems(&b, f.items, t)
	return b.String()
}

func renderItems(b *strings.Builder, items []item, t time.Time) {
	for _, it := range items {
		if it.token == "" {
			b.WriteString(it.text)
			continue
		}
		renderToken(b, it.token, t)
	}
}

func renderToken(b *strings.Builder, token string, t time.Time) {
	if posixTokens[token] {
		b.WriteString(strftime.Format(token, t))
		return
	}
	if exp, ok := compoundTokens[token]; ok {
		renderItems(b, tokenize(exp), t)
		return
	}
	if lit, ok := escapeTokens[token]; ok {
		b.WriteString(lit)
		return
	}

	ns := t.Nanosecond()
	switch token {
	case "%k":
		b.WriteString(pad(t.Hour(), 2, ' '))
	case "%l":
		b.WriteString(pad(hour12(t), 2, ' '))
	case "%P":
		if t.Hour() < 12 {
			b.WriteString("am")
		} else {
			b.WriteString("pm")
		}
	case "%f", "%9f":
		b.WriteString(pad(ns, 9, '0'))
	case "%3f":
		b.WriteString(pad(ns/1e6, 3, '0'))
	case "%6f":
		b.WriteString(pad(ns/1e3, 6, '0'))
	case "%.3f":
		b.WriteString("." + pad(ns/1e6, 3, '0'))
	case "%.6f":
		b.WriteString("." + pad(ns/1e3, 6, '0'))
	case "%.9f":
		b.WriteString("." + pad(ns, 9, '0'))
	case "%.f":
		// Shortest of 3, 6 or 9 digits that is exact, nothing for zero.
		switch {
		case ns == 0:
		case ns%1e6 == 0:
			b.WriteString("." + pad(ns/1e6, 3, '0'))
		case ns%1e3 == 0:
			b.WriteString("." + pad(ns/1e3, 6, '0'))
		default:
			b.WriteString("." + pad(ns, 9, '0'))
		}
	case "%:z":
		b.WriteString(formatOffset(t, ":", false))
	case "%#z":
		b.WriteString(formatOffset(t, "", true))
	case "%s":
		b.WriteString(strconv.FormatInt(t.Unix(), 10))
	}
}

// formatOffset renders the zone offset of t as ±HH<sep>MM. With short set,
// whole-hour offsets are rendered as ±HH.
func formatOffset(t time.Time, sep string, short bool) string {
	_, off := t.Zone()
	sign := "+"
	if off < 0 {
		sign = "-"
		off = -off
	}
	hh, mm := off/3600, off%3600/60
	if short && mm == 0 {
		return sign + pad(hh, 2, '0')
	}
	return sign + pad(hh, 2, '0') + sep + pad(mm, 2, '0')
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	return h
}

func pad(n, width int, fill byte) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat(string(fill), width-len(s)) + s
}
