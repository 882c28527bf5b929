package timefmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// item is one element of a tokenized specifier: either a token or a run of
// literal text.
type item struct {
	token string // empty for literal text
	text  string // literal text (token == "")
	group string // capture group name in the anchored matcher
	index int    // submatch index of group, set by Compile
}

// Format is a compiled format specifier.
//
// A Format is immutable and safe for concurrent use by multiple goroutines.
type Format struct {
	spec    string
	items   []item
	search  *regexp.Regexp // unanchored, finds the first occurrence in a line
	capture *regexp.Regexp // anchored, one named group per value token
	aware   bool
}

// Match is a timestamp located in a line.
type Match struct {
	Format *Format
	Text   string // matched substring
	Start  int    // byte offset of Text in the line
	End    int    // byte offset just past Text
}

// Compile translates a format specifier into a Format.
//
// Each token is replaced by its regexp fragment. Literal characters pass
// through unescaped, so a specifier that produces an invalid regexp is
// rejected with a *FormatError.
func Compile(spec string) (*Format, error) {
	if spec == "" {
		return nil, &FormatError{Spec: spec, Message: "specifier is empty"}
	}

	items := tokenize(spec)

	var search, capture strings.Builder
	capture.WriteString(`^(?:`)
	values := 0
	aware := false
	for i := range items {
		it := &items[i]
		if it.token == "" {
			search.WriteString(it.text)
			capture.WriteString(it.text)
			continue
		}

		frag := grammarIndex[it.token]
		search.WriteString(frag)
		if _, ok := escapeTokens[it.token]; ok {
			capture.WriteString(frag)
			continue
		}

		values++
		it.group = "t" + strconv.Itoa(i)
		capture.WriteString(`(?P<` + it.group + `>` + frag + `)`)
		if zoneTokens[it.token] || instantTokens[it.token] {
			aware = true
		}
	}
	capture.WriteString(`)$`)

	if values == 0 {
		return nil, &FormatError{Spec: spec, Message: "specifier contains no date or time tokens"}
	}

	searchRe, err := regexp.Compile(search.String())
	if err != nil {
		return nil, &FormatError{Spec: spec, Message: "invalid pattern", Cause: err}
	}
	captureRe, err := regexp.Compile(capture.String())
	if err != nil {
		return nil, &FormatError{Spec: spec, Message: "invalid pattern", Cause: err}
	}

	// Literal text such as '[' or '\' can swallow a token's group, e.g.
	// "[%T]" turns the group into part of a bracket expression.
	for i := range items {
		it := &items[i]
		if it.group == "" {
			continue
		}
		it.index = captureRe.SubexpIndex(it.group)
		if it.index < 0 {
			return nil, &FormatError{
				Spec:    spec,
				Message: fmt.Sprintf("token %s is absorbed by the surrounding literal text", it.token),
			}
		}
	}

	return &Format{
		spec:    spec,
		items:   items,
		search:  searchRe,
		capture: captureRe,
		aware:   aware,
	}, nil
}

// MustCompile is like Compile but panics if the specifier is invalid.
func MustCompile(spec string) *Format {
	f, err := Compile(spec)
	if err != nil {
		panic(fmt.Sprintf("timefmt: Compile(%q): %v", spec, err))
	}
	return f
}

// tokenize splits spec into tokens and literal runs. At each '%' the
// longest known token wins, so "%.3f" is never read as "%.f" and "%:z" is
// never read as a literal ':' between two tokens. A '%' that starts no
// token is literal text.
func tokenize(spec string) []item {
	var items []item
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			items = append(items, item{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(spec); {
		if spec[i] == '%' {
			if tok, ok := matchToken(spec[i:]); ok {
				flush()
				items = append(items, item{token: tok})
				i += len(tok)
				continue
			}
		}
		lit.WriteByte(spec[i])
		i++
	}
	flush()

	return items
}

// String returns the specifier the Format was compiled from.
func (f *Format) String() string {
	return f.spec
}

// Pattern returns the regular expression used to find the format in a line.
func (f *Format) Pattern() string {
	return f.search.String()
}

// TimezoneAware reports whether the format carries its own offset, zone
// name, or absolute instant. Naive formats are read as UTC wall clock.
func (f *Format) TimezoneAware() bool {
	return f.aware
}

// Find returns the first non-empty occurrence of the format in line.
func (f *Format) Find(line string) (Match, bool) {
	loc := f.search.FindStringIndex(line)
	if loc == nil || loc[1] == loc[0] {
		return Match{}, false
	}
	return Match{
		Format: f,
		Text:   line[loc[0]:loc[1]],
		Start:  loc[0],
		End:    loc[1],
	}, true
}
