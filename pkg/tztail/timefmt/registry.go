package timefmt

import "errors"

// defaultSpecs is the built-in autodetection list. Formats carrying their own
// offset come first, web server conventions next, and bare wall-clock
// formats last, so that a match with more information wins when two formats
// could match the same text.
var defaultSpecs = []string{
	"%Y-%m-%dT%H:%M:%S%z",      // 2014-11-28T12:00:09+0000
	"%Y-%m-%d %H:%M:%S%z",      // 2014-11-28 12:00:09+0000
	"%Y-%m-%dT%H:%M:%S %z",     // 2014-11-28T12:00:09 +0000
	"%Y-%m-%d %H:%M:%S %z",     // 2014-11-28 12:00:09 +0000
	"%d/%b/%Y:%H:%M:%S %z",     // 04/Nov/2018:12:13:49 +0000 (nginx)
	"%d/%b/%Y:%H:%M:%S%.3f %z", // 04/Nov/2018:12:13:49.334 +0000 (nginx)
	"%d/%b/%Y:%H:%M:%S",        // 04/Nov/2018:12:13:49 (HAProxy)
	"%a, %d %b %Y %H:%M:%S %z", // Fri, 28 Nov 2014 12:00:09 +0000
	"%Y-%m-%dT%H:%M:%SZ",       // 2014-11-28T12:00:09Z
	"%Y-%m-%dT%H:%M:%S",        // 2014-11-28T12:00:09
	"%Y-%m-%d %H:%M:%S",        // 2014-11-28 12:00:09
}

// DefaultSpecs returns the built-in format specifiers in priority order.
func DefaultSpecs() []string {
	out := make([]string, len(defaultSpecs))
	copy(out, defaultSpecs)
	return out
}

// Registry is an ordered list of formats. Order is the tie-break policy:
// Find returns the first format that matches, even when a later one would
// also match.
//
// A Registry is immutable and safe for concurrent use.
type Registry struct {
	formats []*Format
}

// NewRegistry compiles specs into a Registry, keeping their order.
// Returns the first compile error.
func NewRegistry(specs ...string) (*Registry, error) {
	if len(specs) == 0 {
		return nil, errors.New("registry needs at least one format")
	}
	formats := make([]*Format, 0, len(specs))
	for _, s := range specs {
		f, err := Compile(s)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return &Registry{formats: formats}, nil
}

// NewDefaultRegistry returns a Registry of the built-in formats.
// Each call compiles a fresh Registry; build it once at startup and share it.
func NewDefaultRegistry() *Registry {
	formats := make([]*Format, 0, len(defaultSpecs))
	for _, s := range defaultSpecs {
		formats = append(formats, MustCompile(s))
	}
	return &Registry{formats: formats}
}

// RegistryOf builds a Registry from already compiled formats.
// Nil formats are skipped.
func RegistryOf(formats ...*Format) *Registry {
	out := make([]*Format, 0, len(formats))
	for _, f := range formats {
		if f != nil {
			out = append(out, f)
		}
	}
	return &Registry{formats: out}
}

// Find tries each format in order and returns the first match.
func (r *Registry) Find(line string) (Match, bool) {
	for _, f := range r.formats {
		if m, ok := f.Find(line); ok {
			return m, true
		}
	}
	return Match{}, false
}

// Formats returns the formats in priority order.
func (r *Registry) Formats() []*Format {
	out := make([]*Format, len(r.formats))
	copy(out, r.formats)
	return out
}

// Len returns the number of formats.
func (r *Registry) Len() int {
	return len(r.formats)
}
