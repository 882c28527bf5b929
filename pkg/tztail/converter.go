package tztail

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/tztail/tztail-go/pkg/tztail/timefmt"
)

// Converter rewrites the timestamp in a line into a target zone.
//
// A Converter is immutable after New and safe for concurrent use.
type Converter struct {
	detector Detector
	location *time.Location // nil: time.Local at call time
	logger   *slog.Logger
}

// Result describes the conversion of one line.
type Result struct {
	// Line is the output line. It equals the input when Converted is false.
	Line string

	// Converted reports whether a timestamp was found and rewritten.
	Converted bool

	// Original is the matched timestamp text in the input line.
	Original string

	// Replacement is the rendered timestamp in the output line.
	Replacement string

	// Start is the byte offset of Original in the input line, and of
	// Replacement in Line.
	Start int
}

// Highlight returns Line with the replacement passed through fn.
// Lines that were not converted are returned as is.
func (r Result) Highlight(fn func(string) string) string {
	if !r.Converted || fn == nil {
		return r.Line
	}
	end := r.Start + len(r.Replacement)
	return r.Line[:r.Start] + fn(r.Replacement) + r.Line[end:]
}

// New creates a Converter.
//
// Returns an error wrapping ErrInvalidFormat if a custom format does not
// compile, or ErrConflictingOptions for incompatible options. An unknown
// timezone is not an error: it is logged and the local zone is used.
func New(opts ...Option) (*Converter, error) {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	det, err := buildDetector(cfg)
	if err != nil {
		return nil, err
	}

	loc := cfg.location
	if cfg.hasTimezone {
		loc, err = ResolveLocation(cfg.timezone)
		if err != nil {
			cfg.logger.Warn("unknown timezone, using local time",
				"timezone", cfg.timezone,
				"error", err)
			loc = nil
		}
	}
	if loc == time.Local {
		loc = nil
	}

	return &Converter{
		detector: det,
		location: loc,
		logger:   cfg.logger,
	}, nil
}

func buildDetector(cfg *config) (Detector, error) {
	switch {
	case cfg.hasFormat:
		f, err := timefmt.Compile(cfg.format)
		if err != nil {
			return nil, fmt.Errorf("custom format: %w", err)
		}
		return NewFixedDetector(f), nil
	case cfg.formats != nil:
		reg, err := timefmt.NewRegistry(cfg.formats...)
		if err != nil {
			return nil, fmt.Errorf("custom formats: %w", err)
		}
		return NewAutoDetector(reg), nil
	default:
		return NewAutoDetector(cfg.registry), nil
	}
}

// ResolveLocation looks up an IANA zone name. An empty name or "Local"
// is the process's local zone.
func ResolveLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return loc, nil
}

// Location returns the target zone.
func (c *Converter) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// Detector returns the detector used to find timestamps.
func (c *Converter) Detector() Detector {
	return c.detector
}

// Convert returns line with its timestamp rewritten into the target zone,
// or line unchanged when it carries no parsable timestamp.
func (c *Converter) Convert(line string) string {
	return c.ConvertLine(line).Line
}

// ConvertLine is like Convert but reports where the replacement happened.
func (c *Converter) ConvertLine(line string) Result {
	return convert(line, c.detector, c.Location(), c.logger)
}

// Convert rewrites the first timestamp of line found by reg into loc.
// A nil reg uses the built-in formats and a nil loc the local zone.
// Parse failures leave the line unchanged and are not reported.
func Convert(line string, reg *timefmt.Registry, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return convert(line, NewAutoDetector(reg), loc, discardLogger).Line
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func convert(line string, det Detector, loc *time.Location, logger *slog.Logger) Result {
	m, ok := det.Detect(line)
	if !ok {
		return Result{Line: line}
	}

	t, err := m.Format.Parse(m.Text, loc)
	if err != nil {
		logger.Warn("cannot parse timestamp, line left unchanged",
			"text", m.Text,
			"format", m.Format.String(),
			"error", err)
		return Result{Line: line}
	}

	t = t.In(loc)
	// Four-digit year fields cannot hold the result; a wider year would
	// no longer parse with the same format.
	if y := t.Year(); y < 0 || y > 9999 {
		logger.Warn("converted timestamp out of range, line left unchanged",
			"text", m.Text,
			"format", m.Format.String(),
			"year", y)
		return Result{Line: line}
	}

	repl := m.Format.Render(t)
	return Result{
		Line:        line[:m.Start] + repl + line[m.End:],
		Converted:   true,
		Original:    m.Text,
		Replacement: repl,
		Start:       m.Start,
	}
}
