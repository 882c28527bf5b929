package tztail

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tztail/tztail-go/pkg/tztail/timefmt"
)

// Option configures a Converter using the functional options pattern.
type Option func(*config)

// config holds internal configuration for New.
type config struct {
	timezone    string
	hasTimezone bool
	location    *time.Location
	format      string
	hasFormat   bool
	formats     []string
	registry    *timefmt.Registry
	logger      *slog.Logger
}

func defaultConfig() *config {
	return &config{
		logger: discardLogger,
	}
}

func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// validate checks for invalid option combinations.
func (c *config) validate() error {
	sources := 0
	if c.hasFormat {
		sources++
	}
	if c.formats != nil {
		sources++
	}
	if c.registry != nil {
		sources++
	}
	if sources > 1 {
		return fmt.Errorf("%w: WithFormat, WithFormats and WithRegistry are mutually exclusive", ErrConflictingOptions)
	}
	if c.hasTimezone && c.location != nil {
		return fmt.Errorf("%w: WithTimezone and WithLocation are mutually exclusive", ErrConflictingOptions)
	}
	if c.formats != nil && len(c.formats) == 0 {
		return fmt.Errorf("WithFormats needs at least one format")
	}
	return nil
}

// WithTimezone sets the target zone by IANA name, e.g. "Asia/Kolkata".
// An unknown name is reported to the logger and the local zone is used.
// An empty name means the local zone.
func WithTimezone(name string) Option {
	return func(c *config) {
		c.timezone = name
		c.hasTimezone = true
	}
}

// WithLocation sets the target zone.
// A nil location means the local zone at call time.
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		c.location = loc
	}
}

// WithFormat disables autodetection and only recognizes spec.
// New fails if spec does not compile.
func WithFormat(spec string) Option {
	return func(c *config) {
		c.format = spec
		c.hasFormat = true
	}
}

// WithFormats autodetects over specs, tried in the given order.
func WithFormats(specs ...string) Option {
	return func(c *config) {
		c.formats = append([]string{}, specs...)
	}
}

// WithRegistry autodetects over a pre-built registry.
func WithRegistry(reg *timefmt.Registry) Option {
	return func(c *config) {
		c.registry = reg
	}
}

// WithLogger sets a logger for diagnostics: unknown timezones and
// timestamps that match a format but cannot be parsed.
// If not set, diagnostics are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
