package tztail

import "github.com/tztail/tztail-go/pkg/tztail/timefmt"

// Detector locates the timestamp in a line.
//
// The set of detectors is closed: AutoDetector tries an ordered list of
// formats, FixedDetector a single one.
type Detector interface {
	// Detect returns the first timestamp found in line.
	Detect(line string) (timefmt.Match, bool)

	detector()
}

// AutoDetector tries the formats of a registry in order.
type AutoDetector struct {
	registry *timefmt.Registry
}

// NewAutoDetector returns a detector over reg.
// A nil reg uses the built-in formats.
func NewAutoDetector(reg *timefmt.Registry) *AutoDetector {
	if reg == nil {
		reg = timefmt.NewDefaultRegistry()
	}
	return &AutoDetector{registry: reg}
}

// Detect implements the Detector interface.
func (d *AutoDetector) Detect(line string) (timefmt.Match, bool) {
	return d.registry.Find(line)
}

// Registry returns the formats the detector tries.
func (d *AutoDetector) Registry() *timefmt.Registry {
	return d.registry
}

func (*AutoDetector) detector() {}

// FixedDetector only recognizes one format.
type FixedDetector struct {
	format *timefmt.Format
}

// NewFixedDetector returns a detector for f.
func NewFixedDetector(f *timefmt.Format) *FixedDetector {
	return &FixedDetector{format: f}
}

// Detect implements the Detector interface.
func (d *FixedDetector) Detect(line string) (timefmt.Match, bool) {
	return d.format.Find(line)
}

// Format returns the detector's format.
func (d *FixedDetector) Format() *timefmt.Format {
	return d.format
}

func (*FixedDetector) detector() {}

// Ensure both detectors implement Detector.
var (
	_ Detector = (*AutoDetector)(nil)
	_ Detector = (*FixedDetector)(nil)
)
