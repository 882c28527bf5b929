package formatfile

import (
	"errors"

	"github.com/tztail/tztail-go/pkg/tztail/timefmt"
)

// NewRegistry validates f and compiles its formats into a registry that
// keeps the file's order.
//
// A compile failure is returned as a *FormatError wrapping the
// *timefmt.FormatError, so errors.Is(err, timefmt.ErrInvalidFormat) holds.
func NewRegistry(f *File) (*timefmt.Registry, error) {
	if f == nil {
		return nil, errors.New("format file is nil")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	formats := make([]*timefmt.Format, 0, len(f.Formats))
	for i, e := range f.Formats {
		tf, err := timefmt.Compile(e.Format)
		if err != nil {
			return nil, &FormatError{
				Index:   i,
				Name:    e.Name,
				Field:   "format",
				Message: "failed to compile",
				Cause:   err,
			}
		}
		formats = append(formats, tf)
	}
	return timefmt.RegistryOf(formats...), nil
}

// NewRegistryFromFile loads the file at path and compiles it.
func NewRegistryFromFile(path string) (*timefmt.Registry, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewRegistry(f)
}
