package formatfile

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tztail/tztail-go/internal/safefile"
)

const (
	// MaxFileSize is the maximum size of a format-list file (1 MiB).
	MaxFileSize = 1 * 1024 * 1024

	// MaxFormatCount is the maximum number of entries in a file. Every
	// entry is tried against every line, so long lists slow conversion.
	MaxFormatCount = 256

	// MaxFormatLength is the maximum length of a single specifier.
	MaxFormatLength = 256

	// SupportedVersion is the only accepted value of the version field.
	SupportedVersion = 1
)

// Load reads and validates a format-list file. Symlinks, FIFOs and other
// special files are rejected. Errors never contain the path.
//
// Example:
//
//	ff, err := formatfile.Load("formats.yaml")
//	if err != nil {
//	    log.Fatalf("failed to load format file: %v", err)
//	}
func Load(path string) (*File, error) {
	data, err := safefile.ReadFile(path, MaxFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read format file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates a format-list file held in memory.
func LoadBytes(data []byte) (*File, error) {
	if len(data) == 0 {
		return nil, errors.New("format file is empty")
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("format file too large: %d bytes (max %d)", len(data), MaxFileSize)
	}

	var ff File
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ff.Validate(); err != nil {
		return nil, err
	}
	return &ff, nil
}

// Validate checks the version, the entry count, required fields, name
// uniqueness and specifier length.
//
// It does not compile the specifiers; NewRegistry does.
func (f *File) Validate() error {
	if f.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", f.Version, SupportedVersion),
		}
	}
	if len(f.Formats) == 0 {
		return &ValidationError{
			Field:   "formats",
			Message: "at least one format is required",
		}
	}
	if len(f.Formats) > MaxFormatCount {
		return &ValidationError{
			Field:   "formats",
			Message: fmt.Sprintf("too many formats (%d), maximum allowed is %d", len(f.Formats), MaxFormatCount),
		}
	}

	seen := make(map[string]int, len(f.Formats))
	for i, e := range f.Formats {
		if e.Name == "" {
			return &FormatError{Index: i, Field: "name", Message: "name is required"}
		}
		if e.Format == "" {
			return &FormatError{Index: i, Name: e.Name, Field: "format", Message: "format is required"}
		}
		if prev, ok := seen[e.Name]; ok {
			return &FormatError{
				Index:   i,
				Name:    e.Name,
				Field:   "name",
				Message: fmt.Sprintf("duplicate name (previously defined at formats[%d])", prev),
			}
		}
		seen[e.Name] = i

		if len(e.Format) > MaxFormatLength {
			return &FormatError{
				Index:   i,
				Name:    e.Name,
				Field:   "format",
				Message: fmt.Sprintf("format too long: %d bytes (max %d)", len(e.Format), MaxFormatLength),
			}
		}
	}
	return nil
}
