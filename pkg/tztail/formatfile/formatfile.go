// Package formatfile loads ordered lists of timestamp formats from YAML
// files. A loaded list replaces the built-in registry: the first format
// that matches a line wins, so order matters.
package formatfile

// File is the structure of a format-list file.
//
// Example YAML file:
//
//	version: 1
//	formats:
//	  - name: syslog-iso
//	    format: "%Y-%m-%dT%H:%M:%S%:z"
//	  - name: apache
//	    format: "%d/%b/%Y:%H:%M:%S %z"
type File struct {
	// Version is the file format version. Only version 1 is supported.
	Version int `yaml:"version"`

	// Formats is the list of formats in priority order.
	Formats []Entry `yaml:"formats"`
}

// Entry is a single named format.
type Entry struct {
	// Name identifies the entry in error messages. Names must be unique
	// within a file.
	Name string `yaml:"name"`

	// Format is a strftime-style specifier such as "%Y-%m-%d %H:%M:%S".
	Format string `yaml:"format"`
}

// Specs returns the format specifiers in file order.
func (f *File) Specs() []string {
	specs := make([]string, len(f.Formats))
	for i, e := range f.Formats {
		specs[i] = e.Format
	}
	return specs
}
