package formatfile

import "fmt"

// ValidationError reports a file that violates structural requirements,
// such as an unsupported version or an empty format list.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// FormatError reports a problem with a single entry.
type FormatError struct {
	Index   int    // 0-based index of the entry in the file
	Name    string // may be empty if the name field is missing
	Field   string
	Message string
	Cause   error // e.g. the compile error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("format[%d]: %s: %s", e.Index, e.Field, e.Message)
	if e.Name != "" {
		msg = fmt.Sprintf("format %q: %s: %s", e.Name, e.Field, e.Message)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}
