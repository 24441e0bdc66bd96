package quantizedmesh

import "fmt"

// Warning is one non-fatal decode problem (§7): a malformed extension
// length, a truncated header, an unsupported index component type, or a
// vertex count exceeding addressable space. A corrupted tile never
// panics; it yields an empty-ish Result plus a populated ErrorList.
type Warning struct {
	Message string
}

func (w Warning) Error() string { return w.Message }

// ErrorList aggregates Warnings produced while decoding or upsampling a
// single tile.
type ErrorList struct {
	Warnings []Warning
}

// Add appends a formatted warning to the list.
func (l *ErrorList) Add(format string, args ...interface{}) {

	l.Warnings = append(l.Warnings, Warning{Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any warning was recorded.
func (l *ErrorList) HasErrors() bool {

	return len(l.Warnings) > 0
}

func errTruncated(what string) error {

	return Warning{Message: fmt.Sprintf("%s: unexpected end of buffer", what)}
}
