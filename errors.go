package pagenorm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoFile is returned when an Extractor has neither a file nor a source
	ErrNoFile = errors.New("pagenorm: no filename specified")

	// ErrPageOutOfRange is returned when a requested page does not exist
	ErrPageOutOfRange = errors.New("pagenorm: page out of range")

	// ErrInvalidWorkers is returned for a worker count below one
	ErrInvalidWorkers = errors.New("pagenorm: worker count must be positive")
)

// Warning is a non-fatal problem found while processing a page.
// Page is 1-indexed; 0 means the warning applies to the whole document.
type Warning struct {
	Page    int
	Message string
}

// String returns the warning with its page prefix
func (w Warning) String() string {
	if w.Page == 0 {
		return w.Message
	}
	return fmt.Sprintf("page %d: %s", w.Page, w.Message)
}

// FormatWarnings joins warnings into one line for logging
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
