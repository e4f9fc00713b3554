package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrNoStructure is returned when a resume has no recognizable sections
	// or contact details. Callers fall back to the raw text.
	ErrNoStructure = errors.New("no resume structure found")
)

// ExtractionError means the document could not be opened or parsed as the
// expected format. It aborts the extraction; no partial record is produced.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// IsExtractionError reports whether err carries an ExtractionError.
func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}
