package sources

import (
	"fmt"
	"io"

	"weblog-analytics/internal/models"
)

// EntrySource is a finite, sequential producer of log entries. It is a single-pass cursor:
// once HasNext reports false the source stays exhausted unless it also implements Resetter.
// Sources do not check value ranges; that is the consumer's contract check.
type EntrySource interface {
	// HasNext reports whether a further call to Next yields an entry or an error.
	HasNext() bool
	// Next returns the next entry, or ErrSourceExhausted when HasNext is false.
	Next() (*models.LogEntry, error)
}

// Resetter is implemented by sources that can rewind to their first entry.
type Resetter interface {
	Reset() error
}

// NewSource builds the line-based source matching format over r.
func NewSource(format models.SourceFormat, r io.Reader) (EntrySource, error) {
	switch format {
	case models.FormatWeblog:
		return NewWeblogSource(r), nil
	case models.FormatJSONLines:
		return NewJSONLinesSource(r), nil
	case models.FormatCombinedLog:
		return NewCombinedLogSource(r), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
