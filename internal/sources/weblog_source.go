package sources

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"weblog-analytics/internal/models"
)

const weblogFieldCount = 5

// NewWeblogSource reads the plain weblog format: one access per line as five
// whitespace-separated integers "year month day hour minute", e.g. "2015 06 01 14 32".
// The source is resettable when r is an io.Seeker.
func NewWeblogSource(r io.Reader) EntrySource {
	return newLineSource(r, parseWeblogLine)
}

func parseWeblogLine(line string) (*models.LogEntry, error) {
	fields := strings.Fields(line)
	if len(fields) != weblogFieldCount {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedEntry, weblogFieldCount, len(fields))
	}

	var values [weblogFieldCount]int
	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%w: field %d is not an integer: %q", ErrMalformedEntry, i+1, field)
		}
		values[i] = v
	}

	return models.NewLogEntry(values[0], values[1], values[2], values[3], values[4]), nil
}
