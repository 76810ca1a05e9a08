package sources

import (
	"fmt"
	"io"

	"weblog-analytics/internal/models"

	"github.com/bytedance/sonic"
)

// jsonLine mirrors models.LogEntry with pointers so that missing fields can be told apart
// from zero values.
type jsonLine struct {
	Year   *int `json:"year"`
	Month  *int `json:"month"`
	Day    *int `json:"day"`
	Hour   *int `json:"hour"`
	Minute *int `json:"minute"`
}

// NewJSONLinesSource reads one JSON object per line:
//
//	{"year": 2015, "month": 6, "day": 1, "hour": 14, "minute": 32}
//
// month, day and hour are required; year and minute default to 0.
func NewJSONLinesSource(r io.Reader) EntrySource {
	return newLineSource(r, parseJSONLine)
}

func parseJSONLine(line string) (*models.LogEntry, error) {
	var raw jsonLine
	if err := sonic.UnmarshalString(line, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrMalformedEntry, err)
	}

	switch {
	case raw.Month == nil:
		return nil, fmt.Errorf("%w: missing month", ErrMalformedEntry)
	case raw.Day == nil:
		return nil, fmt.Errorf("%w: missing day", ErrMalformedEntry)
	case raw.Hour == nil:
		return nil, fmt.Errorf("%w: missing hour", ErrMalformedEntry)
	}

	return models.NewLogEntry(valueOrZero(raw.Year), *raw.Month, *raw.Day, *raw.Hour, valueOrZero(raw.Minute)), nil
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
