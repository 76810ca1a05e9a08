package sources

import (
	"fmt"
	"io"
	"strings"
	"time"

	"weblog-analytics/internal/models"
)

const (
	clfTimeLayout       = "02/Jan/2006:15:04:05 -0700"
	clfTimeLayoutNoZone = "02/Jan/2006:15:04:05"
)

// NewCombinedLogSource reads Apache/nginx common or combined log lines, e.g.
//
//	127.0.0.1 - frank [10/Oct/2000:13:55:36 -0700] "GET /apache_pb.gif HTTP/1.0" 200 2326
//
// The entry fields come from the bracketed timestamp in the record's own zone.
// The source is resettable when r is an io.Seeker.
func NewCombinedLogSource(r io.Reader) EntrySource {
	return newLineSource(r, parseCombinedLogLine)
}

func parseCombinedLogLine(line string) (*models.LogEntry, error) {
	open := strings.IndexByte(line, '[')
	if open < 0 {
		return nil, fmt.Errorf("%w: missing timestamp", ErrMalformedEntry)
	}
	end := strings.IndexByte(line[open:], ']')
	if end < 0 {
		return nil, fmt.Errorf("%w: unterminated timestamp", ErrMalformedEntry)
	}

	ts, err := parseCombinedLogTime(line[open+1 : open+end])
	if err != nil {
		return nil, err
	}

	return models.NewLogEntry(ts.Year(), int(ts.Month()), ts.Day(), ts.Hour(), ts.Minute()), nil
}

func parseCombinedLogTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(clfTimeLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(clfTimeLayoutNoZone, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid timestamp: %q", ErrMalformedEntry, s)
}
