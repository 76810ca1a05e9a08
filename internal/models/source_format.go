package models

import (
	"fmt"
	"strings"
)

// SourceFormat names the line format of an uploaded log file.
type SourceFormat string

const (
	FormatWeblog      SourceFormat = "weblog"
	FormatJSONLines   SourceFormat = "jsonl"
	FormatCombinedLog SourceFormat = "clf"
)

// NewSourceFormatFromString parses a configured or requested format name.
func NewSourceFormatFromString(s string) (SourceFormat, error) {
	switch f := SourceFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatWeblog, FormatJSONLines, FormatCombinedLog:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported source format: %q", s)
	}
}

// SourceFormatFromContentType maps an HTTP content type to a source format.
// Returns fallback when the content type does not name one.
func SourceFormatFromContentType(contentType string, fallback SourceFormat) SourceFormat {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "ndjson"), strings.Contains(ct, "jsonl"), strings.Contains(ct, "json"):
		return FormatJSONLines
	case strings.Contains(ct, "clf"), strings.Contains(ct, "combined"):
		return FormatCombinedLog
	case strings.Contains(ct, "text/plain"):
		return FormatWeblog
	default:
		return fallback
	}
}

func (f SourceFormat) String() string {
	return string(f)
}
