package sources

import "errors"

var (
	// ErrSourceExhausted is returned by Next when HasNext would report false.
	ErrSourceExhausted = errors.New("entry source exhausted")
	// ErrMalformedEntry is wrapped by every parse failure, together with the line number.
	ErrMalformedEntry    = errors.New("malformed log entry")
	ErrUnsupportedFormat = errors.New("unsupported source format")
)
