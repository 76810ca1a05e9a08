package aggregators

import "errors"

var (
	// ErrOutOfRange means an entry's hour, day or month lies outside its bucket. It is a
	// contract violation by the entry source and fails the pass.
	ErrOutOfRange = errors.New("entry value out of range")
	// ErrSourceAlreadyConsumed is returned by a second pass over a source that cannot be reset.
	ErrSourceAlreadyConsumed = errors.New("entry source already consumed")
	// ErrSourceFailed wraps an error returned by the entry source while draining it.
	ErrSourceFailed      = errors.New("entry source failed")
	ErrInvalidBucketSize = errors.New("invalid bucket size")
	ErrNilSource         = errors.New("entry source is nil")

	errNilEntry = errors.New("nil entry")
)
