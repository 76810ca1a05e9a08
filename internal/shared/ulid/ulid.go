package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string.
var NewULID = func() string {
	return ulid.Make().String()
}

// Valid reports whether id is a canonical ULID string.
// Report IDs double as storage keys, so anything else is rejected before touching storage.
func Valid(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}
