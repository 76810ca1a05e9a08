package sources

import "weblog-analytics/internal/models"

// SliceSource serves entries from memory. It is resettable.
type SliceSource struct {
	entries []*models.LogEntry
	pos     int
}

func NewSliceSource(entries []*models.LogEntry) *SliceSource {
	return &SliceSource{entries: entries}
}

func (s *SliceSource) HasNext() bool {
	return s.pos < len(s.entries)
}

func (s *SliceSource) Next() (*models.LogEntry, error) {
	if !s.HasNext() {
		return nil, ErrSourceExhausted
	}
	entry := s.entries[s.pos]
	s.pos++
	return entry, nil
}

func (s *SliceSource) Reset() error {
	s.pos = 0
	return nil
}
