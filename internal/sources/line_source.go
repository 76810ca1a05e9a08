package sources

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"weblog-analytics/internal/models"
)

const (
	initialLineBuffer = 64 * 1024
	maxLineBytes      = 1024 * 1024
)

// lineParser turns one non-blank, trimmed line into an entry.
type lineParser func(line string) (*models.LogEntry, error)

// lineSource reads one entry per line, skipping blank lines. HasNext parses ahead so that a
// trailing run of blank lines does not produce a phantom entry.
type lineSource struct {
	r       io.Reader
	parse   lineParser
	scanner *bufio.Scanner
	lineNo  int

	pending    *models.LogEntry
	pendingErr error
	done       bool
}

func newLineSource(r io.Reader, parse lineParser) EntrySource {
	src := &lineSource{r: r, parse: parse}
	src.rewind()
	if seeker, ok := r.(io.Seeker); ok {
		return &seekableLineSource{lineSource: src, seeker: seeker}
	}
	return src
}

func (s *lineSource) rewind() {
	s.scanner = bufio.NewScanner(s.r)
	s.scanner.Buffer(make([]byte, 0, initialLineBuffer), maxLineBytes)
	s.lineNo = 0
	s.pending = nil
	s.pendingErr = nil
	s.done = false
}

func (s *lineSource) HasNext() bool {
	if s.pending != nil || s.pendingErr != nil {
		return true
	}
	if s.done {
		return false
	}

	for s.scanner.Scan() {
		s.lineNo++
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		entry, err := s.parse(line)
		if err != nil {
			s.pendingErr = fmt.Errorf("line %d: %w", s.lineNo, err)
		} else {
			s.pending = entry
		}
		return true
	}

	s.done = true
	if err := s.scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			s.pendingErr = fmt.Errorf("line %d: %w: line exceeds %d bytes", s.lineNo+1, ErrMalformedEntry, maxLineBytes)
		} else {
			s.pendingErr = fmt.Errorf("line %d: read failed: %w", s.lineNo+1, err)
		}
		return true
	}
	return false
}

func (s *lineSource) Next() (*models.LogEntry, error) {
	if !s.HasNext() {
		return nil, ErrSourceExhausted
	}
	entry, err := s.pending, s.pendingErr
	s.pending, s.pendingErr = nil, nil
	return entry, err
}

// seekableLineSource is a lineSource over an io.Seeker, which makes it resettable.
type seekableLineSource struct {
	*lineSource
	seeker io.Seeker
}

func (s *seekableLineSource) Reset() error {
	if _, err := s.seeker.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind source: %w", err)
	}
	s.rewind()
	return nil
}
