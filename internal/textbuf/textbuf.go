// ABOUTME: Line Store: an append-only, index-addressable list of owned text lines.
// ABOUTME: Load strips line terminators; LoadFile opens, reads, and closes a file.

package textbuf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Line is an immutable run of bytes without its line terminator.
type Line struct {
	// data holds the bytes plus one trailing NUL that Bytes never exposes.
	data []byte
}

// Bytes returns the line content. Callers must not modify it.
func (l Line) Bytes() []byte {
	if len(l.data) == 0 {
		return nil
	}
	return l.data[:len(l.data)-1]
}

// Len returns the number of content bytes.
func (l Line) Len() int {
	if len(l.data) == 0 {
		return 0
	}
	return len(l.data) - 1
}

// Store owns an ordered list of lines.
type Store struct {
	lines []Line
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Len returns the number of lines.
func (s *Store) Len() int {
	return len(s.lines)
}

// Line returns line i. It panics if i is out of range.
func (s *Store) Line(i int) Line {
	return s.lines[i]
}

// AppendLine copies p into a newly allocated line at the end of the store.
func (s *Store) AppendLine(p []byte) {
	data := make([]byte, len(p)+1)
	copy(data, p)
	s.lines = append(s.lines, Line{data: data})
}

// Load appends every line read from r. Trailing '\r' and '\n' bytes are
// stripped, so "\r\n" and "\n" separators both disappear.
func (s *Store) Load(r io.Reader) error {
	br := bufio.NewReader(r)
	var scratch []byte
	for {
		scratch = scratch[:0]
		chunk, err := br.ReadSlice('\n')
		for errors.Is(err, bufio.ErrBufferFull) {
			scratch = append(scratch, chunk...)
			chunk, err = br.ReadSlice('\n')
		}
		line := chunk
		if len(scratch) > 0 {
			scratch = append(scratch, chunk...)
			line = scratch
		}

		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading lines: %w", err)
		}
		if err != nil && len(line) == 0 {
			return nil
		}

		s.AppendLine(trimEOL(line))
		if err != nil {
			return nil
		}
	}
}

func trimEOL(p []byte) []byte {
	for len(p) > 0 && (p[len(p)-1] == '\n' || p[len(p)-1] == '\r') {
		p = p[:len(p)-1]
	}
	return p
}

// LoadFile reads path into a new Store.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fopen: %w", err)
	}
	defer f.Close()

	s := New()
	if err := s.Load(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
