package stats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxLineBytes bounds a single input line
const DefaultMaxLineBytes = 1024 * 1024

// LineSource is a pull-based sequence of lines. Next returns io.EOF once the
// sequence is exhausted. The returned slice is only valid until the next call.
// An error wrapping ErrLineTooLong concerns one line only; any other error
// ends the sequence.
type LineSource interface {
	Next() ([]byte, error)
}

// Named is implemented by sources that can identify themselves in errors
type Named interface {
	Name() string
}

// ErrLineTooLong is returned by ReaderSource.Next for a line over the size
// limit. The line has been consumed, so reading can continue with the next one.
var ErrLineTooLong = errors.New("line too long")

// ReaderSource splits an io.Reader into newline-terminated lines
type ReaderSource struct {
	name   string
	max    int
	reader *bufio.Reader
	buf    []byte
}

// NewReaderSource creates a line source over r. maxLineBytes <= 0 uses
// DefaultMaxLineBytes.
func NewReaderSource(r io.Reader, name string, maxLineBytes int) *ReaderSource {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	return &ReaderSource{
		name:   name,
		max:    maxLineBytes,
		reader: bufio.NewReaderSize(r, min(64*1024, maxLineBytes+2)),
	}
}

// Next returns the next line without its terminator. A line longer than the
// limit yields its leading bytes together with an error wrapping
// ErrLineTooLong; the remainder of that line is discarded.
func (s *ReaderSource) Next() ([]byte, error) {
	s.buf = s.buf[:0]
	tooLong := false
	for {
		frag, err := s.reader.ReadSlice('\n')
		if !tooLong {
			s.buf = append(s.buf, frag...)
			// room for a trailing \r\n
			if len(s.buf) > s.max+2 {
				tooLong = true
				s.buf = s.buf[:s.max]
			}
		}

		switch {
		case err == nil:
			return s.line(tooLong)
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if len(s.buf) == 0 && !tooLong {
				return nil, io.EOF
			}
			return s.line(tooLong)
		default:
			return nil, err
		}
	}
}

func (s *ReaderSource) line(tooLong bool) ([]byte, error) {
	line := s.buf
	if !tooLong {
		line = bytes.TrimSuffix(line, []byte{'\n'})
		line = bytes.TrimSuffix(line, []byte{'\r'})
		tooLong = len(line) > s.max
	}
	if tooLong {
		return line[:min(len(line), s.max)], fmt.Errorf("%w (>%d bytes)", ErrLineTooLong, s.max)
	}
	return line, nil
}

// Name returns the name given at construction
func (s *ReaderSource) Name() string {
	return s.name
}

// SliceSource serves lines from memory
type SliceSource struct {
	lines []string
	pos   int
}

// NewSliceSource creates a source over the given lines
func NewSliceSource(lines ...string) *SliceSource {
	return &SliceSource{lines: lines}
}

// Next returns the next line
func (s *SliceSource) Next() ([]byte, error) {
	if s.pos >= len(s.lines) {
		return nil, io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return []byte(line), nil
}
