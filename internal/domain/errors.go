package domain

import (
	"fmt"
	"unicode/utf8"
)

// maxErrorText bounds how much of the offending line is echoed back
const maxErrorText = 120

// LineError is a hard failure tied to one input line. Aggregation stops on it
// unless malformed lines are being skipped.
type LineError struct {
	Source string // Input name, empty for anonymous sources
	Line   int    // 1-based line number
	Text   string // Offending line, possibly truncated
	Err    error
}

// NewLineError builds a LineError, truncating long input on a rune boundary
func NewLineError(source string, line int, text []byte, err error) *LineError {
	s := string(text)
	if len(text) > maxErrorText {
		cut := maxErrorText
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		s = string(text[:cut]) + "..."
	}
	return &LineError{Source: source, Line: line, Text: s, Err: err}
}

func (e *LineError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s:%d: %v: %q", e.Source, e.Line, e.Err, e.Text)
	}
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
