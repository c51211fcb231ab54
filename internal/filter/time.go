package filter

import (
	"fmt"
	"time"

	"github.com/vburojevic/logstat/internal/domain"
)

// TimeRange keeps records whose realtime timestamp falls in [From, Until).
// A zero bound is open.
type TimeRange struct {
	From  time.Time
	Until time.Time
}

// NewTimeRange validates and creates a time range filter
func NewTimeRange(from, until time.Time) (*TimeRange, error) {
	if !from.IsZero() && !until.IsZero() && !from.Before(until) {
		return nil, fmt.Errorf("invalid time range: %s is not before %s",
			from.Format(time.RFC3339), until.Format(time.RFC3339))
	}
	return &TimeRange{From: from, Until: until}, nil
}

// Match returns true if the record timestamp is inside the range
func (f *TimeRange) Match(rec domain.Record) bool {
	ts := rec.Fields().RealtimeTimestamp
	if !f.From.IsZero() && ts.Before(f.From) {
		return false
	}
	if !f.Until.IsZero() && !ts.Before(f.Until) {
		return false
	}
	return true
}
