package filter

import (
	"github.com/vburojevic/logstat/internal/domain"
)

// PriorityFilter keeps records at least as severe as Max (numerically <= Max)
type PriorityFilter struct {
	max uint8
}

// NewPriorityFilter creates a priority filter
func NewPriorityFilter(max uint8) *PriorityFilter {
	return &PriorityFilter{max: max}
}

// Match returns true if the record priority is <= the maximum
func (f *PriorityFilter) Match(rec domain.Record) bool {
	return rec.Fields().Priority <= f.max
}
