package domain

import (
	"cmp"
	"slices"
)

// LogReport is the aggregation result handed to formatters
type LogReport struct {
	Total   LogTotalCount            `json:"total" yaml:"total"`
	Service map[string]*ServiceCount `json:"service" yaml:"service"`

	// Filtered counts well-formed records excluded by a record filter
	Filtered int `json:"filtered,omitempty" yaml:"filtered,omitempty"`
	// Rejected counts lines skipped because not even the minimal shape decoded
	Rejected int `json:"rejected,omitempty" yaml:"rejected,omitempty"`
}

// LogTotalCount holds stream-wide counters
type LogTotalCount struct {
	Line          int              `json:"line" yaml:"line"`
	MessageLength int              `json:"message_length" yaml:"message_length"`
	Facility      map[Facility]int `json:"facility" yaml:"facility"`
}

// ServiceCount holds counters for one systemd unit
type ServiceCount struct {
	Line          int            `json:"line" yaml:"line"`
	MessageLength int            `json:"message_length" yaml:"message_length"`
	Priorities    map[uint8]int  `json:"priorities" yaml:"priorities"`
	Keywords      map[string]int `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// NewLogReport creates an empty report
func NewLogReport() *LogReport {
	return &LogReport{
		Total: LogTotalCount{
			Facility: make(map[Facility]int),
		},
		Service: make(map[string]*ServiceCount),
	}
}

// NewServiceCount creates an empty service counter
func NewServiceCount() *ServiceCount {
	return &ServiceCount{
		Priorities: make(map[uint8]int),
		Keywords:   make(map[string]int),
	}
}

// ServiceFor returns the counter for unit, inserting an empty one on first sighting
func (r *LogReport) ServiceFor(unit string) *ServiceCount {
	s, ok := r.Service[unit]
	if !ok {
		s = NewServiceCount()
		r.Service[unit] = s
	}
	return s
}

// Merge adds every counter of other into r
func (r *LogReport) Merge(other *LogReport) {
	if other == nil {
		return
	}
	r.Total.Line += other.Total.Line
	r.Total.MessageLength += other.Total.MessageLength
	for f, n := range other.Total.Facility {
		r.Total.Facility[f] += n
	}
	for unit, src := range other.Service {
		dst := r.ServiceFor(unit)
		dst.Line += src.Line
		dst.MessageLength += src.MessageLength
		for p, n := range src.Priorities {
			dst.Priorities[p] += n
		}
		for k, n := range src.Keywords {
			dst.Keywords[k] += n
		}
	}
	r.Filtered += other.Filtered
	r.Rejected += other.Rejected
}

// TotalLineCount sums the priority histogram
func (s *ServiceCount) TotalLineCount() int {
	count := 0
	for _, n := range s.Priorities {
		count += n
	}
	return count
}

// CompareCount orders two services by their histogram totals
func CompareCount(a, b *ServiceCount) int {
	return cmp.Compare(a.TotalLineCount(), b.TotalLineCount())
}

// ServiceEntry pairs a unit name with its counters
type ServiceEntry struct {
	Name  string        `json:"name" yaml:"name"`
	Count *ServiceCount `json:"count" yaml:"count"`
}

// RankServices lists services ascending by line count. Ties keep name order.
func RankServices(report *LogReport) []ServiceEntry {
	entries := make([]ServiceEntry, 0, len(report.Service))
	for name, s := range report.Service {
		entries = append(entries, ServiceEntry{Name: name, Count: s})
	}
	slices.SortFunc(entries, func(a, b ServiceEntry) int {
		return cmp.Compare(a.Name, b.Name)
	})
	slices.SortStableFunc(entries, func(a, b ServiceEntry) int {
		return CompareCount(a.Count, b.Count)
	})
	return entries
}

// ErrorOutput represents a structured error for NDJSON output
type ErrorOutput struct {
	Type          string `json:"type"`          // Always "error"
	SchemaVersion int    `json:"schemaVersion"` // Schema version for compatibility
	Code          string `json:"code"`          // Machine-readable error code
	Message       string `json:"message"`       // Human-readable message
	Hint          string `json:"hint,omitempty"`
}

// NewErrorOutput creates a new error output
// Note: SchemaVersion should be set by the caller (output package)
func NewErrorOutput(code, message string) *ErrorOutput {
	return &ErrorOutput{
		Type:    "error",
		Code:    code,
		Message: message,
	}
}
