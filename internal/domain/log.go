package domain

import "time"

// Facility is the display name derived from a record's transport tag
type Facility string

const (
	FacilityKernel  Facility = "kernel"
	FacilityJournal Facility = "journal"
	FacilitySyslog  Facility = "syslog"
	FacilityStdout  Facility = "stdout"
	FacilityAudit   Facility = "audit"
	FacilityDriver  Facility = "driver"
	FacilityInvalid Facility = "invalid"
)

// DefaultName is used for identifiers and service units missing from a record
const DefaultName = "unknown"

// Record is a classified journald entry. The set of implementations is closed:
// Journal, Kernel, Stdout, Audit, Syslog, Driver and Invalid.
type Record interface {
	// Facility returns the grouping key used in total statistics
	Facility() Facility
	// Fields returns the fields shared by every variant
	Fields() Common
	isRecord()
}

// Common holds the fields every record variant carries
type Common struct {
	Priority           uint8     `json:"priority"`
	Message            string    `json:"message"`
	RealtimeTimestamp  time.Time `json:"realtime_timestamp"`
	MonotonicTimestamp uint64    `json:"monotonic_timestamp"`
}

// Journal is a record written through the native journal protocol
type Journal struct {
	PID         uint16 `json:"pid"`
	SystemdUnit string `json:"systemd_unit"`
	Common
}

// Kernel is a record read from the kernel ring buffer
type Kernel struct {
	Identifier string `json:"identifier"`
	Common
}

// Stdout is a record captured from a unit's standard output
type Stdout struct {
	Identifier  string `json:"identifier"`
	SystemdUnit string `json:"systemd_unit"`
	Common
}

// Audit is a record from the kernel audit subsystem
type Audit struct {
	Identifier string `json:"identifier"`
	Common
}

// Syslog is a record received over the syslog socket
type Syslog struct {
	Identifier string `json:"identifier"`
	Common
}

// Driver is a record generated internally by journald
type Driver struct {
	Identifier string `json:"identifier"`
	Common
}

// Invalid is a record that matched no known shape. Message is always empty;
// Error holds the reason the typed decode failed and never comes from input.
type Invalid struct {
	Identifier string `json:"identifier"`
	Error      string `json:"error"`
	Common
}

func (Journal) Facility() Facility { return FacilityJournal }
func (Kernel) Facility() Facility  { return FacilityKernel }
func (Stdout) Facility() Facility  { return FacilityStdout }
func (Audit) Facility() Facility   { return FacilityAudit }
func (Syslog) Facility() Facility  { return FacilitySyslog }
func (Driver) Facility() Facility  { return FacilityDriver }
func (Invalid) Facility() Facility { return FacilityInvalid }

func (r Journal) Fields() Common { return r.Common }
func (r Kernel) Fields() Common  { return r.Common }
func (r Stdout) Fields() Common  { return r.Common }
func (r Audit) Fields() Common   { return r.Common }
func (r Syslog) Fields() Common  { return r.Common }
func (r Driver) Fields() Common  { return r.Common }
func (r Invalid) Fields() Common { return r.Common }

func (Journal) isRecord() {}
func (Kernel) isRecord()  {}
func (Stdout) isRecord()  {}
func (Audit) isRecord()   {}
func (Syslog) isRecord()  {}
func (Driver) isRecord()  {}
func (Invalid) isRecord() {}

// ServiceUnit returns the systemd unit of records that carry one.
// Only Journal and Stdout records do.
func ServiceUnit(r Record) (string, bool) {
	switch v := r.(type) {
	case Journal:
		return v.SystemdUnit, true
	case Stdout:
		return v.SystemdUnit, true
	default:
		return "", false
	}
}
