package journal

import (
	"bytes"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"github.com/vburojevic/logstat/internal/domain"
)

// Field names of the journald JSON export format
const (
	FieldTransport  = "_TRANSPORT"
	FieldPID        = "_PID"
	FieldPriority   = "PRIORITY"
	FieldUnit       = "_SYSTEMD_UNIT"
	FieldIdentifier = "SYSLOG_IDENTIFIER"
	FieldMessage    = "MESSAGE"
	FieldRealtime   = "__REALTIME_TIMESTAMP"
	FieldMonotonic  = "__MONOTONIC_TIMESTAMP"
)

// Classifier maps journald JSON lines onto record variants
type Classifier struct{}

// NewClassifier creates a new classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify decodes one line into a record.
//
// A line that does not match any known variant is returned as domain.Invalid
// with the reason in its Error field, and a nil error. An error is returned
// only when even the Invalid shape cannot be decoded: the line is blank, is
// not a JSON object, or its timestamps are missing or non-numeric.
func (c *Classifier) Classify(line []byte) (domain.Record, error) {
	if len(bytes.TrimSpace(line)) == 0 {
		return nil, ErrEmptyLine
	}
	if !gjson.ValidBytes(line) {
		return nil, ErrNotJSON
	}
	doc := gjson.ParseBytes(line)
	if !doc.IsObject() {
		return nil, ErrNotObject
	}

	f := collect(doc)
	rec, err := f.typed()
	if err == nil {
		return rec, nil
	}

	inv, ierr := f.invalid()
	if ierr != nil {
		return nil, fmt.Errorf("%w (typed decode: %v)", ierr, err)
	}
	inv.Error = err.Error()
	return inv, nil
}

// fields holds the journald keys the classifier cares about. Everything else
// in the object is ignored.
type fields struct {
	transport  gjson.Result
	pid        gjson.Result
	priority   gjson.Result
	unit       gjson.Result
	identifier gjson.Result
	message    gjson.Result
	realtime   gjson.Result
	monotonic  gjson.Result
}

func collect(doc gjson.Result) fields {
	var f fields
	doc.ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		case FieldTransport:
			f.transport = value
		case FieldPID:
			f.pid = value
		case FieldPriority:
			f.priority = value
		case FieldUnit:
			f.unit = value
		case FieldIdentifier:
			f.identifier = value
		case FieldMessage:
			f.message = value
		case FieldRealtime:
			f.realtime = value
		case FieldMonotonic:
			f.monotonic = value
		}
		return true
	})
	return f
}

// typed decodes the variant named by the transport tag
func (f fields) typed() (domain.Record, error) {
	transport, err := str(f.transport, FieldTransport)
	if err != nil {
		return nil, err
	}

	switch transport {
	case "journal":
		common, err := f.common(false)
		if err != nil {
			return nil, err
		}
		pidText, err := str(f.pid, FieldPID)
		if err != nil {
			return nil, err
		}
		pid, err := ParseUint16(pidText)
		if err != nil {
			return nil, &FieldError{Field: FieldPID, Err: err}
		}
		unit, err := strOr(f.unit, FieldUnit, domain.DefaultName)
		if err != nil {
			return nil, err
		}
		return domain.Journal{PID: pid, SystemdUnit: unit, Common: common}, nil

	case "stdout":
		common, err := f.common(true)
		if err != nil {
			return nil, err
		}
		id, err := strOr(f.identifier, FieldIdentifier, domain.DefaultName)
		if err != nil {
			return nil, err
		}
		unit, err := strOr(f.unit, FieldUnit, domain.DefaultName)
		if err != nil {
			return nil, err
		}
		return domain.Stdout{Identifier: id, SystemdUnit: unit, Common: common}, nil

	case "kernel", "audit", "syslog", "driver":
		// audit records frequently lack PRIORITY
		common, err := f.common(transport != "audit")
		if err != nil {
			return nil, err
		}
		id, err := strOr(f.identifier, FieldIdentifier, domain.DefaultName)
		if err != nil {
			return nil, err
		}
		switch transport {
		case "kernel":
			return domain.Kernel{Identifier: id, Common: common}, nil
		case "audit":
			return domain.Audit{Identifier: id, Common: common}, nil
		case "syslog":
			return domain.Syslog{Identifier: id, Common: common}, nil
		default:
			return domain.Driver{Identifier: id, Common: common}, nil
		}
	}

	return nil, &FieldError{Field: FieldTransport, Err: fmt.Errorf("%w %q", ErrUnknownTransport, transport)}
}

// common decodes the fields shared by all typed variants
func (f fields) common(requirePriority bool) (domain.Common, error) {
	var c domain.Common
	var err error

	if c.Priority, err = priority(f.priority, requirePriority); err != nil {
		return c, err
	}
	if c.Message, err = str(f.message, FieldMessage); err != nil {
		return c, err
	}
	if c.RealtimeTimestamp, c.MonotonicTimestamp, err = f.timestamps(); err != nil {
		return c, err
	}
	return c, nil
}

// invalid decodes the minimal shape used when no variant matched
func (f fields) invalid() (domain.Invalid, error) {
	var inv domain.Invalid
	var err error

	inv.Identifier = domain.DefaultName
	if f.identifier.Type == gjson.String {
		inv.Identifier = f.identifier.Str
	}
	if inv.Priority, err = priority(f.priority, false); err != nil {
		return inv, err
	}
	if inv.RealtimeTimestamp, inv.MonotonicTimestamp, err = f.timestamps(); err != nil {
		return inv, err
	}
	return inv, nil
}

func (f fields) timestamps() (time.Time, uint64, error) {
	rt, err := str(f.realtime, FieldRealtime)
	if err != nil {
		return time.Time{}, 0, err
	}
	realtime, err := ParseMicros(rt)
	if err != nil {
		return time.Time{}, 0, &FieldError{Field: FieldRealtime, Err: err}
	}
	mt, err := str(f.monotonic, FieldMonotonic)
	if err != nil {
		return time.Time{}, 0, err
	}
	monotonic, err := ParseUint64(mt)
	if err != nil {
		return time.Time{}, 0, &FieldError{Field: FieldMonotonic, Err: err}
	}
	return realtime, monotonic, nil
}

// priority returns 0 for values that are present but not a small decimal
// string. Absence is an error only when required.
func priority(r gjson.Result, required bool) (uint8, error) {
	if !r.Exists() {
		if required {
			return 0, &FieldError{Field: FieldPriority, Err: ErrMissing}
		}
		return 0, nil
	}
	if r.Type != gjson.String {
		return 0, nil
	}
	p, err := ParseUint8(r.Str)
	if err != nil {
		return 0, nil
	}
	return p, nil
}

func str(r gjson.Result, name string) (string, error) {
	if !r.Exists() {
		return "", &FieldError{Field: name, Err: ErrMissing}
	}
	if r.Type != gjson.String {
		return "", &FieldError{Field: name, Err: ErrNotString}
	}
	return r.Str, nil
}

func strOr(r gjson.Result, name, def string) (string, error) {
	if !r.Exists() {
		return def, nil
	}
	return str(r, name)
}
