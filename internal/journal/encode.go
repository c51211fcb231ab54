package journal

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vburojevic/logstat/internal/domain"
)

// Encode renders a record in the journald JSON export format, the inverse
// of Classify. Invalid records are written without a transport tag and
// without their Error field.
func Encode(rec domain.Record) ([]byte, error) {
	c := rec.Fields()
	m := map[string]string{
		FieldPriority:  strconv.FormatUint(uint64(c.Priority), 10),
		FieldRealtime:  FormatMicros(c.RealtimeTimestamp),
		FieldMonotonic: strconv.FormatUint(c.MonotonicTimestamp, 10),
	}

	switch v := rec.(type) {
	case domain.Journal:
		m[FieldPID] = strconv.FormatUint(uint64(v.PID), 10)
		m[FieldUnit] = v.SystemdUnit
	case domain.Stdout:
		m[FieldIdentifier] = v.Identifier
		m[FieldUnit] = v.SystemdUnit
	case domain.Kernel:
		m[FieldIdentifier] = v.Identifier
	case domain.Audit:
		m[FieldIdentifier] = v.Identifier
	case domain.Syslog:
		m[FieldIdentifier] = v.Identifier
	case domain.Driver:
		m[FieldIdentifier] = v.Identifier
	case domain.Invalid:
		m[FieldIdentifier] = v.Identifier
		return json.Marshal(m)
	default:
		return nil, fmt.Errorf("encode: unsupported record %T", rec)
	}

	m[FieldTransport] = string(rec.Facility())
	m[FieldMessage] = c.Message
	return json.Marshal(m)
}
