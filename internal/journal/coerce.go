package journal

import (
	"strconv"
	"time"
)

// journald transmits numbers as decimal strings; these helpers convert them.

// ParseUint8 parses a decimal string into a uint8
func ParseUint8(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	return uint8(v), err
}

// ParseUint16 parses a decimal string into a uint16
func ParseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	return uint16(v), err
}

// ParseUint64 parses a decimal string into a uint64
func ParseUint64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

// ParseMicros converts microseconds since the Unix epoch to a UTC time
func ParseMicros(s string) (time.Time, error) {
	us, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(us/1_000_000, (us%1_000_000)*1_000).UTC(), nil
}

// FormatMicros is the inverse of ParseMicros. Sub-microsecond precision is dropped.
func FormatMicros(t time.Time) string {
	return strconv.FormatInt(t.Unix()*1_000_000+int64(t.Nanosecond()/1_000), 10)
}
