// Package timeutil supplies the current time and parses the timestamp
// strings the Step Functions service attaches to executions.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Clock abstracts the time source so age decisions can be tested against a
// fixed instant.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock used outside of tests.
type SystemClock struct{}

// Now returns the current time in UTC.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// serviceLayouts are the timestamp shapes observed in service output: RFC3339
// with optional fractional seconds and either a Z or a numeric offset, the
// same with a space instead of the T separator, and bare date-times that
// carry no zone at all (interpreted as UTC).
var serviceLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseServiceTimestamp parses a service-supplied execution timestamp.
// Timezone offsets are honored rather than discarded, so an execution started
// at 10:00+02:00 ages exactly like one started at 08:00Z. If the string only
// fails to parse because of a malformed suffix after the fractional-second
// dot, the portion before the dot is retried as a UTC instant. On failure the
// returned error names the raw input and the zero time is never a valid
// result for callers that check the error.
func ParseServiceTimestamp(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty service timestamp")
	}

	for _, layout := range serviceLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if i := strings.IndexByte(s, '.'); i > 0 {
		head := s[:i]
		for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, head); err == nil {
				return t, nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("unparseable service timestamp %q", raw)
}

// FormatServiceTimestamp renders t in the canonical form used for execution
// records, RFC3339 with nanoseconds in UTC. Round-trips through
// ParseServiceTimestamp.
func FormatServiceTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
