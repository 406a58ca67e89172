package rfctime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Format string for date-time in RFC3339, disallowing Z as time-offset.
//
// Girder timestamps are ISO8601 extended format with explicit offset,
// like "2015-07-10T14:23:15.183000+00:00". RFC3339 is the subset we rely on.
const RFC3339DateTimeFormat string = "2006-01-02T15:04:05.999999-07:00"

// Format string for date-time in RFC3339, allowing Z as time-offset.
const RFC3339DateTimeFormatZ string = time.RFC3339Nano

// Abbreviated forms accepted by ParseLooseRFC3339.
const (
	RFC3339DateSec   = "2006-01-02T15:04:05"
	RFC3339DateSecZ  = "2006-01-02T15:04:05Z07:00"
	RFC3339DateMin   = "2006-01-02T15:04"
	RFC3339DateMinZ  = "2006-01-02T15:04Z07:00"
	RFC3339DateOnly  = "2006-01-02"
	RFC3339DateOnlyZ = "2006-01-02Z07:00"
)

// date-time in https://www.ietf.org/rfc/rfc3339.txt .
//
// This type is useful to interchange timestamps with a Girder server.
type RFC3339 time.Time

func (rfctime RFC3339) Time() time.Time {
	return time.Time(rfctime)
}

func (rfctime RFC3339) Equal(other RFC3339) bool {
	return rfctime.Time().Equal(other.Time())
}

// get string expression, formatted by RFC3339DateTimeFormat.
func (t RFC3339) String() string {
	return time.Time(t).Format(RFC3339DateTimeFormat)
}

// Parse string to RFC3339 time.
func ParseRFC3339DateTime(s string) (RFC3339, error) {
	t, err := time.Parse(RFC3339DateTimeFormatZ, s)
	if err != nil {
		return *new(RFC3339), err
	}
	return RFC3339(t), nil
}

// When you need to parse the abbreviated forms of RFC3339 date-time, use this.
//
// Forms without offset are parsed in the local timezone.
func ParseLooseRFC3339(s string) (RFC3339, error) {
	withZone := []string{
		RFC3339DateTimeFormatZ, RFC3339DateSecZ, RFC3339DateMinZ, RFC3339DateOnlyZ,
	}
	for _, format := range withZone {
		if t, err := time.Parse(format, s); err == nil {
			return RFC3339(t), nil
		}
	}

	withoutZone := []string{RFC3339DateSec, RFC3339DateMin, RFC3339DateOnly}
	for _, format := range withoutZone {
		if t, err := time.ParseInLocation(format, s, time.Local); err == nil {
			return RFC3339(t), nil
		}
	}

	return RFC3339{}, fmt.Errorf("failed to parse %s", s)
}

// implement encoding/json.Marshaler
func (t RFC3339) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, t)), nil
}

// implement encoding/json.Unmarshaler
func (t *RFC3339) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := ParseRFC3339DateTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
