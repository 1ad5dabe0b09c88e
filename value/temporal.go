package value

import (
	"fmt"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	timeLayout      = "15:04:05.000"
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Date is a calendar day counted from 1970-01-01.
type Date int32

// ParseDate parses yyyy-MM-dd.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// DateOf returns the day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	u := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
	return Date(floorDiv(u, 24*60*60))
}

func (d Date) Time() time.Time {
	return time.Unix(int64(d)*24*60*60, 0).UTC()
}

func (d Date) String() string { return d.Time().Format(dateLayout) }

// Time is a time of day in milliseconds after midnight.
type Time int32

// ParseTime parses HH:mm:ss with optional fractional seconds, kept to the
// millisecond.
func ParseTime(s string) (Time, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return TimeOf(t), nil
}

func TimeOf(t time.Time) Time {
	h, m, sec := t.Clock()
	return Time(((h*60+m)*60+sec)*1000 + t.Nanosecond()/int(time.Millisecond))
}

func (t Time) Milliseconds() int { return int(t) }

func (t Time) String() string {
	return time.UnixMilli(int64(t)).UTC().Format(timeLayout)
}

// Timestamp is an instant in milliseconds since the Unix epoch, UTC.
type Timestamp int64

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	dateLayout,
}

// ParseTimestamp parses an ISO-8601 instant. Inputs without a zone are
// taken as UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TimestampOf(t), nil
		}
	}
	return 0, fmt.Errorf("invalid timestamp %q", s)
}

func TimestampOf(t time.Time) Timestamp { return Timestamp(t.UnixMilli()) }

func (t Timestamp) Time() time.Time { return time.UnixMilli(int64(t)).UTC() }

func (t Timestamp) String() string { return t.Time().Format(timestampLayout) }

func (i Interval) Duration() time.Duration {
	return time.Duration(i) * time.Millisecond
}

func IntervalOf(d time.Duration) Interval { return Interval(d.Milliseconds()) }

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
