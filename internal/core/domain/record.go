package domain

import (
	"fmt"
	"time"
)

// TimestampLayout is the fixed timestamp format used by platform exports.
// Values are parsed as UTC with no timezone adjustment.
const TimestampLayout = "2006-01-02 15:04:05"

// Record is a single event read from a platform export, such as a posted
// video or a comment. Records are decoded JSON objects and are never
// modified after they are read.
type Record map[string]any

// Time parses the timestamp stored under field.
// A missing, non-string or badly formatted value wraps ErrMalformedTimestamp.
func (r Record) Time(field string) (time.Time, error) {
	raw, ok := r[field]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: field %q missing", ErrMalformedTimestamp, field)
	}
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: field %q is %T", ErrMalformedTimestamp, field, raw)
	}
	return ParseTimestamp(s)
}

// String returns the string value stored under key, or "" if absent.
func (r Record) String(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

// ParseTimestamp parses s using TimestampLayout.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}
	return t, nil
}

// TimedRecord pairs a record with its parsed timestamp.
type TimedRecord struct {
	Time   time.Time
	Record Record
}

// TimeWindow restricts records to [Start, End], inclusive on both ends.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies inside the window.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// IsValid reports whether the window is non-negative.
func (w TimeWindow) IsValid() bool {
	return !w.End.Before(w.Start)
}

// DefaultTimeWindow returns the window applied when none is configured.
func DefaultTimeWindow() TimeWindow {
	return TimeWindow{
		Start: time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// DefaultSessionGap is the inactivity gap that separates two usage sessions.
const DefaultSessionGap = time.Hour

// Session is a maximal run of events with no gap above the session gap.
type Session struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
}
