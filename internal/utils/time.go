package utils

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// ParseCalendarDate accepts "2006-01-02" or RFC3339 and returns the calendar
// day it names in loc, as midnight UTC of that day.
func ParseCalendarDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return DateOnly(t, loc), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOnly(t, loc), nil
	}
	return time.Time{}, ErrInvalidDate
}

// DateOnly drops the clock part of t as observed in loc.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// UnixMillis is the receipt-friendly millisecond timestamp.
func UnixMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}
