package model

import (
	"errors"
	"fmt"
	"time"
)

// DayLayout is the canonical day-key form.
const DayLayout = "2006-01-02"

var ErrInvalidDay = errors.New("invalid day")

// DayKey is the calendar date of t in t's own location. Callers keep write
// and read paths in the same location so buckets line up.
func DayKey(t time.Time) string { return t.Format(DayLayout) }

// ParseDay reads a YYYY-MM-DD key as midnight in loc.
func ParseDay(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DayLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, key)
	}
	return t, nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
