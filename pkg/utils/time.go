package utils

import (
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var ErrInvalidTime = errors.New("invalid time format, expected RFC3339 or YYYY-MM-DD")

// ParseUserTime accepts RFC3339 or a bare YYYY-MM-DD date and returns UTC.
// A bare date used as an upper bound is moved to the last second of that day
// so the whole day is included.
func ParseUserTime(timeStr string, isEndTime bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, timeStr); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse(dateLayout, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w, got %q", ErrInvalidTime, timeStr)
	}
	if isEndTime {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t, nil
}
