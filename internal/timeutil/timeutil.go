// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

const (
	secondsInAMinute = 60
	secondsInAnHour  = 3600
)

var errInvalidClock = errors.New(
	"time must be in m:ss form or a duration such as 1m30s",
)

// FormatClock renders a number of seconds as m:ss, or h:mm:ss from an hour
// upwards.
func FormatClock(secs uint64) string {
	h := secs / secondsInAnHour
	m := (secs % secondsInAnHour) / secondsInAMinute
	s := secs % secondsInAMinute

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatRemaining renders the time left in a segment. Once the segment has
// run over, the overtime is shown with a leading plus sign.
func FormatRemaining(elapsed, length uint64) string {
	if elapsed > length {
		return "+" + FormatClock(elapsed-length)
	}

	return FormatClock(length - elapsed)
}

// ParseClock parses a time offset written as m:ss, h:mm:ss, a plain number
// of seconds, or a Go duration string.
func ParseClock(str string) (uint64, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, errInvalidClock
	}

	if n, err := strconv.ParseUint(str, 10, 64); err == nil {
		return n, nil
	}

	if strings.Contains(str, ":") {
		parts := strings.Split(str, ":")
		if len(parts) > 3 {
			return 0, errInvalidClock
		}

		var total uint64

		for i, p := range parts {
			n, err := strconv.ParseUint(p, 10, 64)
			if err != nil {
				return 0, errInvalidClock
			}

			// everything but the leading field is bounded by 60
			if i > 0 && (n >= secondsInAMinute || len(p) != 2) {
				return 0, errInvalidClock
			}

			total = total*secondsInAMinute + n
		}

		return total, nil
	}

	d, err := time.ParseDuration(str)
	if err != nil || d < 0 {
		return 0, errInvalidClock
	}

	return uint64(d / time.Second), nil
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// FromStr parses a human readable date such as "yesterday" or "2 weeks ago".
func FromStr(str string) (time.Time, error) {
	d, err := dps.Parse(nil, str)
	if err != nil {
		return time.Time{}, err
	}

	return d.Time, nil
}

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.Format(time.RFC3339Nano))
}
