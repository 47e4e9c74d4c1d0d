// Package timeparse handles the loose local-time strings upstream flight
// APIs return. Parsing never fails: unparseable input falls back to the
// raw string as the display time and the caller's anchor date.
package timeparse

import (
	"fmt"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	DisplayLayout = "3:04 PM"
)

var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// Parse attempts the known upstream layouts in order.
func Parse(s string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SplitLocal converts an upstream local-time string into the canonical
// (date, 12-hour display time) pair. On parse failure it returns the
// anchor date and the raw string unchanged.
func SplitLocal(s, anchorDate string) (date, display string) {
	if s == "" {
		return anchorDate, ""
	}
	t, ok := Parse(s)
	if !ok {
		return anchorDate, s
	}
	return t.Format(DateLayout), t.Format(DisplayLayout)
}

// Instant recombines a (date, display time) pair back into a wall-clock
// instant. The display time may be either 12-hour ("6:30 PM") or 24-hour
// ("18:30") form.
func Instant(date, display string) (time.Time, bool) {
	for _, layout := range []string{
		DateLayout + " " + DisplayLayout,
		DateLayout + " 03:04 PM",
		DateLayout + " 15:04",
		DateLayout + " 15:04:05",
	} {
		if t, err := time.Parse(layout, date+" "+display); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(DateLayout, date); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// MinutesBetween derives a leg duration from its endpoints. Returns
// DurationUnknown semantics via ok=false when either endpoint is
// unparseable or the difference is negative.
func MinutesBetween(depDate, depTime, arrDate, arrTime string) (int, bool) {
	dep, ok := Instant(depDate, depTime)
	if !ok {
		return 0, false
	}
	arr, ok := Instant(arrDate, arrTime)
	if !ok {
		return 0, false
	}
	mins := int(arr.Sub(dep).Minutes())
	if mins < 0 {
		return 0, false
	}
	return mins, true
}

// FormatMinutes renders a minute count the way the upstream APIs do:
// "3h 20m", or "45m" under an hour.
func FormatMinutes(mins int) string {
	if mins < 0 {
		return "N/A"
	}
	h := mins / 60
	m := mins % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
