package render

import (
	"fmt"
	"strings"
	"time"
)

// Placeholder is shown wherever a value is absent.
const Placeholder = "—"

// The upstream reports "06:12 AM"; the 24-hour form is accepted too.
var clockLayouts = []string{"15:04", "03:04 PM", "3:04 PM"}

func parseClock(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
		}
	}
	return 0, false
}

// Span returns the hours and minutes from start to end, two times of day. An end
// earlier than start is taken to fall on the following day. ok is false when
// either input is empty or not a time of day.
func Span(start, end string) (hours, minutes int, ok bool) {
	s, ok1 := parseClock(start)
	e, ok2 := parseClock(end)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	if e < s {
		e += 24 * time.Hour
	}
	d := e - s
	return int(d / time.Hour), int((d % time.Hour) / time.Minute), true
}

// Duration formats Span as "7 hrs 0 mins", or Placeholder.
func Duration(start, end string) string {
	h, m, ok := Span(start, end)
	if !ok {
		return Placeholder
	}
	return fmt.Sprintf("%d hrs %d mins", h, m)
}
