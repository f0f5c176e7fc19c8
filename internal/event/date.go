package event

import (
	"strings"
	"time"
)

// timeLayouts are tried in order by ParseTime. Form inputs of type
// datetime-local produce "2006-01-02T15:04".
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime attempts to parse an event timestamp into a time.Time.
// Returns time.Time{} (zero value) if parsing fails.
// Timestamps without a zone are read as UTC so they compare consistently;
// HasZone tells the two forms apart.
func ParseTime(text string) time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t
		}
	}

	// Could not parse, return zero time
	return time.Time{}
}

// HasZone reports whether a timestamp carries its own UTC offset. Zone-less
// values, such as datetime-local form input, are wall-clock times.
func HasZone(text string) bool {
	_, err := time.Parse(time.RFC3339, strings.TrimSpace(text))
	return err == nil
}

// IsPast checks if an event has ended.
// Returns false if neither time can be parsed (safer default).
func (e *Event) IsPast(now time.Time) bool {
	end := e.End()
	if end.IsZero() {
		end = e.Start()
	}
	if end.IsZero() {
		return false
	}
	return end.Before(now)
}
