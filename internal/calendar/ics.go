// Package calendar exports events as an iCalendar (RFC 5545) feed.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/pfrederiksen/event-manager/internal/event"
	"github.com/pfrederiksen/event-manager/internal/logger"
)

const (
	productID = "-//Event Manager//event-manager//EN"
	uidDomain = "event-manager"

	// floatingFormat is a DATE-TIME with no zone, read in the viewer's zone
	floatingFormat = "20060102T150405"

	// defaultDuration applies to timed events without a parseable end
	defaultDuration = time.Hour
)

// UID returns the stable calendar identifier of an event
func UID(id event.ID) string {
	return fmt.Sprintf("%s@%s", id, uidDomain)
}

// NewCalendar builds a calendar holding one VEVENT per event. Events whose
// start time cannot be parsed are skipped; the second result counts them.
func NewCalendar(events []*event.Event, now time.Time) (*ical.Calendar, int) {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodPublish)

	skipped := 0
	for _, evt := range events {
		if !addEvent(cal, evt, now) {
			logger.Debug("Skipping event without start time", logger.Fields{
				"event_id":  evt.ID.String(),
				"startTime": evt.StartTime,
			})
			skipped++
		}
	}
	return cal, skipped
}

// Export writes the calendar for events to w and returns how many events
// were written.
func Export(w io.Writer, events []*event.Event) (int, error) {
	cal, skipped := NewCalendar(events, time.Now())
	if err := cal.SerializeTo(w, ical.WithNewLineWindows); err != nil {
		return 0, fmt.Errorf("writing calendar: %w", err)
	}
	return len(events) - skipped, nil
}

// GenerateICS generates a single-event iCalendar document, or "" when the
// event has no parseable start time.
func GenerateICS(evt *event.Event) string {
	cal, skipped := NewCalendar([]*event.Event{evt}, time.Now())
	if skipped > 0 {
		return ""
	}
	return cal.Serialize(ical.WithNewLineWindows)
}

func addEvent(cal *ical.Calendar, evt *event.Event, now time.Time) bool {
	start := evt.Start()
	if start.IsZero() {
		return false
	}

	ve := cal.AddEvent(UID(evt.ID))
	ve.SetDtStampTime(now)
	ve.SetSummary(evt.Title)
	ve.SetStatus(ical.ObjectStatusConfirmed)

	if evt.Description != "" {
		ve.SetDescription(evt.Description)
	}
	if evt.Location != "" {
		ve.SetLocation(evt.Location)
	}
	if evt.Image != "" {
		ve.SetURL(evt.Image)
	}
	// One CATEGORIES property per category; a joined list would be escaped
	// into a single name
	for _, c := range evt.Categories {
		ve.AddCategory(c.Name)
	}

	end := evt.End()
	if isDateOnly(evt.StartTime) {
		ve.SetAllDayStartAt(start)
		if end.IsZero() || !end.After(start) {
			end = start
		}
		// DTEND of an all-day event is exclusive
		ve.SetAllDayEndAt(end.AddDate(0, 0, 1))
		return true
	}

	if end.IsZero() || !end.After(start) {
		end = start.Add(defaultDuration)
	}
	if event.HasZone(evt.StartTime) {
		ve.SetStartAt(start)
		ve.SetEndAt(end)
		return true
	}
	ve.SetProperty(ical.ComponentPropertyDtStart, start.Format(floatingFormat))
	ve.SetProperty(ical.ComponentPropertyDtEnd, end.Format(floatingFormat))
	return true
}

func isDateOnly(text string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(text))
	return err == nil
}
