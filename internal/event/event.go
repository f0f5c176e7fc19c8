package event

import (
	"encoding/json"
	"fmt"
	"time"
)

// Category represents a category record from the Remote Event Service
type Category struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Event represents an event as last returned by the Remote Event Service
type Event struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Location    string     `json:"location"`
	Image       string     `json:"image"`
	CategoryIDs Membership `json:"categoryIds"`

	// Categories holds the resolved category records, filled in locally.
	// Identifiers that do not resolve are left out.
	Categories []Category `json:"categories,omitempty"`
}

// Draft is the unsaved field set submitted on create or update
type Draft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Location    string     `json:"location"`
	Image       string     `json:"image"`
	CategoryIDs Membership `json:"categoryIds"`
}

// UnmarshalJSON decodes both the current categoryIds list and the legacy
// single category field.
func (e *Event) UnmarshalJSON(data []byte) error {
	type plain Event
	aux := struct {
		*plain
		Category *ID `json:"category"`
	}{plain: (*plain)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("decoding event: %w", err)
	}

	if len(e.CategoryIDs) == 0 && aux.Category != nil && !aux.Category.IsZero() {
		e.CategoryIDs = Membership{*aux.Category}
	}
	e.CategoryIDs = NewMembership(e.CategoryIDs...)

	return nil
}

// Start returns the parsed start time, or the zero time if it cannot be parsed
func (e *Event) Start() time.Time {
	return ParseTime(e.StartTime)
}

// End returns the parsed end time, or the zero time if it cannot be parsed
func (e *Event) End() time.Time {
	return ParseTime(e.EndTime)
}

// Draft returns a draft seeded field-by-field from the event.
func (e *Event) Draft() *Draft {
	return &Draft{
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Location:    e.Location,
		Image:       e.Image,
		CategoryIDs: e.CategoryIDs.Clone(),
	}
}

// Clone creates a deep copy of the event
func (e *Event) Clone() *Event {
	clone := *e
	clone.CategoryIDs = e.CategoryIDs.Clone()
	if e.Categories != nil {
		clone.Categories = make([]Category, len(e.Categories))
		copy(clone.Categories, e.Categories)
	}
	return &clone
}

// Clone creates a deep copy of the draft
func (d *Draft) Clone() *Draft {
	clone := *d
	clone.CategoryIDs = d.CategoryIDs.Clone()
	return &clone
}

// Matches reports whether every non-identifier field of the event equals the
// draft. Category order is ignored.
func (d *Draft) Matches(e *Event) bool {
	return d.Title == e.Title &&
		d.Description == e.Description &&
		d.StartTime == e.StartTime &&
		d.EndTime == e.EndTime &&
		d.Location == e.Location &&
		d.Image == e.Image &&
		d.CategoryIDs.Equal(e.CategoryIDs)
}
