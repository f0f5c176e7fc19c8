// Package filter derives the displayed subset of the event collection.
//
// Criteria combine a free-text query, a category selector and an optional
// date range. Every active predicate must hold for an event to be included:
//   - Query: case-insensitive substring of the title or the description
//   - Categories: the event shares at least one category with the selector
//   - Date range: the event starts within DateFrom and DateTo (inclusive)
//
// An empty selector, or one containing All, matches every event. Events
// whose start time cannot be parsed are never excluded by the date range.
//
// Example usage:
//
//	c := filter.New("jazz", "1", "2")
//	visible := c.Apply(store.Events())
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/event-manager/internal/event"
)

// All is the selector value that disables category filtering.
const All event.ID = "All"

// Criteria holds the transient filter state
type Criteria struct {
	Query      string           `json:"query,omitempty"`
	Categories event.Membership `json:"categories,omitempty"`

	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
}

// New creates criteria for a query and a category selector.
func New(query string, categories ...event.ID) *Criteria {
	return &Criteria{
		Query:      query,
		Categories: event.NewMembership(categories...),
	}
}

// AllCategories reports whether the category selector matches everything
func (c *Criteria) AllCategories() bool {
	return len(c.Categories) == 0 || c.Categories.Contains(All)
}

// IsEmpty reports whether the criteria would match every event.
func (c *Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Query) == "" &&
		c.AllCategories() &&
		c.DateFrom == nil &&
		c.DateTo == nil
}

// Matches checks an event against every active predicate.
func (c *Criteria) Matches(evt *event.Event) bool {
	if !c.AllCategories() && !evt.CategoryIDs.Intersects(c.Categories) {
		return false
	}

	if q := strings.ToLower(strings.TrimSpace(c.Query)); q != "" {
		if !strings.Contains(strings.ToLower(evt.Title), q) &&
			!strings.Contains(strings.ToLower(evt.Description), q) {
			return false
		}
	}

	if c.DateFrom != nil || c.DateTo != nil {
		start := evt.Start()
		if start.IsZero() {
			return true
		}
		if c.DateFrom != nil && start.Before(*c.DateFrom) {
			return false
		}
		if c.DateTo != nil && start.After(*c.DateTo) {
			return false
		}
	}

	return true
}

// Apply returns the matching events in their original order. The input slice
// is never modified; an empty result is a valid, non-nil slice.
func (c *Criteria) Apply(events []*event.Event) []*event.Event {
	filtered := make([]*event.Event, 0, len(events))
	for _, evt := range events {
		if c.Matches(evt) {
			filtered = append(filtered, evt)
		}
	}
	return filtered
}

// String returns a human-readable description of the active criteria.
// Format: `Query: "jazz" | Categories: 1, 2 | From: Mar 1, 2026`
func (c *Criteria) String() string {
	if c.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if q := strings.TrimSpace(c.Query); q != "" {
		parts = append(parts, fmt.Sprintf("Query: %q", q))
	}

	if !c.AllCategories() {
		ids := make([]string, len(c.Categories))
		for i, id := range c.Categories {
			ids[i] = id.String()
		}
		parts = append(parts, fmt.Sprintf("Categories: %s", strings.Join(ids, ", ")))
	}

	if c.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", c.DateFrom.Format("Jan 2, 2006")))
	}

	if c.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", c.DateTo.Format("Jan 2, 2006")))
	}

	return strings.Join(parts, " | ")
}

// Clone creates a deep copy of the criteria.
func (c *Criteria) Clone() *Criteria {
	clone := &Criteria{
		Query:      c.Query,
		Categories: c.Categories.Clone(),
	}

	if c.DateFrom != nil {
		df := *c.DateFrom
		clone.DateFrom = &df
	}

	if c.DateTo != nil {
		dt := *c.DateTo
		clone.DateTo = &dt
	}

	return clone
}
