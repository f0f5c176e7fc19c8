package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/event-manager/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	// SortNone keeps the order the service returned
	SortNone    SortOrder = ""
	SortByStart SortOrder = "start"
	SortByTitle SortOrder = "title"
)

// ParseSortOrder validates a --sort value
func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case SortNone, SortByStart, SortByTitle:
		return order, nil
	default:
		return SortNone, fmt.Errorf("invalid sort order: %s (must be 'start' or 'title')", s)
	}
}

// sortEvents sorts events in place. The sort is stable so ties keep the
// service order.
func sortEvents(events []*event.Event, order SortOrder) {
	switch order {
	case SortByStart:
		sort.SliceStable(events, func(i, j int) bool {
			return compareByStart(events[i], events[j])
		})
	case SortByTitle:
		sort.SliceStable(events, func(i, j int) bool {
			ti, tj := strings.ToLower(events[i].Title), strings.ToLower(events[j].Title)
			if ti != tj {
				return ti < tj
			}
			// If titles are equal, sort by start
			return compareByStart(events[i], events[j])
		})
	}
}

// compareByStart reports whether i starts before j. Events without a
// parseable start go last.
func compareByStart(i, j *event.Event) bool {
	startI, startJ := i.Start(), j.Start()

	if !startI.IsZero() && !startJ.IsZero() {
		return startI.Before(startJ)
	}

	// If only one start is valid, put the valid one first
	return !startI.IsZero() && startJ.IsZero()
}
