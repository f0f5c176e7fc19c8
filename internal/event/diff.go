package event

import "strings"

// Change is one field that differs between two versions of an event
type Change struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// DetectChanges compares two versions of an event field by field. A nil
// previous yields a single "new" change carrying the title.
func DetectChanges(previous, current *Event) []Change {
	if previous == nil {
		return []Change{{Field: "new", NewValue: current.Title}}
	}

	var changes []Change
	add := func(field, old, new string) {
		if old != new {
			changes = append(changes, Change{Field: field, OldValue: old, NewValue: new})
		}
	}

	add("title", previous.Title, current.Title)
	add("description", previous.Description, current.Description)
	add("startTime", previous.StartTime, current.StartTime)
	add("endTime", previous.EndTime, current.EndTime)
	add("location", previous.Location, current.Location)
	add("image", previous.Image, current.Image)

	// Membership order is not significant
	if !previous.CategoryIDs.Equal(current.CategoryIDs) {
		add("categoryIds", joinIDs(previous.CategoryIDs), joinIDs(current.CategoryIDs))
	}

	return changes
}

func joinIDs(m Membership) string {
	parts := make([]string, len(m))
	for i, id := range m {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
