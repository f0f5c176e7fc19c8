// Package cli implements the command-line interface for event-manager.
//
// The cli package provides the Cobra-based CLI: listing and filtering events
// (text, JSON or HTML output, sorted by start time or title), showing one
// event, creating, editing and deleting events through an edit session,
// listing categories, exporting an iCalendar feed and running the
// development Remote Event Service. It wires the api client, category index,
// event store, edit session and notifiers together.
package cli
