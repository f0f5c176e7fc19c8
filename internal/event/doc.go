// Package event provides the data model shared by every event-manager component.
//
// Events are tagged with a set of category identifiers (Membership). The
// Remote Event Service historically stored a single "category" per event and
// later moved to a "categoryIds" list; decoding accepts both shapes and
// normalizes them into a Membership, while encoding always emits categoryIds.
// Identifiers are opaque: numeric IDs round-trip as JSON numbers, anything
// else as strings.
package event
