// Package storage persists the development Remote Event Service's data in a
// single JSON database file.
//
// The file holds two top-level collections, events and categories, in the
// layout json-server uses:
//
//	{"events": [...], "categories": [...]}
//
// Numeric identifiers are assigned as one more than the largest numeric
// identifier already present. A database path of "" keeps everything in
// memory. The default file is db.json in the working directory.
package storage
