//go:build ignore

// Writes a sample .ics file for checking calendar app compatibility by hand.
//
//	go run scripts/sample-calendar.go
package main

import (
	"fmt"
	"os"

	"github.com/pfrederiksen/event-manager/internal/calendar"
	"github.com/pfrederiksen/event-manager/internal/event"
)

func main() {
	evt := &event.Event{
		ID:          "sample-1",
		Title:       "Jazz Night",
		Description: "Live quartet, doors at 7pm",
		StartTime:   "2026-03-15T20:00",
		EndTime:     "2026-03-15T23:00",
		Location:    "Blue Room",
		CategoryIDs: event.Membership{"1", "2"},
		Categories:  []event.Category{{ID: "1", Name: "Music"}, {ID: "2", Name: "Art"}},
	}

	icsContent := calendar.GenerateICS(evt)

	// Owner read/write only
	filename := "sample-event.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
