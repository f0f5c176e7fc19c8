package cli

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/event-manager/internal/category"
	"github.com/pfrederiksen/event-manager/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatHTML OutputFormat = "html"
)

// ParseOutputFormat validates a --format value
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(s))); format {
	case FormatText, FormatJSON, FormatHTML:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'html')", s)
	}
}

// OutputResult contains data to be output
type OutputResult struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Filter      string         `json:"filter"`
	EventCount  int            `json:"event_count"`
	Events      []*event.Event `json:"events"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	case FormatHTML:
		return writeHTML(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.EventCount == 0 {
		fmt.Fprintln(w, "No events match.")
		return nil
	}

	for _, evt := range result.Events {
		writeEventText(w, evt, verbose)
	}

	label := "events"
	if result.EventCount == 1 {
		label = "event"
	}
	_, err := fmt.Fprintf(w, "\nTotal: %d %s\n", result.EventCount, label)
	return err
}

func writeEventText(w io.Writer, evt *event.Event, verbose bool) {
	fmt.Fprintf(w, "[%s] %s\n", evt.ID, evt.Title)
	if when := formatWhen(evt); when != "" {
		fmt.Fprintf(w, "     When: %s\n", when)
	}
	if evt.Location != "" {
		fmt.Fprintf(w, "     Where: %s\n", evt.Location)
	}
	fmt.Fprintf(w, "     Categories: %s\n", categoryLabels(evt))

	if verbose {
		if desc := plainText(evt.Description); desc != "" {
			fmt.Fprintf(w, "     Description: %s\n", desc)
		}
		if evt.Image != "" {
			fmt.Fprintf(w, "     Image: %s\n", evt.Image)
		}
	}
}

// writeDetail prints every field of one event
func writeDetail(w io.Writer, evt *event.Event) error {
	writeEventText(w, evt, true)
	return nil
}

// categoryLabels joins the resolved category names. Memberships that did not
// resolve show the fallback label once.
func categoryLabels(evt *event.Event) string {
	names := make([]string, 0, len(evt.CategoryIDs))
	for _, c := range evt.Categories {
		names = append(names, c.Name)
	}
	if len(names) < len(evt.CategoryIDs) {
		names = append(names, category.Unknown)
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}

// formatWhen renders the start and end, falling back to the raw text when
// a timestamp does not parse.
func formatWhen(evt *event.Event) string {
	start, end := evt.Start(), evt.End()
	if start.IsZero() {
		return strings.TrimSpace(evt.StartTime)
	}

	out := start.Format("Mon Jan 2 2006 15:04")
	switch {
	case end.IsZero():
	case end.Year() == start.Year() && end.YearDay() == start.YearDay():
		out += " - " + end.Format("15:04")
	default:
		out += " - " + end.Format("Mon Jan 2 2006 15:04")
	}
	return out
}

// plainText strips markup from a description written in a rich text editor
// and collapses whitespace.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

var htmlPage = template.Must(template.New("events").Funcs(template.FuncMap{
	"when":       formatWhen,
	"categories": categoryLabels,
	"plain":      plainText,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Events</title>
</head>
<body>
<h1>Events</h1>
<p class="summary">{{.EventCount}} events · {{.Filter}}</p>
{{if .Events}}<ul class="events">
{{range .Events}}<li class="event" data-id="{{.ID}}">
<h2 class="title">{{.Title}}</h2>
{{with when .}}<p class="when">{{.}}</p>{{end}}
{{with .Location}}<p class="location">{{.}}</p>{{end}}
<p class="categories">{{categories .}}</p>
{{with plain .Description}}<p class="description">{{.}}</p>{{end}}
{{with .Image}}<img class="image" src="{{.}}" alt="">{{end}}
</li>
{{end}}</ul>
{{else}}<p class="empty">No events match.</p>
{{end}}</body>
</html>
`))

// writeHTML renders a standalone HTML page
func writeHTML(w io.Writer, result *OutputResult) error {
	if err := htmlPage.Execute(w, result); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}
