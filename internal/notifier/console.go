package notifier

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ConsoleNotifier renders notifications as single styled toast lines
type ConsoleNotifier struct {
	mu  sync.Mutex
	out io.Writer

	badge   map[Status]lipgloss.Style
	title   lipgloss.Style
	details lipgloss.Style
}

// NewConsoleNotifier creates a console notifier writing to out. Colors are
// chosen for out's terminal and dropped when it is not a terminal.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	r := lipgloss.NewRenderer(out)

	return &ConsoleNotifier{
		out: out,
		badge: map[Status]lipgloss.Style{
			StatusSuccess: r.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42")).Padding(0, 1),
			StatusError:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160")).Padding(0, 1),
		},
		title:   r.NewStyle().Bold(true),
		details: r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Notify writes one toast line
func (c *ConsoleNotifier) Notify(n Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := fmt.Fprintln(c.out, c.Render(n)); err != nil {
		return fmt.Errorf("writing notification: %w", err)
	}
	return nil
}

// Render formats a notification without writing it
func (c *ConsoleNotifier) Render(n Notification) string {
	badge, ok := c.badge[n.Status]
	if !ok {
		badge = c.badge[StatusError]
	}

	line := badge.Render(badgeText(n.Status)) + " " + c.title.Render(n.Title)
	if n.Description != "" {
		line += " " + c.details.Render(n.Description)
	}
	return line
}

func badgeText(s Status) string {
	if s == StatusSuccess {
		return "OK"
	}
	return "ERROR"
}
