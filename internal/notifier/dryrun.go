package notifier

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// DryRunNotifier prints what would be tweeted without actually posting.
// Used when Twitter announcements are enabled but credentials are missing.
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

// Notify prints the tweet that would be posted
func (n *DryRunNotifier) Notify(note Notification) error {
	if !announces(note) {
		return nil
	}

	tweet := formatTweet(note.Event)
	_, err := fmt.Fprintf(n.out, "--- Tweet (dry run) ---\n%s\n\n(Length: %d characters)\n\n", tweet, utf8.RuneCountInString(tweet))
	return err
}
