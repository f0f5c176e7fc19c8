package notifier

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/pfrederiksen/event-manager/internal/event"
)

const maxTweetLength = 280

// statusUpdater is the part of the Twitter statuses API used to post
type statusUpdater interface {
	Update(status string, params *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error)
}

// TwitterNotifier announces newly created events on Twitter. Every other
// notification is ignored.
type TwitterNotifier struct {
	statuses statusUpdater
}

// NewTwitterNotifier creates a Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{statuses: client.Statuses}, nil
}

// Notify posts a tweet for a successful create
func (n *TwitterNotifier) Notify(note Notification) error {
	if !announces(note) {
		return nil
	}

	if _, _, err := n.statuses.Update(formatTweet(note.Event), nil); err != nil {
		return fmt.Errorf("posting tweet for event %s: %w", note.Event.ID, err)
	}
	return nil
}

func announces(n Notification) bool {
	return n.Status == StatusSuccess && n.Action == ActionCreated && n.Event != nil
}

// formatTweet formats an event announcement within the Twitter length limit
func formatTweet(evt *event.Event) string {
	var b strings.Builder
	b.WriteString("📣 New event!\n\n")
	fmt.Fprintf(&b, "🎫 %s\n", evt.Title)

	if start := evt.Start(); !start.IsZero() {
		fmt.Fprintf(&b, "📅 %s\n", start.Format("Mon Jan 2 2006, 3:04 PM"))
	} else if evt.StartTime != "" {
		fmt.Fprintf(&b, "📅 %s\n", evt.StartTime)
	}

	if evt.Location != "" {
		fmt.Fprintf(&b, "📍 %s\n", evt.Location)
	}

	if tags := hashtags(evt.Categories); tags != "" {
		b.WriteString("\n" + tags)
	}

	return truncate(b.String(), maxTweetLength)
}

// hashtags turns category names into hashtags, dropping non-alphanumerics
func hashtags(categories []event.Category) string {
	tags := make([]string, 0, len(categories))
	for _, c := range categories {
		tag := strings.Map(func(r rune) rune {
			if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, c.Name)
		if tag != "" {
			tags = append(tags, "#"+tag)
		}
	}
	return strings.Join(tags, " ")
}

// truncate cuts s to at most limit runes, ending with an ellipsis when cut
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
