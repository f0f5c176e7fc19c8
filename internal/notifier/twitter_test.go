package notifier

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API

	"github.com/pfrederiksen/event-manager/internal/event"
)

type fakeStatuses struct {
	posted []string
	err    error
}

func (f *fakeStatuses) Update(status string, params *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	f.posted = append(f.posted, status)
	return &twitter.Tweet{Text: status}, nil, nil
}

func jazzNight() *event.Event {
	return &event.Event{
		ID:          "10",
		Title:       "Jazz Night",
		StartTime:   "2026-03-15T20:00",
		Location:    "Blue Room",
		CategoryIDs: event.Membership{"1", "2"},
		Categories:  []event.Category{{ID: "1", Name: "Music"}, {ID: "2", Name: "Live Art"}},
	}
}

func TestFormatTweet(t *testing.T) {
	tests := []struct {
		name        string
		event       *event.Event
		contains    []string
		notContains []string
	}{
		{
			name:     "complete event",
			event:    jazzNight(),
			contains: []string{"Jazz Night", "Sun Mar 15 2026, 8:00 PM", "Blue Room", "#Music #LiveArt", "📣"},
		},
		{
			name:        "unparseable start shown verbatim",
			event:       &event.Event{ID: "1", Title: "Pop-up", StartTime: "next Friday"},
			contains:    []string{"Pop-up", "next Friday"},
			notContains: []string{"📍", "#"},
		},
		{
			name:        "no start time",
			event:       &event.Event{ID: "2", Title: "TBA"},
			notContains: []string{"📅"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tweet := formatTweet(tt.event)

			if utf8.RuneCountInString(tweet) > maxTweetLength {
				t.Errorf("tweet length = %d, want <= %d", utf8.RuneCountInString(tweet), maxTweetLength)
			}
			for _, want := range tt.contains {
				if !strings.Contains(tweet, want) {
					t.Errorf("tweet missing %q:\n%s", want, tweet)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(tweet, unwanted) {
					t.Errorf("tweet should not contain %q:\n%s", unwanted, tweet)
				}
			}
		})
	}
}

func TestFormatTweet_Truncation(t *testing.T) {
	evt := &event.Event{ID: "1", Title: strings.Repeat("Very Long Title ", 40)}

	tweet := formatTweet(evt)

	if got := utf8.RuneCountInString(tweet); got != maxTweetLength {
		t.Errorf("tweet length = %d, want %d", got, maxTweetLength)
	}
	if !strings.HasSuffix(tweet, "…") {
		t.Error("truncated tweet should end with an ellipsis")
	}
	if !utf8.ValidString(tweet) {
		t.Error("truncation must not split a multi-byte rune")
	}
}

func TestTwitterNotifier_Notify(t *testing.T) {
	tests := []struct {
		name       string
		note       Notification
		wantPosted int
	}{
		{"created event is announced", Success(ActionCreated, "Event created", "", jazzNight()), 1},
		{"update is ignored", Success(ActionUpdated, "Event updated", "", jazzNight()), 0},
		{"delete is ignored", Success(ActionDeleted, "Event deleted", "", nil), 0},
		{"failure is ignored", Failure(ActionCreated, "Create failed", errors.New("boom")), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statuses := &fakeStatuses{}
			n := &TwitterNotifier{statuses: statuses}

			if err := n.Notify(tt.note); err != nil {
				t.Fatalf("Notify() error = %v", err)
			}
			if len(statuses.posted) != tt.wantPosted {
				t.Errorf("posted %d tweets, want %d", len(statuses.posted), tt.wantPosted)
			}
		})
	}
}

func TestTwitterNotifier_NotifyError(t *testing.T) {
	n := &TwitterNotifier{statuses: &fakeStatuses{err: errors.New("rate limited")}}

	err := n.Notify(Success(ActionCreated, "Event created", "", jazzNight()))
	if err == nil || !strings.Contains(err.Error(), "event 10") {
		t.Errorf("Notify() error = %v, want it to name the event", err)
	}
}

func TestNewTwitterNotifier_MissingCredentials(t *testing.T) {
	t.Setenv("TWITTER_API_KEY", "key")
	t.Setenv("TWITTER_API_SECRET", "")
	t.Setenv("TWITTER_ACCESS_TOKEN", "token")
	t.Setenv("TWITTER_ACCESS_SECRET", "secret")

	if _, err := NewTwitterNotifier(); err == nil {
		t.Error("NewTwitterNotifier() expected error with missing secret")
	}
}

func TestNewTwitterNotifier_WithCredentials(t *testing.T) {
	t.Setenv("TWITTER_API_KEY", "key")
	t.Setenv("TWITTER_API_SECRET", "secret")
	t.Setenv("TWITTER_ACCESS_TOKEN", "token")
	t.Setenv("TWITTER_ACCESS_SECRET", "secret")

	n, err := NewTwitterNotifier()
	if err != nil {
		t.Fatalf("NewTwitterNotifier() error = %v", err)
	}
	if n.statuses == nil {
		t.Error("statuses client not set")
	}
}
