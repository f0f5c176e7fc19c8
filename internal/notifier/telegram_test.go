package notifier

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// telegramServer mimics the sendMessage endpoint and records payloads
func telegramServer(t *testing.T, status int, response map[string]interface{}) (*httptest.Server, *[]map[string]interface{}) {
	t.Helper()
	var received []map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/bottest-token/sendMessage" {
			t.Errorf("path = %s", r.URL.Path)
		}

		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		received = append(received, payload)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(server.Close)

	return server, &received
}

func testTelegram(t *testing.T, url string) *TelegramNotifier {
	t.Helper()
	n, err := NewTelegramNotifier("test-token", "12345")
	if err != nil {
		t.Fatal(err)
	}
	n.baseURL = url + "/bot"
	return n
}

func TestNewTelegramNotifier_Validation(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		chatID string
	}{
		{"missing token", "", "123"},
		{"missing chat", "abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTelegramNotifier(tt.token, tt.chatID); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTelegramNotifier_AnnouncesCreate(t *testing.T) {
	server, received := telegramServer(t, http.StatusOK, map[string]interface{}{"ok": true})
	n := testTelegram(t, server.URL)

	if err := n.Notify(Success(ActionCreated, "Event created", "Jazz Night", jazzNight())); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	if len(*received) != 1 {
		t.Fatalf("sent %d messages, want 1", len(*received))
	}
	payload := (*received)[0]
	if payload["chat_id"] != "12345" || payload["parse_mode"] != "HTML" {
		t.Errorf("payload = %v", payload)
	}
	text, _ := payload["text"].(string)
	for _, want := range []string{"<b>Jazz Night</b>", "Blue Room", "#Music #LiveArt"} {
		if !strings.Contains(text, want) {
			t.Errorf("message missing %q:\n%s", want, text)
		}
	}
}

func TestTelegramNotifier_IgnoresOtherNotifications(t *testing.T) {
	server, received := telegramServer(t, http.StatusOK, map[string]interface{}{"ok": true})
	n := testTelegram(t, server.URL)

	notes := []Notification{
		Success(ActionUpdated, "Event updated", "Jazz Night", jazzNight()),
		Success(ActionDeleted, "Event deleted", "", nil),
		Failure(ActionCreated, "Could not create event", errors.New("boom")),
	}
	for _, note := range notes {
		if err := n.Notify(note); err != nil {
			t.Errorf("Notify(%s) error = %v", note.Action, err)
		}
	}
	if len(*received) != 0 {
		t.Errorf("sent %d messages, want 0", len(*received))
	}
}

func TestTelegramNotifier_APIError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response map[string]interface{}
		wantErr  string
	}{
		{"not ok", http.StatusOK, map[string]interface{}{"ok": false, "description": "Bad Request: chat not found"}, "chat not found"},
		{"http status", http.StatusUnauthorized, map[string]interface{}{"ok": false}, "status 401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := telegramServer(t, tt.status, tt.response)
			n := testTelegram(t, server.URL)

			err := n.Notify(Success(ActionCreated, "Event created", "", jazzNight()))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Notify() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestFormatTelegram_EscapesHTML(t *testing.T) {
	evt := jazzNight()
	evt.Title = "Rock & <Roll>"

	msg := formatTelegram(evt)
	if !strings.Contains(msg, "Rock &amp; &lt;Roll&gt;") {
		t.Errorf("title not escaped:\n%s", msg)
	}
}
