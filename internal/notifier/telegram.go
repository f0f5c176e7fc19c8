package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/event-manager/internal/event"
)

const (
	telegramAPIBaseURL = "https://api.telegram.org/bot"
	telegramTimeout    = 10 * time.Second
)

// TelegramNotifier posts newly created events to a Telegram chat through the
// Bot API. Every other notification is ignored.
type TelegramNotifier struct {
	botToken   string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

// NewTelegramNotifier creates a Telegram notifier
func NewTelegramNotifier(botToken, chatID string) (*TelegramNotifier, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}

	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  telegramAPIBaseURL,
		httpClient: &http.Client{
			Timeout: telegramTimeout,
		},
	}, nil
}

// NewTelegramNotifierFromEnv reads TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID
func NewTelegramNotifierFromEnv() (*TelegramNotifier, error) {
	return NewTelegramNotifier(os.Getenv("TELEGRAM_BOT_TOKEN"), os.Getenv("TELEGRAM_CHAT_ID"))
}

// Notify sends a message for a successful create
func (t *TelegramNotifier) Notify(n Notification) error {
	if !announces(n) {
		return nil
	}
	if err := t.sendMessage(formatTelegram(n.Event)); err != nil {
		return fmt.Errorf("sending telegram message for event %s: %w", n.Event.ID, err)
	}
	return nil
}

func (t *TelegramNotifier) sendMessage(text string) error {
	url := fmt.Sprintf("%s%s/sendMessage", t.baseURL, t.botToken)

	payload := map[string]interface{}{
		"chat_id":                  t.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}

// formatTelegram renders an announcement in Telegram's HTML subset
func formatTelegram(evt *event.Event) string {
	var msg strings.Builder

	msg.WriteString("📣 <b>New event!</b>\n\n")
	fmt.Fprintf(&msg, "🎫 <b>%s</b>\n", html.EscapeString(evt.Title))

	if start := evt.Start(); !start.IsZero() {
		fmt.Fprintf(&msg, "📅 %s\n", start.Format("Mon Jan 2 2006, 3:04 PM"))
	} else if evt.StartTime != "" {
		fmt.Fprintf(&msg, "📅 %s\n", html.EscapeString(evt.StartTime))
	}

	if evt.Location != "" {
		fmt.Fprintf(&msg, "📍 %s\n", html.EscapeString(evt.Location))
	}

	if tags := hashtags(evt.Categories); tags != "" {
		msg.WriteString("\n" + tags)
	}

	return msg.String()
}
