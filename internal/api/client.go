package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/event-manager/internal/event"
	"github.com/pfrederiksen/event-manager/internal/logger"
)

const (
	UserAgent = "event-manager/1.0 (github.com/pfrederiksen/event-manager)"

	// RequestIDHeader carries a per-request UUID so client and server logs line up.
	RequestIDHeader = "X-Request-ID"
)

// Client is a client for the Remote Event Service
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *logger.Metrics
}

// NewClient creates a client rooted at baseURL. A zero timeout means
// requests wait until the context is done.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing service URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("service URL must be an absolute http(s) URL, got %q", baseURL)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: logger.DefaultMetrics(),
	}, nil
}

// BaseURL returns the service root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListEvents fetches the full event collection (GET /events)
func (c *Client) ListEvents(ctx context.Context) ([]*event.Event, error) {
	var events []*event.Event
	if err := c.do(ctx, KindFetch, "list_events", http.MethodGet, "/events", nil, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*event.Event{}
	}
	return events, nil
}

// GetEvent fetches a single event (GET /events/{id})
func (c *Client) GetEvent(ctx context.Context, id event.ID) (*event.Event, error) {
	var evt event.Event
	if err := c.do(ctx, KindFetch, "get_event", http.MethodGet, eventPath(id), nil, &evt); err != nil {
		return nil, err
	}
	return &evt, nil
}

// CreateEvent submits a draft without identifier (POST /events).
// The returned event carries the server-assigned ID.
func (c *Client) CreateEvent(ctx context.Context, draft *event.Draft) (*event.Event, error) {
	var evt event.Event
	if err := c.do(ctx, KindSubmit, "create_event", http.MethodPost, "/events", draft, &evt); err != nil {
		return nil, err
	}
	return &evt, nil
}

// UpdateEvent submits a draft for an existing event (PUT /events/{id})
func (c *Client) UpdateEvent(ctx context.Context, id event.ID, draft *event.Draft) (*event.Event, error) {
	var evt event.Event
	if err := c.do(ctx, KindSubmit, "update_event", http.MethodPut, eventPath(id), draft, &evt); err != nil {
		return nil, err
	}
	return &evt, nil
}

// DeleteEvent removes an event (DELETE /events/{id}). The response body,
// empty or an echo of the record, is ignored.
func (c *Client) DeleteEvent(ctx context.Context, id event.ID) error {
	return c.do(ctx, KindDelete, "delete_event", http.MethodDelete, eventPath(id), nil, nil)
}

// ListCategories fetches all categories (GET /categories)
func (c *Client) ListCategories(ctx context.Context) ([]event.Category, error) {
	var categories []event.Category
	if err := c.do(ctx, KindFetch, "list_categories", http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []event.Category{}
	}
	return categories, nil
}

func eventPath(id event.ID) string {
	return "/events/" + url.PathEscape(id.String())
}

// do performs one round trip. Any non-2xx status is a failure of kind;
// a body that does not decode into out is a KindDecode failure.
func (c *Client) do(ctx context.Context, kind Kind, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: kind, Op: op, Err: fmt.Errorf("marshaling payload: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: kind, Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.metrics.IncrCounter("api.requests")
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	c.metrics.RecordTiming("api."+op, elapsed)
	if err != nil {
		c.metrics.IncrCounter("api.errors")
		logger.Warn("Request failed", logger.Fields{
			"op":         op,
			"method":     method,
			"path":       path,
			"request_id": requestID,
		})
		return &Error{Kind: kind, Op: op, Err: fmt.Errorf("sending request: %w", err)}
	}
	defer resp.Body.Close()

	logger.Debug("Request completed", logger.Fields{
		"op":          op,
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"duration_ms": elapsed.Milliseconds(),
		"request_id":  requestID,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.IncrCounter("api.errors")
		// Drain so the connection can be reused; the body is not surfaced.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return &Error{Kind: kind, Op: op, Status: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.IncrCounter("api.errors")
		return &Error{Kind: KindDecode, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("parsing response: %w", err)}
	}

	return nil
}
