package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pfrederiksen/event-manager/internal/event"
	"github.com/pfrederiksen/event-manager/internal/storage"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	st := storage.NewMemory(
		[]*event.Event{
			{ID: "1", Title: "Jazz Night", CategoryIDs: event.Membership{"1"}},
			{ID: "2", Title: "Gallery Opening", CategoryIDs: event.Membership{"2"}},
		},
		[]event.Category{{ID: "1", Name: "Music"}, {ID: "2", Name: "Art"}},
	)
	return New(st)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("response should carry a request ID")
	}
}

func TestRequestID_KeepsCallerID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()

	testServer(t).ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("%s = %q, want abc-123", RequestIDHeader, got)
	}
}

func TestRoutes(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		path         string
		body         string
		wantStatus   int
		wantContains string
	}{
		{"list events", http.MethodGet, "/events", "", http.StatusOK, `"Jazz Night"`},
		{"list categories", http.MethodGet, "/categories", "", http.StatusOK, `"Music"`},
		{"get event", http.MethodGet, "/events/2", "", http.StatusOK, `"Gallery Opening"`},
		{"get missing", http.MethodGet, "/events/99", "", http.StatusNotFound, "not found"},
		{"create", http.MethodPost, "/events", `{"title":"Poetry Slam","categoryIds":[2]}`, http.StatusCreated, `"id":3`},
		{"create ignores client id", http.MethodPost, "/events", `{"id":77,"title":"Sneaky"}`, http.StatusCreated, `"id":3`},
		{"create legacy category", http.MethodPost, "/events", `{"title":"Old","category":1}`, http.StatusCreated, `"categoryIds":[1]`},
		{"create malformed", http.MethodPost, "/events", `{"title":`, http.StatusBadRequest, "error"},
		{"create empty body", http.MethodPost, "/events", "", http.StatusBadRequest, "error"},
		{"update", http.MethodPut, "/events/1", `{"title":"Jazz Night II"}`, http.StatusOK, `"Jazz Night II"`},
		{"update missing", http.MethodPut, "/events/5", `{"title":"Ghost"}`, http.StatusNotFound, "not found"},
		{"delete", http.MethodDelete, "/events/1", "", http.StatusOK, "{}"},
		{"delete missing", http.MethodDelete, "/events/42", "", http.StatusNotFound, "not found"},
		{"method not allowed", http.MethodPatch, "/events/1", "", http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, testServer(t), tt.method, tt.path, tt.body)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantContains != "" && !strings.Contains(rec.Body.String(), tt.wantContains) {
				t.Errorf("body = %s, want it to contain %s", rec.Body.String(), tt.wantContains)
			}
		})
	}
}

func TestDeleteTwice(t *testing.T) {
	s := testServer(t)

	if rec := do(t, s, http.MethodDelete, "/events/2", ""); rec.Code != http.StatusOK {
		t.Fatalf("first delete status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodDelete, "/events/2", ""); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}

	var events []*event.Event
	rec := do(t, s, http.MethodGet, "/events", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].ID != "1" {
		t.Errorf("events after delete = %+v", events)
	}
}

func TestRecovery(t *testing.T) {
	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Errorf("body = %s", rec.Body.String())
	}
}
