// Package server implements a development Remote Event Service: the JSON
// over HTTP contract the event store consumes, backed by a local database
// file.
//
// Routes:
//
//	GET    /events
//	POST   /events
//	GET    /events/{id}
//	PUT    /events/{id}
//	DELETE /events/{id}
//	GET    /categories
//	GET    /health
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pfrederiksen/event-manager/internal/event"
	"github.com/pfrederiksen/event-manager/internal/logger"
	"github.com/pfrederiksen/event-manager/internal/storage"
)

// maxBodyBytes bounds a submitted event body
const maxBodyBytes = 1 << 20

// Server serves the event collection over HTTP.
type Server struct {
	storage *storage.Storage
	router  chi.Router
}

// New creates a Server backed by st.
func New(st *storage.Storage) *Server {
	s := &Server{storage: st}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logging)
	r.Use(Recovery)

	r.Get("/health", s.handleHealth)
	r.Get("/categories", s.handleListCategories)
	r.Route("/events", func(r chi.Router) {
		r.Get("/", s.handleListEvents)
		r.Post("/", s.handleCreateEvent)
		r.Get("/{id}", s.handleGetEvent)
		r.Put("/{id}", s.handleUpdateEvent)
		r.Delete("/{id}", s.handleDeleteEvent)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", logger.Fields{"addr": addr, "database": s.storage.Path()})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("Server shutting down", nil)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.storage.ListCategories())
}

func (s *Server) handleListEvents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.storage.ListEvents())
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	evt, err := s.storage.GetEvent(id)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evt)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	evt, err := s.storage.CreateEvent(draft)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, evt)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	evt, err := s.storage.UpdateEvent(id, draft)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evt)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.storage.DeleteEvent(id); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{})
}

func pathID(w http.ResponseWriter, r *http.Request) (event.ID, bool) {
	raw, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err == nil {
		var id event.ID
		if id, err = event.ParseID(raw); err == nil {
			return id, true
		}
	}
	writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid event id: %v", err))
	return "", false
}

// decodeDraft reads a Draft body. A legacy single category field is accepted
// the same way stored records accept it.
func decodeDraft(w http.ResponseWriter, r *http.Request) (*event.Draft, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading body: "+err.Error())
		return nil, false
	}

	var evt event.Event
	if err := json.Unmarshal(body, &evt); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return evt.Draft(), true
}

func writeStorageError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	logger.Error("Storage operation failed", nil, err)
	writeError(w, http.StatusInternalServerError, "storage failure")
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
