// Package store provides the Event Synchronization Store: the authoritative
// local copy of the event collection and the only path for mutating it.
//
// Every mutation is a round trip to the Remote Event Service. The local
// collection changes only after the service confirms, and is left exactly as
// it was when a call fails. There is no retry, no optimistic update and no
// conflict detection: the last response to arrive wins.
package store

import (
	"context"
	"sync"

	"github.com/pfrederiksen/event-manager/internal/event"
	"github.com/pfrederiksen/event-manager/internal/logger"
)

// State describes whether the collection has been loaded
type State string

const (
	// StatePending means no load has completed yet.
	StatePending State = "pending"
	// StateReady means the collection mirrors a successful load.
	StateReady State = "ready"
	// StateFailed means the first load failed and nothing is known.
	StateFailed State = "failed"
)

// Service is the subset of the Remote Event Service the store needs
type Service interface {
	ListEvents(ctx context.Context) ([]*event.Event, error)
	GetEvent(ctx context.Context, id event.ID) (*event.Event, error)
	CreateEvent(ctx context.Context, draft *event.Draft) (*event.Event, error)
	UpdateEvent(ctx context.Context, id event.ID, draft *event.Draft) (*event.Event, error)
	DeleteEvent(ctx context.Context, id event.ID) error
}

// Resolver resolves category identifiers into records
type Resolver interface {
	ResolveAll(ids []event.ID) []event.Category
}

// Store holds the local event collection. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	service  Service
	resolver Resolver
	events   []*event.Event
	state    State
}

// New creates an empty store. resolver may be nil, in which case events are
// kept without resolved categories.
func New(service Service, resolver Resolver) *Store {
	return &Store{
		service:  service,
		resolver: resolver,
		events:   []*event.Event{},
		state:    StatePending,
	}
}

// LoadAll fetches the full collection and replaces the local copy.
func (s *Store) LoadAll(ctx context.Context) ([]*event.Event, error) {
	events, err := s.service.ListEvents(ctx)
	if err != nil {
		s.mu.Lock()
		if s.state == StatePending {
			s.state = StateFailed
		}
		s.mu.Unlock()
		logger.Error("Loading events failed", nil, err)
		return nil, err
	}

	for _, evt := range events {
		s.denormalize(evt)
	}

	s.mu.Lock()
	s.events = events
	s.state = StateReady
	s.mu.Unlock()

	s.publishSize()
	logger.Debug("Events loaded", logger.Fields{"count": len(events)})
	return s.Events(), nil
}

// Get fetches one event from the service. A matching local record is
// refreshed with the response; the collection is otherwise untouched.
func (s *Store) Get(ctx context.Context, id event.ID) (*event.Event, error) {
	evt, err := s.service.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	s.denormalize(evt)

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.events[i] = evt
	}
	s.mu.Unlock()

	return evt.Clone(), nil
}

// Create submits a draft with no identifier and appends the returned record.
func (s *Store) Create(ctx context.Context, draft *event.Draft) (*event.Event, error) {
	evt, err := s.service.CreateEvent(ctx, draft)
	if err != nil {
		logger.Error("Creating event failed", logger.Fields{"title": draft.Title}, err)
		return nil, err
	}
	s.denormalize(evt)

	s.mu.Lock()
	s.events = append(s.events, evt)
	s.mu.Unlock()

	s.publishSize()
	logger.Info("Event created", logger.Fields{"event_id": evt.ID.String(), "title": evt.Title})
	return evt.Clone(), nil
}

// Update submits a draft for an existing identifier and replaces the local
// record with the response. When no local record has that identifier the
// collection is left alone and the server's record is still returned.
func (s *Store) Update(ctx context.Context, id event.ID, draft *event.Draft) (*event.Event, error) {
	evt, err := s.service.UpdateEvent(ctx, id, draft)
	if err != nil {
		logger.Error("Updating event failed", logger.Fields{"event_id": id.String()}, err)
		return nil, err
	}
	s.denormalize(evt)

	s.mu.Lock()
	i := s.indexOf(id)
	if i >= 0 {
		s.events[i] = evt
	}
	s.mu.Unlock()

	if i < 0 {
		logger.Warn("Updated event not present locally", logger.Fields{"event_id": id.String()})
	} else {
		logger.Info("Event updated", logger.Fields{"event_id": id.String()})
	}
	return evt.Clone(), nil
}

// Remove deletes an event on the service and then locally.
func (s *Store) Remove(ctx context.Context, id event.ID) error {
	if err := s.service.DeleteEvent(ctx, id); err != nil {
		logger.Error("Deleting event failed", logger.Fields{"event_id": id.String()}, err)
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.events = append(s.events[:i:i], s.events[i+1:]...)
	}
	s.mu.Unlock()

	s.publishSize()
	logger.Info("Event deleted", logger.Fields{"event_id": id.String()})
	return nil
}

// Events returns a copy of the collection in its current order
func (s *Store) Events() []*event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*event.Event, len(s.events))
	for i, evt := range s.events {
		out[i] = evt.Clone()
	}
	return out
}

// Find returns a copy of the local record with id
func (s *Store) Find(id event.ID) (*event.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.events[i].Clone(), true
	}
	return nil, false
}

// Len returns the number of local records
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// State reports the load state so callers can tell "loading" from "empty"
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Refresh re-resolves categories on every local record, typically after the
// category index finished loading.
func (s *Store) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, evt := range s.events {
		s.denormalize(evt)
	}
}

// indexOf must be called with s.mu held
func (s *Store) indexOf(id event.ID) int {
	for i, evt := range s.events {
		if evt.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) denormalize(evt *event.Event) {
	if s.resolver == nil {
		return
	}
	evt.Categories = s.resolver.ResolveAll(evt.CategoryIDs)
}

func (s *Store) publishSize() {
	logger.SetGauge("store.events", float64(s.Len()))
}
