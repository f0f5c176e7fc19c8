package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pfrederiksen/event-manager/internal/event"
)

// ErrNotFound is returned when no event has the requested identifier.
var ErrNotFound = errors.New("event not found")

// Database is the on-disk layout
type Database struct {
	Events     []*event.Event   `json:"events"`
	Categories []event.Category `json:"categories"`
}

// DefaultCategories seeds a database file that does not exist yet.
func DefaultCategories() []event.Category {
	return []event.Category{
		{ID: "1", Name: "Music"},
		{ID: "2", Name: "Art"},
		{ID: "3", Name: "Sports"},
		{ID: "4", Name: "Food"},
		{ID: "5", Name: "Technology"},
	}
}

// Storage handles persistence of the event database. Safe for concurrent use.
type Storage struct {
	mu   sync.RWMutex
	path string
	db   *Database
}

// New opens the database at path, creating it with the default categories
// when it does not exist.
func New(path string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	s := &Storage{path: path}
	if path == "" {
		s.db = &Database{Events: []*event.Event{}, Categories: DefaultCategories()}
		return s, nil
	}

	db, err := load(path)
	if err != nil {
		return nil, err
	}
	if db == nil {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		s.db = &Database{Events: []*event.Event{}, Categories: DefaultCategories()}
		if err := s.save(); err != nil {
			return nil, err
		}
		return s, nil
	}

	s.db = db
	return s, nil
}

// NewMemory creates an unpersisted database holding the given records
func NewMemory(events []*event.Event, categories []event.Category) *Storage {
	db := &Database{Events: []*event.Event{}, Categories: []event.Category{}}
	for _, evt := range events {
		db.Events = append(db.Events, evt.Clone())
	}
	db.Categories = append(db.Categories, categories...)
	return &Storage{db: db}
}

// load returns nil without error when the file does not exist
func load(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading database: %w", err)
	}

	var db Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("parsing database: %w", err)
	}

	if db.Events == nil {
		db.Events = []*event.Event{}
	}
	if db.Categories == nil {
		db.Categories = []event.Category{}
	}
	for _, evt := range db.Events {
		evt.Categories = nil
	}

	return &db, nil
}

// save must be called with s.mu held
func (s *Storage) save() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.db, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding database: %w", err)
	}

	// Write to a temp file first so a crash never leaves a truncated database
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing database: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing database: %w", err)
	}

	return nil
}

// Path returns the database file, empty for an in-memory database
func (s *Storage) Path() string {
	return s.path
}

// ListEvents returns copies of every event in insertion order
func (s *Storage) ListEvents() []*event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*event.Event, len(s.db.Events))
	for i, evt := range s.db.Events {
		out[i] = evt.Clone()
	}
	return out
}

// GetEvent returns a copy of one event
func (s *Storage) GetEvent(id event.ID) (*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.db.Events[i].Clone(), nil
	}
	return nil, fmt.Errorf("getting event %s: %w", id, ErrNotFound)
}

// CreateEvent stores a new event built from draft under the next free ID
func (s *Storage) CreateEvent(draft *event.Draft) (*event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evt := fromDraft(s.nextID(), draft)
	s.db.Events = append(s.db.Events, evt)

	if err := s.save(); err != nil {
		s.db.Events = s.db.Events[:len(s.db.Events)-1]
		return nil, err
	}
	return evt.Clone(), nil
}

// UpdateEvent replaces every field of an existing event
func (s *Storage) UpdateEvent(id event.ID, draft *event.Draft) (*event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("updating event %s: %w", id, ErrNotFound)
	}

	previous := s.db.Events[i]
	s.db.Events[i] = fromDraft(id, draft)

	if err := s.save(); err != nil {
		s.db.Events[i] = previous
		return nil, err
	}
	return s.db.Events[i].Clone(), nil
}

// DeleteEvent removes an event
func (s *Storage) DeleteEvent(id event.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("deleting event %s: %w", id, ErrNotFound)
	}

	previous := s.db.Events
	s.db.Events = append(s.db.Events[:i:i], s.db.Events[i+1:]...)

	if err := s.save(); err != nil {
		s.db.Events = previous
		return err
	}
	return nil
}

// ListCategories returns every category in file order
func (s *Storage) ListCategories() []event.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]event.Category, len(s.db.Categories))
	copy(out, s.db.Categories)
	return out
}

// NextID returns the identifier the next created event will get
func (s *Storage) NextID() event.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextID()
}

// nextID must be called with s.mu held
func (s *Storage) nextID() event.ID {
	var max int64
	for _, evt := range s.db.Events {
		if n, err := strconv.ParseInt(evt.ID.String(), 10, 64); err == nil && n > max {
			max = n
		}
	}
	return event.ID(strconv.FormatInt(max+1, 10))
}

// indexOf must be called with s.mu held
func (s *Storage) indexOf(id event.ID) int {
	for i, evt := range s.db.Events {
		if evt.ID == id {
			return i
		}
	}
	return -1
}

func fromDraft(id event.ID, d *event.Draft) *event.Event {
	return &event.Event{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Location:    d.Location,
		Image:       d.Image,
		CategoryIDs: event.NewMembership(d.CategoryIDs...),
	}
}
