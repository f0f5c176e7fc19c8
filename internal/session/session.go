// Package session holds the Edit Session: the draft of the event currently
// being created or edited, kept apart from the stored collection until it is
// submitted.
//
// An Editor is either closed or open in one of two modes. Create mode starts
// from an empty draft; edit mode copies the fields of an existing event and
// remembers its identifier. A successful submit closes the session. A failed
// submit leaves the draft exactly as it was so the user can retry.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/pfrederiksen/event-manager/internal/event"
	"github.com/pfrederiksen/event-manager/internal/logger"
	"github.com/pfrederiksen/event-manager/internal/notifier"
)

// ErrClosed is returned when the session is used while no draft is open.
var ErrClosed = errors.New("edit session is closed")

// Mode tells whether a submit creates or updates
type Mode string

const (
	ModeClosed Mode = "closed"
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Store is the subset of the event store a session submits to
type Store interface {
	Create(ctx context.Context, draft *event.Draft) (*event.Event, error)
	Update(ctx context.Context, id event.ID, draft *event.Draft) (*event.Event, error)
	Remove(ctx context.Context, id event.ID) error
}

// Editor owns one draft at a time. Safe for concurrent use.
type Editor struct {
	mu       sync.Mutex
	store    Store
	notifier notifier.Notifier

	mode  Mode
	id    event.ID
	draft *event.Draft

	// generation is bumped by every Open
	generation uint64
}

// NewEditor creates a closed editor. n may be nil.
func NewEditor(store Store, n notifier.Notifier) *Editor {
	if n == nil {
		n = notifier.Nop{}
	}
	return &Editor{store: store, notifier: n, mode: ModeClosed}
}

// Open starts a session. A nil initial event opens create mode; otherwise the
// draft is seeded from initial and edit mode targets its identifier. Opening
// an already open session discards the previous draft.
func (e *Editor) Open(initial *event.Event) *event.Draft {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.generation++
	if initial == nil {
		e.mode, e.id, e.draft = ModeCreate, "", &event.Draft{CategoryIDs: event.Membership{}}
	} else {
		e.mode, e.id, e.draft = ModeEdit, initial.ID, initial.Draft()
	}
	return e.draft.Clone()
}

// Close discards the draft without submitting
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

// Mode returns the current mode
func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Target returns the identifier being edited, empty in create mode
func (e *Editor) Target() event.ID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id
}

// Draft returns a copy of the current draft
func (e *Editor) Draft() (*event.Draft, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return nil, ErrClosed
	}
	return e.draft.Clone(), nil
}

// SetField replaces a single text field. Accepted names are title,
// description, startTime, endTime, location and image.
func (e *Editor) SetField(name, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.draft == nil {
		return ErrClosed
	}

	field, err := e.field(name)
	if err != nil {
		return err
	}
	*field = value
	return nil
}

func (e *Editor) field(name string) (*string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "title":
		return &e.draft.Title, nil
	case "description":
		return &e.draft.Description, nil
	case "starttime", "start":
		return &e.draft.StartTime, nil
	case "endtime", "end":
		return &e.draft.EndTime, nil
	case "location":
		return &e.draft.Location, nil
	case "image":
		return &e.draft.Image, nil
	}
	return nil, fmt.Errorf("unknown field %q", name)
}

// SetCategories replaces the membership with the parsed identifiers.
// Blank and duplicate entries are dropped.
func (e *Editor) SetCategories(raw []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.draft == nil {
		return ErrClosed
	}

	ids := make([]event.ID, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		id, err := event.ParseID(r)
		if err != nil {
			return fmt.Errorf("parsing category: %w", err)
		}
		ids = append(ids, id)
	}

	e.draft.CategoryIDs = event.NewMembership(ids...)
	return nil
}

// Submit creates or updates through the store. On success the session closes
// and a success notification is sent; on failure the draft is kept and an
// error notification is sent.
func (e *Editor) Submit(ctx context.Context) (*event.Event, error) {
	e.mu.Lock()
	if e.draft == nil {
		e.mu.Unlock()
		return nil, ErrClosed
	}
	mode, id, draft, generation := e.mode, e.id, e.draft.Clone(), e.generation
	e.mu.Unlock()

	var (
		evt    *event.Event
		err    error
		action notifier.Action
		title  string
	)
	if mode == ModeEdit {
		action, title = notifier.ActionUpdated, "Event updated"
		evt, err = e.store.Update(ctx, id, draft)
	} else {
		action, title = notifier.ActionCreated, "Event created"
		evt, err = e.store.Create(ctx, draft)
	}

	if err != nil {
		verb := "create"
		if mode == ModeEdit {
			verb = "update"
		}
		e.notify(notifier.Failure(action, fmt.Sprintf("Could not %s event", verb), err))
		return nil, fmt.Errorf("submitting event: %w", err)
	}

	e.mu.Lock()
	// Only close the session that was submitted, not one reopened meanwhile
	if e.generation == generation {
		e.reset()
	}
	e.mu.Unlock()

	e.notify(notifier.Success(action, title, evt.Title, evt))
	return evt, nil
}

// Delete removes an event through the store and reports the outcome. It does
// not need an open session.
func (e *Editor) Delete(ctx context.Context, id event.ID) error {
	if err := e.store.Remove(ctx, id); err != nil {
		e.notify(notifier.Failure(notifier.ActionDeleted, "Could not delete event", err))
		return fmt.Errorf("deleting event: %w", err)
	}

	e.mu.Lock()
	if e.mode == ModeEdit && e.id == id {
		e.reset()
	}
	e.mu.Unlock()

	e.notify(notifier.Success(notifier.ActionDeleted, "Event deleted", "", nil))
	return nil
}

// reset must be called with e.mu held
func (e *Editor) reset() {
	e.mode, e.id, e.draft = ModeClosed, "", nil
}

func (e *Editor) notify(n notifier.Notification) {
	if err := e.notifier.Notify(n); err != nil {
		logger.Warn("Delivering notification failed", logger.Fields{"title": n.Title, "error": err.Error()})
	}
}
