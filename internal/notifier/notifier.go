package notifier

import (
	"errors"

	"github.com/pfrederiksen/event-manager/internal/event"
)

// Status is the outcome a notification reports
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Action names the mutation that raised a notification
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Notification is a transient user-visible notice
type Notification struct {
	Status      Status
	Action      Action
	Title       string
	Description string

	// Event is the record the mutation produced, nil on failure or delete
	Event *event.Event
}

// Notifier defines the interface for delivering notifications
type Notifier interface {
	Notify(n Notification) error
}

// Success builds a success notification
func Success(action Action, title, description string, evt *event.Event) Notification {
	return Notification{Status: StatusSuccess, Action: action, Title: title, Description: description, Event: evt}
}

// Failure builds an error notification whose description is err's message
func Failure(action Action, title string, err error) Notification {
	n := Notification{Status: StatusError, Action: action, Title: title}
	if err != nil {
		n.Description = err.Error()
	}
	return n
}

// Multi delivers to every notifier in order. A failing notifier does not stop
// the others; all errors are joined.
type Multi []Notifier

// Notify sends n to each notifier
func (m Multi) Notify(n Notification) error {
	var errs []error
	for _, notifier := range m {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards every notification
type Nop struct{}

// Notify does nothing
func (Nop) Notify(Notification) error { return nil }
