package notifier

import (
	"errors"

	"github.com/pfrederiksen/event-manager/internal/logger"
)

// LogNotifier writes notifications to the structured logger
type LogNotifier struct{}

// NewLogNotifier creates a log notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs successes at INFO and failures at ERROR
func (l *LogNotifier) Notify(n Notification) error {
	fields := logger.Fields{
		"action": string(n.Action),
		"title":  n.Title,
	}
	if n.Event != nil {
		fields["event_id"] = n.Event.ID.String()
	}

	if n.Status == StatusSuccess {
		if n.Description != "" {
			fields["description"] = n.Description
		}
		logger.Info("Notification", fields)
		return nil
	}

	logger.Error("Notification", fields, errors.New(n.Description))
	return nil
}
