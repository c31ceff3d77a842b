package service

import "github.com/google/uuid"

type BatchEventType string

const (
	BatchStarted   BatchEventType = "batch.started"
	BatchProgress  BatchEventType = "batch.progress"
	BatchCompleted BatchEventType = "batch.completed"
	BatchFailed    BatchEventType = "batch.failed"
)

type BatchEvent struct {
	Type    BatchEventType `json:"type"`
	BatchID uuid.UUID      `json:"batchId"`
	Current int            `json:"current,omitempty"`
	Total   int            `json:"total"`
	Message string         `json:"message,omitempty"`
	Files   []string       `json:"files,omitempty"`
}

// Notifier receives batch lifecycle events, e.g. to push them to browsers.
type Notifier interface {
	Notify(event BatchEvent)
}

type NotifierFunc func(event BatchEvent)

func (f NotifierFunc) Notify(event BatchEvent) {
	f(event)
}
