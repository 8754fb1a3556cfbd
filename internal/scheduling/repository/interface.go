package repository

import (
	"context"

	"github.com/lyanh238/VNASelf/internal/model"
)

// Calendar is the backing calendar store boundary. The store is the system
// of record; the engine only reads for conflict checks and requests
// mutations through this interface.
//
// Implementations own timeout and retry policy: reads may retry with
// bounded backoff, writes must never be silently retried on ambiguous
// failures (a retried create could duplicate an event).
type Calendar interface {
	// ListEventsInWindow returns events intersecting the window in the
	// store's native order (start-time ascending).
	ListEventsInWindow(ctx context.Context, window model.TimeRange) ([]model.Event, error)

	CreateEvent(ctx context.Context, req CreateEventRequest) (model.Event, error)
	MoveEvent(ctx context.Context, eventID string, newRange model.TimeRange) (model.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
	GetEvent(ctx context.Context, eventID string) (model.Event, error)
}

// CreateEventRequest is the input for creating an event in the backing store.
type CreateEventRequest struct {
	Title       string
	Description string
	Location    string
	Range       model.TimeRange
}
