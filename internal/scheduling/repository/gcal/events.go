package gcal

import (
	"context"
	"errors"
	"time"

	"github.com/lyanh238/VNASelf/internal/model"
	"github.com/lyanh238/VNASelf/internal/scheduling/repository"
	"github.com/lyanh238/VNASelf/pkg/gcalendar"
)

// ListEventsInWindow returns events intersecting the window, store order
// preserved. Reads retry on transient store failures with bounded backoff;
// auth failures and not-found never retry.
func (r *Repository) ListEventsInWindow(ctx context.Context, window model.TimeRange) ([]model.Event, error) {
	var events []gcalendar.Event

	err := r.withReadRetry(ctx, func(callCtx context.Context) error {
		var listErr error
		events, listErr = r.client.ListEvents(callCtx, gcalendar.ListEventsRequest{
			CalendarID: r.calendarID,
			TimeMin:    window.Start,
			TimeMax:    window.End,
		})
		return listErr
	})
	if err != nil {
		return nil, err
	}

	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		out = append(out, toModel(ev))
	}
	return out, nil
}

// CreateEvent inserts an event. Single attempt: a timeout here is ambiguous
// (the insert may have landed) and retrying could duplicate the event.
func (r *Repository) CreateEvent(ctx context.Context, req repository.CreateEventRequest) (model.Event, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	created, err := r.client.CreateEvent(callCtx, gcalendar.CreateEventRequest{
		CalendarID:  r.calendarID,
		Summary:     req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.Range.Start,
		EndTime:     req.Range.End,
		Timezone:    r.timezone,
	})
	if err != nil {
		return model.Event{}, classify(err)
	}

	return toModel(*created), nil
}

// MoveEvent updates an event's start/end. Single attempt, like all writes.
func (r *Repository) MoveEvent(ctx context.Context, eventID string, newRange model.TimeRange) (model.Event, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	moved, err := r.client.UpdateEventTimes(callCtx, gcalendar.UpdateEventTimesRequest{
		CalendarID: r.calendarID,
		EventID:    eventID,
		StartTime:  newRange.Start,
		EndTime:    newRange.End,
		Timezone:   r.timezone,
	})
	if err != nil {
		return model.Event{}, classify(err)
	}

	return toModel(*moved), nil
}

// DeleteEvent removes an event. Single attempt.
func (r *Repository) DeleteEvent(ctx context.Context, eventID string) error {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.DeleteEvent(callCtx, r.calendarID, eventID); err != nil {
		return classify(err)
	}
	return nil
}

// GetEvent fetches a single event by ID, with read retries.
func (r *Repository) GetEvent(ctx context.Context, eventID string) (model.Event, error) {
	var event *gcalendar.Event

	err := r.withReadRetry(ctx, func(callCtx context.Context) error {
		var getErr error
		event, getErr = r.client.GetEvent(callCtx, r.calendarID, eventID)
		return getErr
	})
	if err != nil {
		return model.Event{}, err
	}

	return toModel(*event), nil
}

// withReadRetry runs an idempotent read with per-call timeout and bounded
// exponential backoff. Only transient failures (unavailable, rate limited)
// are retried.
func (r *Repository) withReadRetry(ctx context.Context, call func(context.Context) error) error {
	var lastErr error
	delay := r.retryBaseDelay

	for attempt := 1; attempt <= r.retryAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := call(callCtx)
		cancel()

		if err == nil {
			return nil
		}

		lastErr = classify(err)
		if !errors.Is(lastErr, repository.ErrUnavailable) && !errors.Is(lastErr, repository.ErrRateLimited) {
			return lastErr
		}
		if attempt == r.retryAttempts {
			break
		}

		r.l.Warnf(ctx, "gcal: read attempt %d/%d failed, retrying in %v: %v", attempt, r.retryAttempts, delay, lastErr)

		select {
		case <-ctx.Done():
			return classify(ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return lastErr
}

func toModel(ev gcalendar.Event) model.Event {
	return model.Event{
		ID:          ev.ID,
		Title:       ev.Summary,
		Range:       model.TimeRange{Start: ev.StartTime, End: ev.EndTime},
		Description: ev.Description,
		Location:    ev.Location,
		HTMLLink:    ev.HtmlLink,
	}
}

// Verify interface compliance
var _ repository.Calendar = (*Repository)(nil)
