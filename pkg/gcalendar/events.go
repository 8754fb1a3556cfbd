package gcalendar

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

// ListEvents returns events intersecting [TimeMin, TimeMax) in the store's
// native start-time order, recurring events expanded to single instances.
func (c *Client) ListEvents(ctx context.Context, req ListEventsRequest) ([]Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := c.service.Events.List(calendarID(req.CalendarID)).
		TimeMin(req.TimeMin.Format(time.RFC3339)).
		TimeMax(req.TimeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)
	if req.MaxResults > 0 {
		call = call.MaxResults(req.MaxResults)
	}

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	events := make([]Event, 0, len(result.Items))
	for _, item := range result.Items {
		ev, convErr := c.convertEvent(item)
		if convErr != nil {
			return nil, fmt.Errorf("malformed event %q in list response: %w", item.Id, convErr)
		}
		events = append(events, ev)
	}

	return events, nil
}

// CreateEvent creates a new Google Calendar event.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	event := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Location:    req.Location,
		Start: &calendar.EventDateTime{
			// time.RFC3339 embeds the offset directly
			DateTime: req.StartTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: req.EndTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
	}

	created, err := c.service.Events.Insert(calendarID(req.CalendarID), event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	return &Event{
		ID:          created.Id,
		Summary:     created.Summary,
		Description: created.Description,
		Location:    created.Location,
		HtmlLink:    created.HtmlLink,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}, nil
}

// GetEvent fetches a single event by ID.
func (c *Client) GetEvent(ctx context.Context, calID, eventID string) (*Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	item, err := c.service.Events.Get(calendarID(calID), eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar event %q: %w", eventID, err)
	}

	ev, err := c.convertEvent(item)
	if err != nil {
		return nil, fmt.Errorf("malformed event %q: %w", eventID, err)
	}
	return &ev, nil
}

// UpdateEventTimes moves an existing event to a new start/end, leaving every
// other field untouched.
func (c *Client) UpdateEventTimes(ctx context.Context, req UpdateEventTimesRequest) (*Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	calID := calendarID(req.CalendarID)

	existing, err := c.service.Events.Get(calID, req.EventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar event %q: %w", req.EventID, err)
	}

	existing.Start = &calendar.EventDateTime{
		DateTime: req.StartTime.Format(time.RFC3339),
		TimeZone: req.Timezone,
	}
	existing.End = &calendar.EventDateTime{
		DateTime: req.EndTime.Format(time.RFC3339),
		TimeZone: req.Timezone,
	}

	updated, err := c.service.Events.Update(calID, req.EventID, existing).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update calendar event %q: %w", req.EventID, err)
	}

	ev, err := c.convertEvent(updated)
	if err != nil {
		return nil, fmt.Errorf("malformed event %q in update response: %w", req.EventID, err)
	}
	return &ev, nil
}

// DeleteEvent removes an event by ID.
func (c *Client) DeleteEvent(ctx context.Context, calID, eventID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if err := c.service.Events.Delete(calendarID(calID), eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event %q: %w", eventID, err)
	}
	return nil
}

// convertEvent maps an API event to the simplified Event. All-day events
// (date without time) span midnight to midnight in the client's location.
func (c *Client) convertEvent(item *calendar.Event) (Event, error) {
	start, err := c.parseEventTime(item.Start)
	if err != nil {
		return Event{}, fmt.Errorf("bad start time: %w", err)
	}
	end, err := c.parseEventTime(item.End)
	if err != nil {
		return Event{}, fmt.Errorf("bad end time: %w", err)
	}

	return Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Location:    item.Location,
		HtmlLink:    item.HtmlLink,
		StartTime:   start,
		EndTime:     end,
	}, nil
}

// parseEventTime reads either a dateTime or an all-day date. The API's
// all-day end date is already exclusive, so no adjustment is needed.
func (c *Client) parseEventTime(edt *calendar.EventDateTime) (time.Time, error) {
	if edt == nil {
		return time.Time{}, fmt.Errorf("missing event time")
	}
	if edt.DateTime != "" {
		return time.Parse(time.RFC3339, edt.DateTime)
	}
	if edt.Date != "" {
		return time.ParseInLocation("2006-01-02", edt.Date, c.location)
	}
	return time.Time{}, fmt.Errorf("event time has neither dateTime nor date")
}

func calendarID(id string) string {
	if id == "" {
		return "primary"
	}
	return id
}
