package gcal

import (
	"context"
	"time"

	"github.com/lyanh238/VNASelf/pkg/gcalendar"
	pkgLog "github.com/lyanh238/VNASelf/pkg/log"
)

// calendarAPI abstracts the Google Calendar client for mocking.
type calendarAPI interface {
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
	GetEvent(ctx context.Context, calID, eventID string) (*gcalendar.Event, error)
	UpdateEventTimes(ctx context.Context, req gcalendar.UpdateEventTimesRequest) (*gcalendar.Event, error)
	DeleteEvent(ctx context.Context, calID, eventID string) error
}

// Config tunes the Google Calendar repository.
type Config struct {
	CalendarID     string
	Timezone       string        // IANA name sent alongside event times
	Timeout        time.Duration // per backing-store call
	RetryAttempts  int           // read operations only
	RetryBaseDelay time.Duration // doubled per retry
}

// Repository implements repository.Calendar against Google Calendar.
type Repository struct {
	client calendarAPI
	l      pkgLog.Logger

	calendarID     string
	timezone       string
	timeout        time.Duration
	retryAttempts  int
	retryBaseDelay time.Duration
}

// New creates a Google Calendar repository.
func New(client *gcalendar.Client, l pkgLog.Logger, cfg Config) *Repository {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}
	baseDelay := cfg.RetryBaseDelay
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}

	return &Repository{
		client:         client,
		l:              l,
		calendarID:     cfg.CalendarID,
		timezone:       cfg.Timezone,
		timeout:        timeout,
		retryAttempts:  attempts,
		retryBaseDelay: baseDelay,
	}
}
