package gcal

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/lyanh238/VNASelf/internal/model"
	"github.com/lyanh238/VNASelf/internal/scheduling/repository"
	"github.com/lyanh238/VNASelf/pkg/gcalendar"
	pkgLog "github.com/lyanh238/VNASelf/pkg/log"
)

type mockAPI struct {
	listFn   func(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
	createFn func(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
	getFn    func(ctx context.Context, calID, eventID string) (*gcalendar.Event, error)
	updateFn func(ctx context.Context, req gcalendar.UpdateEventTimesRequest) (*gcalendar.Event, error)
	deleteFn func(ctx context.Context, calID, eventID string) error
}

func (m *mockAPI) ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error) {
	return m.listFn(ctx, req)
}

func (m *mockAPI) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	return m.createFn(ctx, req)
}

func (m *mockAPI) GetEvent(ctx context.Context, calID, eventID string) (*gcalendar.Event, error) {
	return m.getFn(ctx, calID, eventID)
}

func (m *mockAPI) UpdateEventTimes(ctx context.Context, req gcalendar.UpdateEventTimesRequest) (*gcalendar.Event, error) {
	return m.updateFn(ctx, req)
}

func (m *mockAPI) DeleteEvent(ctx context.Context, calID, eventID string) error {
	return m.deleteFn(ctx, calID, eventID)
}

func newTestRepository(api calendarAPI, attempts int) *Repository {
	return &Repository{
		client:         api,
		l:              pkgLog.NewNoop(),
		calendarID:     "primary",
		timezone:       "Asia/Ho_Chi_Minh",
		timeout:        time.Second,
		retryAttempts:  attempts,
		retryBaseDelay: time.Millisecond,
	}
}

func TestListEventsInWindowRetriesTransientFailures(t *testing.T) {
	window := model.TimeRange{
		Start: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	}

	calls := 0
	api := &mockAPI{
		listFn: func(_ context.Context, _ gcalendar.ListEventsRequest) ([]gcalendar.Event, error) {
			calls++
			if calls < 3 {
				return nil, &googleapi.Error{Code: 503}
			}
			return []gcalendar.Event{
				{ID: "a", Summary: "Standup", StartTime: window.Start, EndTime: window.Start.Add(time.Hour)},
			}, nil
		},
	}

	repo := newTestRepository(api, 3)
	events, err := repo.ListEventsInWindow(context.Background(), window)
	if err != nil {
		t.Fatalf("ListEventsInWindow() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("store called %d times, want 3", calls)
	}
	if len(events) != 1 || events[0].ID != "a" {
		t.Errorf("events = %+v, want the standup", events)
	}
}

func TestListEventsInWindowExhaustsRetries(t *testing.T) {
	calls := 0
	api := &mockAPI{
		listFn: func(_ context.Context, _ gcalendar.ListEventsRequest) ([]gcalendar.Event, error) {
			calls++
			return nil, &googleapi.Error{Code: 503}
		},
	}

	repo := newTestRepository(api, 3)
	_, err := repo.ListEventsInWindow(context.Background(), model.TimeRange{
		Start: time.Now(),
		End:   time.Now().Add(time.Hour),
	})
	if !errors.Is(err, repository.ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
	if calls != 3 {
		t.Errorf("store called %d times, want all 3 attempts", calls)
	}
}

func TestReadDoesNotRetryAuthFailures(t *testing.T) {
	calls := 0
	api := &mockAPI{
		listFn: func(_ context.Context, _ gcalendar.ListEventsRequest) ([]gcalendar.Event, error) {
			calls++
			return nil, &googleapi.Error{Code: 401}
		},
	}

	repo := newTestRepository(api, 3)
	_, err := repo.ListEventsInWindow(context.Background(), model.TimeRange{
		Start: time.Now(),
		End:   time.Now().Add(time.Hour),
	})
	if !errors.Is(err, repository.ErrAuthFailed) {
		t.Fatalf("error = %v, want ErrAuthFailed", err)
	}
	if calls != 1 {
		t.Errorf("store called %d times, auth failure must not retry", calls)
	}
}

func TestCreateEventNeverRetries(t *testing.T) {
	calls := 0
	api := &mockAPI{
		createFn: func(_ context.Context, _ gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
			calls++
			return nil, &googleapi.Error{Code: 503}
		},
	}

	repo := newTestRepository(api, 3)
	_, err := repo.CreateEvent(context.Background(), repository.CreateEventRequest{
		Title: "Design review",
		Range: model.TimeRange{Start: time.Now(), End: time.Now().Add(time.Hour)},
	})
	if !errors.Is(err, repository.ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
	if calls != 1 {
		t.Errorf("store called %d times, writes must be single attempt", calls)
	}
}

func TestMoveEventMapsNotFound(t *testing.T) {
	api := &mockAPI{
		updateFn: func(_ context.Context, _ gcalendar.UpdateEventTimesRequest) (*gcalendar.Event, error) {
			return nil, &googleapi.Error{Code: 404}
		},
	}

	repo := newTestRepository(api, 1)
	_, err := repo.MoveEvent(context.Background(), "gone", model.TimeRange{
		Start: time.Now(),
		End:   time.Now().Add(time.Hour),
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	api := &mockAPI{
		listFn: func(_ context.Context, _ gcalendar.ListEventsRequest) ([]gcalendar.Event, error) {
			calls++
			cancel()
			return nil, &googleapi.Error{Code: 503}
		},
	}

	repo := newTestRepository(api, 5)
	repo.retryBaseDelay = time.Minute

	done := make(chan error, 1)
	go func() {
		_, err := repo.ListEventsInWindow(ctx, model.TimeRange{
			Start: time.Now(),
			End:   time.Now().Add(time.Hour),
		})
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, repository.ErrUnavailable) {
			t.Fatalf("error = %v, want ErrUnavailable", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("retry loop kept waiting after context cancellation")
	}
	if calls != 1 {
		t.Errorf("store called %d times after cancellation, want 1", calls)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{"401 is auth", &googleapi.Error{Code: 401}, repository.ErrAuthFailed},
		{"403 quota is rate limit", &googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{{Reason: "rateLimitExceeded"}}}, repository.ErrRateLimited},
		{"plain 403 is auth", &googleapi.Error{Code: 403}, repository.ErrAuthFailed},
		{"404 is not found", &googleapi.Error{Code: 404}, repository.ErrNotFound},
		{"410 is not found", &googleapi.Error{Code: 410}, repository.ErrNotFound},
		{"429 is rate limit", &googleapi.Error{Code: 429}, repository.ErrRateLimited},
		{"500 is unavailable", &googleapi.Error{Code: 500}, repository.ErrUnavailable},
		{"deadline is unavailable", context.DeadlineExceeded, repository.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("classify(nil) = %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
