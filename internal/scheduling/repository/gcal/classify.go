package gcal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/lyanh238/VNASelf/internal/scheduling/repository"
)

// classify maps raw Google API failures onto the repository's typed errors.
// The original error is kept in the chain for logging.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusUnauthorized, apiErr.Code == http.StatusForbidden && !isRateLimit(apiErr):
			return fmt.Errorf("%w: %v", repository.ErrAuthFailed, err)
		case apiErr.Code == http.StatusNotFound, apiErr.Code == http.StatusGone:
			return fmt.Errorf("%w: %v", repository.ErrNotFound, err)
		case apiErr.Code == http.StatusTooManyRequests, isRateLimit(apiErr):
			return fmt.Errorf("%w: %v", repository.ErrRateLimited, err)
		case apiErr.Code >= 500:
			return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
		}
		return err
	}

	// Timeouts and transport failures: the store may or may not have seen
	// the request; callers treat this as unavailable, never as "no events".
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}

	return err
}

// isRateLimit detects quota errors that Google reports as 403.
func isRateLimit(apiErr *googleapi.Error) bool {
	for _, e := range apiErr.Errors {
		if e.Reason == "rateLimitExceeded" || e.Reason == "userRateLimitExceeded" {
			return true
		}
	}
	return false
}
