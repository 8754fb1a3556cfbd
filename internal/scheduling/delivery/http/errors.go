package http

import (
	"errors"
	"net/http"

	"github.com/lyanh238/VNASelf/internal/scheduling"
	"github.com/lyanh238/VNASelf/internal/scheduling/repository"
	pkgErrors "github.com/lyanh238/VNASelf/pkg/errors"
	"github.com/lyanh238/VNASelf/pkg/response"
)

// mapError translates domain and repository errors into HTTP errors from
// pkg/errors. Every backing-store failure keeps its class so callers can
// distinguish "retry later" from "fix your credentials".
func (h *handler) mapError(err error) error {
	var vErr *scheduling.ValidationError
	if errors.As(err, &vErr) {
		return pkgErrors.NewHTTPError(http.StatusBadRequest, vErr.Error())
	}

	var pErr *scheduling.PartialResolutionError
	if errors.As(err, &pErr) {
		return pkgErrors.NewHTTPError(http.StatusBadGateway, pErr.Error())
	}

	switch {
	case errors.Is(err, repository.ErrUnavailable):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, "calendar backend unavailable, try again later")
	case errors.Is(err, repository.ErrAuthFailed):
		return pkgErrors.NewHTTPError(http.StatusUnauthorized, "calendar backend rejected our credentials")
	case errors.Is(err, repository.ErrNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "event not found in the calendar backend")
	case errors.Is(err, repository.ErrRateLimited):
		return pkgErrors.NewHTTPError(http.StatusTooManyRequests, "calendar backend rate limit hit, try again later")
	default:
		return pkgErrors.NewHTTPError(http.StatusInternalServerError, response.DefaultErrorMessage)
	}
}
