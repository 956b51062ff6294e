package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/3leaps/cirrus/internal/server/middleware"
	"github.com/3leaps/cirrus/pkg/status"
)

// httpErrorResponder renders an operation error as an HTTP response.
// Variable so tests and embedders can substitute their own rendering.
var httpErrorResponder = defaultErrorResponder

// SetHTTPErrorResponder overrides how operation errors are rendered.
// Passing nil resets to the default responder.
func SetHTTPErrorResponder(f func(w http.ResponseWriter, r *http.Request, err error)) {
	if f == nil {
		httpErrorResponder = defaultErrorResponder
		return
	}
	httpErrorResponder = f
}

// ResetHTTPErrorResponder restores the default responder.
func ResetHTTPErrorResponder() {
	httpErrorResponder = defaultErrorResponder
}

func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	httpErrorResponder(w, r, err)
}

// defaultErrorResponder maps domain error kinds to HTTP statuses.
// Retryable kinds additionally carry a Retry-After header.
func defaultErrorResponder(w http.ResponseWriter, r *http.Request, err error) {
	var de *status.Error
	if !errors.As(err, &de) {
		middleware.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	if de.Retryable() && de.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(de.RetryAfter))
	}

	statusCode := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	switch de.Kind {
	case status.KindNetworkFailure, status.KindServerResponseLost:
		statusCode, code = http.StatusBadGateway, "UPSTREAM_UNREACHABLE"
	case status.KindServiceUnavailable, status.KindZoneBusy:
		statusCode, code = http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE"
	case status.KindRequestRateLimited:
		statusCode, code = http.StatusTooManyRequests, "RATE_LIMITED"
	case status.KindNotAuthenticated:
		statusCode, code = http.StatusUnauthorized, "NOT_AUTHENTICATED"
	case status.KindPermissionFailure:
		statusCode, code = http.StatusForbidden, "PERMISSION_FAILURE"
	case status.KindOperationCancelled:
		statusCode, code = http.StatusRequestTimeout, "CANCELLED"
	case status.KindIncompatibleVersion:
		statusCode, code = http.StatusUpgradeRequired, "INCOMPATIBLE_VERSION"
	case status.KindZoneNotFound:
		statusCode, code = http.StatusNotFound, "ZONE_NOT_FOUND"
	case status.KindUserDeletedZone:
		statusCode, code = http.StatusGone, "ZONE_DELETED"
	case status.KindChangeTokenExpired:
		statusCode, code = http.StatusConflict, "SYNC_STATE_STALE"
	}

	msg := de.Message
	if msg == "" {
		msg = de.Error()
	}
	middleware.WriteError(w, r, statusCode, code, msg)
}
