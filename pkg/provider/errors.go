package provider

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode is a raw provider error code. Recognized codes are listed
// below; adapters may surface other codes, which classify as unexpected.
type ErrorCode string

const (
	// ErrCodeNetworkUnavailable indicates no network connectivity.
	ErrCodeNetworkUnavailable ErrorCode = "network-unavailable"

	// ErrCodeNetworkFailure indicates the network request failed mid-flight.
	ErrCodeNetworkFailure ErrorCode = "network-failure"

	// ErrCodeServiceUnavailable indicates the provider service is down.
	ErrCodeServiceUnavailable ErrorCode = "service-unavailable"

	// ErrCodeNotAuthenticated indicates no signed-in account credentials.
	ErrCodeNotAuthenticated ErrorCode = "not-authenticated"

	// ErrCodePermissionFailure indicates the user or an administrator
	// has denied access at the provider level.
	ErrCodePermissionFailure ErrorCode = "permission-failure"

	// ErrCodeOperationCancelled indicates the call was cancelled before
	// completion.
	ErrCodeOperationCancelled ErrorCode = "operation-cancelled"

	// ErrCodeIncompatibleVersion indicates the client is too old for the
	// provider API.
	ErrCodeIncompatibleVersion ErrorCode = "incompatible-version"

	// ErrCodeZoneNotFound indicates the record zone does not exist.
	ErrCodeZoneNotFound ErrorCode = "zone-not-found"

	// ErrCodeUserDeletedZone indicates the user deleted the zone out of
	// band; the caller must recreate state, not retry.
	ErrCodeUserDeletedZone ErrorCode = "user-deleted-zone"

	// ErrCodeServerResponseLost indicates the provider accepted the
	// request but the response was lost in transit.
	ErrCodeServerResponseLost ErrorCode = "server-response-lost"

	// ErrCodeZoneBusy indicates the zone is temporarily too busy to serve.
	ErrCodeZoneBusy ErrorCode = "zone-busy"

	// ErrCodeRequestRateLimited indicates the provider throttled the
	// request.
	ErrCodeRequestRateLimited ErrorCode = "request-rate-limited"

	// ErrCodeChangeTokenExpired indicates the client's sync token is no
	// longer valid.
	ErrCodeChangeTokenExpired ErrorCode = "change-token-expired"
)

// Error is a raw provider error: an opaque code plus optional detail and
// an optional retry-after hint. It is the only error shape the
// classifiers recognize; everything else passes through unclassified.
type Error struct {
	// Code is the provider error code.
	Code ErrorCode

	// Message is the provider-supplied human-readable detail, if any.
	Message string

	// RetryAfter is the provider-suggested wait before retrying.
	// Zero means no hint was supplied.
	RetryAfter time.Duration

	// Err is the underlying transport or SDK error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("provider %s", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a raw provider error from err's chain.
// Returns nil when err is nil or carries no provider error.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}
	return nil
}
