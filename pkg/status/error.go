package status

import (
	"errors"
	"fmt"

	"github.com/3leaps/cirrus/pkg/provider"
)

// Kind is a domain error kind. The set is closed; unrecognized provider
// codes collapse to KindUnexpected.
type Kind string

const (
	KindNetworkFailure      Kind = "network-failure"
	KindServiceUnavailable  Kind = "service-unavailable"
	KindIncompatibleVersion Kind = "incompatible-version"
	KindNotAuthenticated    Kind = "not-authenticated"
	KindPermissionFailure   Kind = "permission-failure"
	KindOperationCancelled  Kind = "operation-cancelled"
	KindRequestRateLimited  Kind = "request-rate-limited"
	KindUserDeletedZone     Kind = "user-deleted-zone"
	KindZoneBusy            Kind = "zone-busy"
	KindZoneNotFound        Kind = "zone-not-found"
	KindServerResponseLost  Kind = "server-response-lost"
	KindChangeTokenExpired  Kind = "change-token-expired"
	KindUnexpected          Kind = "unexpected"
)

// User-facing guidance strings. These are ready to display as-is.
const (
	// MsgCheckSignal is used for network failures with no retry hint.
	MsgCheckSignal = "Couldn't connect. Check your network signal and try again."

	// MsgProblemConnecting is used for network failures that carry a
	// retry hint.
	MsgProblemConnecting = "There was a problem connecting. Try again in a moment."

	MsgServiceUnavailable  = "The service is temporarily unavailable. Try again later."
	MsgNotAuthenticated    = "You're not signed in to a cloud account. Sign in in system settings and try again."
	MsgOperationCancelled  = "The operation was cancelled."
	MsgIncompatibleVersion = "This version of the app is out of date. Update it to keep using cloud features."
	MsgServerResponseLost  = "The server's response was lost. Try again."
	MsgRateLimited         = "Too many requests. Try again shortly."
	MsgChangeTokenExpired  = "Your local sync state is out of date. Refresh and try again."
	MsgUnexpected          = "Something went wrong. Try again later."
)

// Error is a classified domain error: one of a closed set of kinds, with
// a ready-to-display message where the kind carries one, and a
// retry-after hint in whole seconds where the kind is retryable.
//
// Errors are immutable values with no identity; compare by Kind.
type Error struct {
	// Kind is the domain error kind.
	Kind Kind

	// Message is the user-facing guidance, empty for bare kinds
	// (permission-failure, zone-not-found, user-deleted-zone, zone-busy).
	Message string

	// RetryAfter is the suggested wait in whole seconds before
	// retrying, always >= 0. Only meaningful when Retryable reports
	// true; zero means retry immediately or no hint.
	RetryAfter int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

// Retryable reports whether the caller should wait RetryAfter seconds
// and try the operation again. Non-retryable kinds are terminal for the
// caller: they require recreating state (zone-not-found,
// user-deleted-zone), re-authenticating, or redirecting the user to
// system settings (permission-failure).
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindNetworkFailure, KindServiceUnavailable, KindRequestRateLimited, KindZoneBusy:
		return true
	default:
		return false
	}
}

// Classify maps a raw provider error to its domain kind.
//
// Returns nil when err is nil or carries no provider error in its chain;
// a nil return means "not a provider-domain failure", never "ignorable".
// Unclassifiable errors should be surfaced to the caller raw (see
// CheckAccount and RequestDiscoverability).
func Classify(err error) *Error {
	pe := provider.AsError(err)
	if pe == nil {
		return nil
	}

	secs := provider.RetryAfterSeconds(pe.RetryAfter)

	switch pe.Code {
	case provider.ErrCodeNetworkUnavailable, provider.ErrCodeNetworkFailure:
		msg := MsgCheckSignal
		if secs > 0 {
			msg = MsgProblemConnecting
		}
		return &Error{Kind: KindNetworkFailure, Message: msg, RetryAfter: secs}
	case provider.ErrCodeServiceUnavailable:
		return &Error{Kind: KindServiceUnavailable, Message: MsgServiceUnavailable, RetryAfter: secs}
	case provider.ErrCodeNotAuthenticated:
		return &Error{Kind: KindNotAuthenticated, Message: MsgNotAuthenticated}
	case provider.ErrCodePermissionFailure:
		return &Error{Kind: KindPermissionFailure}
	case provider.ErrCodeOperationCancelled:
		return &Error{Kind: KindOperationCancelled, Message: MsgOperationCancelled}
	case provider.ErrCodeIncompatibleVersion:
		return &Error{Kind: KindIncompatibleVersion, Message: MsgIncompatibleVersion}
	case provider.ErrCodeZoneNotFound:
		return &Error{Kind: KindZoneNotFound}
	case provider.ErrCodeUserDeletedZone:
		return &Error{Kind: KindUserDeletedZone}
	case provider.ErrCodeServerResponseLost:
		return &Error{Kind: KindServerResponseLost, Message: MsgServerResponseLost}
	case provider.ErrCodeZoneBusy:
		return &Error{Kind: KindZoneBusy, RetryAfter: secs}
	case provider.ErrCodeRequestRateLimited:
		return &Error{Kind: KindRequestRateLimited, Message: MsgRateLimited, RetryAfter: secs}
	case provider.ErrCodeChangeTokenExpired:
		return &Error{Kind: KindChangeTokenExpired, Message: MsgChangeTokenExpired}
	default:
		return &Error{Kind: KindUnexpected, Message: MsgUnexpected}
	}
}

// IsKind reports whether err classifies (or already is classified) as
// the given domain kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	if ce := Classify(err); ce != nil {
		return ce.Kind == kind
	}
	return false
}
