// Package provider defines the boundary to the remote cloud account
// service: the container abstraction this library queries, the raw status
// codes it hands back, and the raw error type carrying provider error
// codes and retry hints.
//
// Implementations wrap a concrete cloud client (see the bundled s3
// adapter). This package performs no networking of its own.
package provider

import (
	"context"
	"time"
)

// Container abstracts the account and permission surface of a cloud
// client.
//
// Implementations should:
//   - Perform exactly one remote round trip per call
//   - Return raw codes untranslated; classification happens upstream
//   - Be safe for concurrent use
//
// Each method blocks until the remote call completes or ctx is done.
// Errors returned alongside a code should be *Error where the failure
// originated with the provider; any other error is treated as
// unclassifiable by the caller.
type Container interface {
	// AccountStatus queries the state of the user's cloud-account
	// credentials. The returned code is meaningful even when err is
	// non-nil (typically AccountCouldNotDetermine).
	AccountStatus(ctx context.Context) (AccountStatusCode, error)

	// PermissionStatus queries the current grant state of one
	// application permission without prompting the user.
	PermissionStatus(ctx context.Context, perm Permission) (PermissionStatusCode, error)

	// RequestPermission actively requests the permission. This may
	// surface a user-facing prompt and is the only non-idempotent call
	// on the interface; repeated requests before the user decides will
	// prompt again.
	RequestPermission(ctx context.Context, perm Permission) (PermissionStatusCode, error)
}

// Permission identifies one application-level permission.
type Permission string

const (
	// PermissionUserDiscoverability controls whether the current user
	// can be looked up by other users of the application.
	PermissionUserDiscoverability Permission = "user-discoverability"
)

// String returns the string representation of the permission.
func (p Permission) String() string {
	return string(p)
}

// AccountStatusCode is a raw account-status code as reported by the
// provider. The set is closed by the provider contract.
type AccountStatusCode string

const (
	// AccountCouldNotDetermine means the provider could not establish
	// the account state, usually because the status call itself failed.
	AccountCouldNotDetermine AccountStatusCode = "could-not-determine"

	// AccountAvailable means the account is signed in and usable.
	AccountAvailable AccountStatusCode = "available"

	// AccountRestricted means access is limited by parental controls or
	// a managed-device profile.
	AccountRestricted AccountStatusCode = "restricted"

	// AccountNoAccount means no account is signed in on this device.
	AccountNoAccount AccountStatusCode = "no-account"
)

// PermissionStatusCode is a raw permission-status code as reported by
// the provider. The set is closed by the provider contract.
type PermissionStatusCode string

const (
	// PermissionInitial means the user has not decided yet.
	PermissionInitial PermissionStatusCode = "initial"

	// PermissionCouldNotComplete means the provider could not establish
	// the grant state.
	PermissionCouldNotComplete PermissionStatusCode = "could-not-complete"

	// PermissionDenied means the user declined the permission.
	PermissionDenied PermissionStatusCode = "denied"

	// PermissionGranted means the user granted the permission.
	PermissionGranted PermissionStatusCode = "granted"
)

// RetryAfterSeconds converts a provider retry hint to whole seconds,
// rounded up. Zero or negative durations yield 0.
func RetryAfterSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}
