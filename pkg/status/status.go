// Package status translates a cloud provider's raw account-status,
// permission-status, and error codes into a closed set of domain results
// carrying user-facing guidance and retry-delay hints.
//
// The package is stateless and performs no networking, caching, or
// retrying of its own: all remote calls go through the supplied
// provider.Container, and every result is computed fresh from that one
// call's return values. Classification is pure and synchronous.
//
// Failure priority: when a container call returns both a usable status
// code and an error, the error wins — the operation reports a failure
// carrying the classified domain error (or the raw error when it is not
// a provider-domain error).
package status

import (
	"context"

	"github.com/3leaps/cirrus/pkg/provider"
	"github.com/3leaps/cirrus/pkg/result"
)

// CheckAccount queries the account status once and classifies the
// outcome. No retries, no follow-up calls.
func CheckAccount(ctx context.Context, c provider.Container) result.Result[Account] {
	code, rawErr := c.AccountStatus(ctx)

	ferr := failureError(rawErr)
	acct, cerr := ClassifyAccount(code, guidanceFrom(ferr))
	if cerr != nil {
		return result.Failure[Account](cerr)
	}
	return result.New(acct, ferr)
}

// RequestDiscoverability negotiates the user-discoverability permission:
// it checks the current grant state and, only when the user has not
// decided yet, issues the request call and reports that outcome instead.
//
// The request call may surface a user-facing prompt; it is never issued
// before the status check has returned, and at most one container call
// is outstanding at a time.
func RequestDiscoverability(ctx context.Context, c provider.Container) result.Result[Permission] {
	res := classifyPermissionCall(c.PermissionStatus(ctx, provider.PermissionUserDiscoverability))

	perm, ok := res.Value()
	if !ok || perm.State != PermissionInitial {
		return res
	}

	return classifyPermissionCall(c.RequestPermission(ctx, provider.PermissionUserDiscoverability))
}

// classifyPermissionCall turns one container callback's return values
// into a unified result, applying the failure-priority rule.
func classifyPermissionCall(code provider.PermissionStatusCode, rawErr error) result.Result[Permission] {
	ferr := failureError(rawErr)
	perm, cerr := ClassifyPermission(code, guidanceFrom(ferr))
	if cerr != nil {
		return result.Failure[Permission](cerr)
	}
	return result.New(perm, ferr)
}

// failureError resolves the error to report for a failed call: the
// classified domain error when the raw error is provider-domain, the raw
// error itself otherwise, nil when there was no error.
func failureError(rawErr error) error {
	if rawErr == nil {
		return nil
	}
	if ce := Classify(rawErr); ce != nil {
		return ce
	}
	return rawErr
}

// guidanceFrom extracts the display message from a resolved failure
// error, for feeding into the status classifiers.
func guidanceFrom(err error) string {
	if ce, ok := err.(*Error); ok {
		return ce.Message
	}
	return ""
}
