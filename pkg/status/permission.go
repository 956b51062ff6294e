package status

import (
	"fmt"

	"github.com/3leaps/cirrus/pkg/provider"
)

// PermissionState is the classified grant state of one application
// permission, independent of account status.
type PermissionState string

const (
	PermissionInitial          PermissionState = "initial"
	PermissionCouldNotComplete PermissionState = "could-not-complete"
	PermissionDenied           PermissionState = "denied"
	PermissionGranted          PermissionState = "granted"
)

// Fixed permission guidance strings.
const (
	// MsgPermissionUnknown is the fallback when the permission check
	// could not complete and no more specific detail is available.
	MsgPermissionUnknown = "Couldn't check your permission. Check your connection and try again."

	MsgPermissionDenied = "Discovery permission was denied. You can allow it later in settings."
)

// Permission is a classified permission status plus user-facing
// guidance. Recomputed on every query, never cached.
type Permission struct {
	// State is the classified grant state.
	State PermissionState

	// Guidance is ready-to-display advice, empty for the initial and
	// granted states.
	Guidance string
}

// ClassifyPermission maps a raw permission-status code to a Permission.
//
// detail fills the guidance for the could-not-complete state, falling
// back to a fixed string; the denied state always uses its fixed
// guidance.
func ClassifyPermission(code provider.PermissionStatusCode, detail string) (Permission, error) {
	switch code {
	case provider.PermissionInitial:
		return Permission{State: PermissionInitial}, nil
	case provider.PermissionCouldNotComplete:
		if detail == "" {
			detail = MsgPermissionUnknown
		}
		return Permission{State: PermissionCouldNotComplete, Guidance: detail}, nil
	case provider.PermissionDenied:
		return Permission{State: PermissionDenied, Guidance: MsgPermissionDenied}, nil
	case provider.PermissionGranted:
		return Permission{State: PermissionGranted}, nil
	default:
		return Permission{}, fmt.Errorf("%w: permission status %q", ErrUnknownStatusCode, code)
	}
}
