package status

import (
	"errors"
	"fmt"

	"github.com/3leaps/cirrus/pkg/provider"
)

// ErrUnknownStatusCode indicates the provider returned a status code
// outside its contract. The provider enumerations are closed, so this is
// a logic fault (version skew at the boundary), not a retryable runtime
// condition.
var ErrUnknownStatusCode = errors.New("unknown status code")

// AccountState is the classified state of the user's cloud-account
// credentials.
type AccountState string

const (
	AccountCouldNotDetermine AccountState = "could-not-determine"
	AccountAvailable         AccountState = "available"
	AccountRestricted        AccountState = "restricted"
	AccountNoAccount         AccountState = "no-account"
)

// Fixed account guidance strings.
const (
	// MsgAccountUnknown is the fallback when the account state could not
	// be determined and no more specific detail is available.
	MsgAccountUnknown = "Couldn't reach your account details. Check your connection and try again."

	MsgAccountRestricted = "Your cloud account access is restricted by parental controls or a device profile."
	MsgAccountMissing    = "No cloud account is signed in on this device. Sign in in system settings and try again."
)

// Account is a classified account status plus user-facing guidance.
// It is recomputed on every query and never cached.
type Account struct {
	// State is the classified account state.
	State AccountState

	// Guidance is ready-to-display advice, empty when State is
	// AccountAvailable.
	Guidance string
}

// ClassifyAccount maps a raw account-status code to an Account.
//
// detail, when non-empty, fills the guidance for the could-not-determine
// state; it is normally sourced from classifying the same call's error.
// The restricted and no-account states always use their fixed guidance
// regardless of detail.
func ClassifyAccount(code provider.AccountStatusCode, detail string) (Account, error) {
	switch code {
	case provider.AccountCouldNotDetermine:
		if detail == "" {
			detail = MsgAccountUnknown
		}
		return Account{State: AccountCouldNotDetermine, Guidance: detail}, nil
	case provider.AccountAvailable:
		return Account{State: AccountAvailable}, nil
	case provider.AccountRestricted:
		return Account{State: AccountRestricted, Guidance: MsgAccountRestricted}, nil
	case provider.AccountNoAccount:
		return Account{State: AccountNoAccount, Guidance: MsgAccountMissing}, nil
	default:
		return Account{}, fmt.Errorf("%w: account status %q", ErrUnknownStatusCode, code)
	}
}
