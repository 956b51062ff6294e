package handlers

import (
	"net/http"

	"github.com/3leaps/cirrus/pkg/provider"
	"github.com/3leaps/cirrus/pkg/status"
)

// AccountStatusResponse is the JSON body for account-status queries.
type AccountStatusResponse struct {
	State    string `json:"state"`
	Guidance string `json:"guidance,omitempty"`
}

// PermissionResponse is the JSON body for permission negotiations.
type PermissionResponse struct {
	Permission string `json:"permission"`
	State      string `json:"state"`
	Guidance   string `json:"guidance,omitempty"`
}

// AccountStatus serves GET /v1/account-status against the given
// container.
func AccountStatus(c provider.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acct, err := status.CheckAccount(r.Context(), c).Get()
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, AccountStatusResponse{
			State:    string(acct.State),
			Guidance: acct.Guidance,
		})
	}
}

// Discoverability serves POST /v1/permissions/user-discoverability.
// POST because a first-time call triggers the permission request.
func Discoverability(c provider.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		perm, err := status.RequestDiscoverability(r.Context(), c).Get()
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, PermissionResponse{
			Permission: provider.PermissionUserDiscoverability.String(),
			State:      string(perm.State),
			Guidance:   perm.Guidance,
		})
	}
}
