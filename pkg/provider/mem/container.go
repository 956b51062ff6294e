// Package mem implements an in-memory provider container for tests and
// local development.
//
// Responses are scripted through the exported fields; the container
// additionally records call counts so tests can assert on the
// negotiation flow.
package mem

import (
	"context"
	"sync"

	"github.com/3leaps/cirrus/pkg/provider"
)

// Container is a scripted in-memory provider.Container.
//
// The zero value reports an available account with an undecided
// discoverability permission that grants on request; override fields to
// script other outcomes. Safe for concurrent use.
type Container struct {
	mu sync.Mutex

	// AccountCode and AccountErr script AccountStatus responses.
	AccountCode provider.AccountStatusCode
	AccountErr  error

	// PermissionCode and PermissionErr script PermissionStatus
	// responses.
	PermissionCode provider.PermissionStatusCode
	PermissionErr  error

	// RequestCode and RequestErr script RequestPermission responses.
	// A successful request also updates PermissionCode, mirroring a
	// real provider's persistence of the decision.
	RequestCode provider.PermissionStatusCode
	RequestErr  error

	accountCalls    int
	permissionCalls int
	requestCalls    int
}

var _ provider.Container = (*Container)(nil)

// New returns a container scripted for the happy path: available
// account, undecided permission, grant on request.
func New() *Container {
	return &Container{
		AccountCode:    provider.AccountAvailable,
		PermissionCode: provider.PermissionInitial,
		RequestCode:    provider.PermissionGranted,
	}
}

// AccountStatus returns the scripted account response.
func (c *Container) AccountStatus(ctx context.Context) (provider.AccountStatusCode, error) {
	if err := ctx.Err(); err != nil {
		return provider.AccountCouldNotDetermine, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.accountCalls++
	return c.AccountCode, c.AccountErr
}

// PermissionStatus returns the scripted permission response.
func (c *Container) PermissionStatus(ctx context.Context, perm provider.Permission) (provider.PermissionStatusCode, error) {
	if err := ctx.Err(); err != nil {
		return provider.PermissionCouldNotComplete, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.permissionCalls++
	return c.PermissionCode, c.PermissionErr
}

// RequestPermission returns the scripted request response and, on
// success, persists it as the new permission state.
func (c *Container) RequestPermission(ctx context.Context, perm provider.Permission) (provider.PermissionStatusCode, error) {
	if err := ctx.Err(); err != nil {
		return provider.PermissionCouldNotComplete, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestCalls++
	if c.RequestErr == nil {
		c.PermissionCode = c.RequestCode
	}
	return c.RequestCode, c.RequestErr
}

// AccountCalls reports how many times AccountStatus ran.
func (c *Container) AccountCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accountCalls
}

// PermissionCalls reports how many times PermissionStatus ran.
func (c *Container) PermissionCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.permissionCalls
}

// RequestCalls reports how many times RequestPermission ran.
func (c *Container) RequestCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requestCalls
}
