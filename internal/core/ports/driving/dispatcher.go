package driving

import (
	"context"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

// Dispatcher routes one logical command to every applicable provider.
type Dispatcher interface {
	// Dispatch queries every registered provider in registration order and runs
	// the action of each one that supports req.
	// Returns domain.ErrNoProviderMatched if none did, an aggregate error wrapping
	// domain.ErrToolFailed if any handled provider failed, and stops at the first
	// error wrapping domain.ErrToolMissing.
	Dispatch(ctx context.Context, req domain.Request) (*domain.DispatchReport, error)

	// Plan returns the providers that would handle req without running them.
	Plan(ctx context.Context, req domain.Request) ([]string, error)

	// Providers returns the registered provider names in registration order.
	Providers() []string
}
