package driving

import (
	"context"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

// WatchService re-dispatches a command whenever the project changes.
type WatchService interface {
	// Watch dispatches req once, then again after each batch of changes.
	// It blocks until ctx is cancelled.
	Watch(ctx context.Context, req domain.Request) error
}
