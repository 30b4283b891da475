package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
	"github.com/custodia-labs/st-cli/internal/core/ports/driving"
	"github.com/custodia-labs/st-cli/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// ErrWatchUnavailable is returned when no change notifier is configured.
var ErrWatchUnavailable = errors.New("watch unavailable: no change notifier")

const (
	// DefaultSettle is how long the tree must be quiet before re-dispatching.
	DefaultSettle = 300 * time.Millisecond

	// DefaultMinInterval is the minimum time between two dispatches.
	DefaultMinInterval = time.Second
)

// WatchService re-dispatches a command after filesystem changes.
type WatchService struct {
	dispatcher driving.Dispatcher
	notifier   driven.ChangeNotifier
	limiter    *rate.Limiter
	settle     time.Duration
}

// NewWatchService creates a watch service.
// minInterval bounds how often dispatches may start; settle is the quiet
// period that batches a burst of changes into one dispatch.
func NewWatchService(
	dispatcher driving.Dispatcher,
	notifier driven.ChangeNotifier,
	minInterval time.Duration,
	settle time.Duration,
) *WatchService {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &WatchService{
		dispatcher: dispatcher,
		notifier:   notifier,
		limiter:    rate.NewLimiter(limit, 1),
		settle:     settle,
	}
}

// Watch dispatches req, then again after every settled batch of changes.
// Dispatch failures are logged and watching continues, except when no
// provider supports req at all. Commands that are not repeatable are
// refused before anything runs.
func (s *WatchService) Watch(ctx context.Context, req domain.Request) error {
	if !req.Kind.IsRepeatable() {
		return fmt.Errorf("%w: %s cannot be watched", domain.ErrInvalidInput, req.Kind)
	}
	if s.notifier == nil {
		return ErrWatchUnavailable
	}

	changes, err := s.notifier.Changes(ctx)
	if err != nil {
		return err
	}

	if err := s.dispatch(ctx, req); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Info("change detected: %s", path)
			if !s.settleChanges(ctx, changes) {
				return nil
			}
			if err := s.limiter.Wait(ctx); err != nil {
				return nil
			}
			if err := s.dispatch(ctx, req); err != nil {
				return err
			}
		}
	}
}

// dispatch runs one round. Only fatal routing errors are returned.
func (s *WatchService) dispatch(ctx context.Context, req domain.Request) error {
	_, err := s.dispatcher.Dispatch(ctx, req)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNoProviderMatched), errors.Is(err, domain.ErrInvalidInput):
		return err
	default:
		logger.Warn("%s failed, waiting for changes:\n%v", req.String(), err)
		return nil
	}
}

// settleChanges absorbs further events until the tree has been quiet for the
// settle period. Returns false if watching should stop.
func (s *WatchService) settleChanges(ctx context.Context, changes <-chan string) bool {
	if s.settle <= 0 {
		return true
	}
	timer := time.NewTimer(s.settle)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case _, ok := <-changes:
			if !ok {
				return false
			}
			timer.Reset(s.settle)
		case <-timer.C:
			return true
		}
	}
}
