package services

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/hashicorp/go-version"

	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
	"github.com/custodia-labs/st-cli/internal/core/ports/driving"
	"github.com/custodia-labs/st-cli/internal/logger"
)

// Ensure VersionService implements the interface.
var _ driving.VersionService = (*VersionService)(nil)

// VersionService advances per-environment version pairs.
//
// Load, transition and save are not atomic against concurrent invocations:
// there is no file lock, so two simultaneous bumps of one project may lose
// an update. st runs one command per process for one user.
type VersionService struct {
	store driven.VersionStore

	mu     sync.Mutex
	warned string
}

// NewVersionService creates a version service backed by store.
func NewVersionService(store driven.VersionStore) *VersionService {
	return &VersionService{store: store}
}

// Path returns the state file location.
func (s *VersionService) Path() string {
	return s.store.Path()
}

// State loads the persisted state, falling back to an empty state.
// An unreadable or corrupt file is discarded with a warning, logged once
// per distinct failure.
func (s *VersionService) State() *domain.VersionState {
	state, err := s.store.Load()
	switch {
	case err == nil:
		return state
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("no version state at %s, starting empty", s.store.Path())
	default:
		s.warnOnce(fmt.Sprintf("discarding version history in %s: %v", s.store.Path(), err))
	}
	return domain.DefaultVersionState()
}

func (s *VersionService) warnOnce(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.warned == msg {
		return
	}
	s.warned = msg
	logger.Warn("%s", msg)
}

// Bump advances env to v and overwrites the persisted state.
func (s *VersionService) Bump(env domain.DockerEnv, v string) (*domain.VersionState, error) {
	if !env.IsValid() {
		return nil, fmt.Errorf("%w: unknown environment %q", domain.ErrInvalidInput, env)
	}
	if v == "" {
		return nil, fmt.Errorf("%w: empty version", domain.ErrInvalidInput)
	}

	prev := s.State()
	checkTransition(env, prev.Pair(env).New, v)

	next := prev.Bump(env, v)
	if err := s.store.Save(next); err != nil {
		return nil, fmt.Errorf("save version state: %w", err)
	}

	pair := next.Pair(env)
	logger.Info("bumped %s: %q -> %q", env, pair.Old, pair.New)
	return next, nil
}

// checkTransition warns about suspicious bumps. It never blocks one.
func checkTransition(env domain.DockerEnv, current, next string) {
	nextV, err := version.NewVersion(next)
	if err != nil {
		logger.Warn("%s: %q is not a valid version: %v", env, next, err)
		return
	}
	if current == "" {
		return
	}
	currentV, err := version.NewVersion(current)
	if err != nil {
		return
	}
	switch {
	case nextV.LessThan(currentV):
		logger.Warn("%s: version goes backwards from %s to %s", env, current, next)
	case nextV.Equal(currentV):
		logger.Info("%s: version unchanged at %s", env, next)
	}
}
