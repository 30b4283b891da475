package memory

import (
	"io/fs"
	"sync"

	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
)

// Ensure VersionStore implements the interface.
var _ driven.VersionStore = (*VersionStore)(nil)

// VersionStore is an in-memory implementation of driven.VersionStore for testing.
type VersionStore struct {
	mu      sync.Mutex
	state   *domain.VersionState
	loadErr error
	saveErr error
	saves   int
}

// NewVersionStore creates a store holding state. A nil state behaves like a
// missing file.
func NewVersionStore(state *domain.VersionState) *VersionStore {
	return &VersionStore{state: state}
}

// FailLoad makes every Load return err.
func (s *VersionStore) FailLoad(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// FailSave makes every Save return err.
func (s *VersionStore) FailSave(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Load returns a copy of the stored state.
func (s *VersionStore) Load() (*domain.VersionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.state == nil {
		return nil, fs.ErrNotExist
	}
	state := *s.state
	return &state, nil
}

// Save replaces the stored state.
func (s *VersionStore) Save(state *domain.VersionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	saved := *state
	s.state = &saved
	s.loadErr = nil
	s.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (s *VersionStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Path returns the state file path.
func (s *VersionStore) Path() string {
	return ":memory:"
}
