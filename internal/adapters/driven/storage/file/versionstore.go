// Package file persists version state as a JSON document on disk.
package file

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/moby/sys/atomicwriter"

	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
)

// Ensure VersionStore implements the interface.
var _ driven.VersionStore = (*VersionStore)(nil)

// VersionStore reads and overwrites a version.json file.
// Writes replace the file atomically; there is no locking between processes.
type VersionStore struct {
	path string
}

// NewVersionStore creates a store for the file at path.
func NewVersionStore(path string) *VersionStore {
	return &VersionStore{path: path}
}

// Load reads the state. A missing file returns an error matching
// fs.ErrNotExist; an unparsable one wraps domain.ErrStateCorrupt.
func (s *VersionStore) Load() (*domain.VersionState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	state := domain.DefaultVersionState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStateCorrupt, s.path, err)
	}
	return state, nil
}

// Save overwrites the file with pretty-printed JSON.
func (s *VersionStore) Save(state *domain.VersionState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return atomicwriter.WriteFile(s.path, data, 0o644)
}

// Path returns the state file path.
func (s *VersionStore) Path() string {
	return s.path
}
