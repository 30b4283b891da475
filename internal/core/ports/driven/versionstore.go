package driven

import "github.com/custodia-labs/st-cli/internal/core/domain"

// VersionStore persists the VersionState document.
// Implementations do not lock: st is a single-invocation CLI and concurrent
// bumps of the same project may lose an update.
type VersionStore interface {
	// Load reads the persisted state.
	// Returns an error satisfying errors.Is(err, fs.ErrNotExist) when absent and
	// one wrapping domain.ErrStateCorrupt when the file cannot be parsed.
	Load() (*domain.VersionState, error)

	// Save overwrites the persisted state.
	Save(state *domain.VersionState) error

	// Path returns the state file location.
	Path() string
}
