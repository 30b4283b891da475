package driving

import "github.com/custodia-labs/st-cli/internal/core/domain"

// VersionService owns the version bump state machine.
type VersionService interface {
	// Bump advances env to version and persists the result.
	// A missing or unreadable state file is replaced by an empty state with a
	// warning; only a failed write is returned as an error.
	Bump(env domain.DockerEnv, version string) (*domain.VersionState, error)

	// State returns the persisted state, or an empty state if none is readable.
	State() *domain.VersionState

	// Path returns the state file location.
	Path() string
}
