package driven

import (
	"context"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

// Provider is a named adapter for one ecosystem.
// For every command kind it exposes a capability predicate and an action.
// Kinds a provider does not implement are unsupported and their action is a no-op.
type Provider interface {
	// Name returns the provider identifier (e.g. "cargo").
	Name() string

	// Supports reports whether the provider applies to req in its project.
	// It must only inspect (manifest presence, tool presence, marker files),
	// never mutate, and must be safe to call repeatedly.
	Supports(ctx context.Context, req domain.Request) bool

	// Execute performs the delegation for req. It blocks until any child
	// process exits.
	Execute(ctx context.Context, req domain.Request) error
}

// VersionSource is implemented by providers that report the project version
// for bump. The dispatcher records one transition from all reports.
type VersionSource interface {
	// ManifestVersion returns the version declared by the provider's manifest.
	ManifestVersion(ctx context.Context) (string, error)
}

// Diagnoser is implemented by providers that can explain why they do not
// support a request. An empty hint means there is nothing to add.
type Diagnoser interface {
	Diagnose(ctx context.Context, req domain.Request) string
}
