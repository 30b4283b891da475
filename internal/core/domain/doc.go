// Package domain defines the core entities for st.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CommandKind: One logical command (build, test, bump, docker, ...)
//   - Request: A command kind plus its payload (args, environment, docker action)
//   - DockerEnv: The deployment environment selector (dev, test, prod)
//   - VersionState: Persisted per-environment (old, new) version pairs
//   - Manifest: Project identity read from an ecosystem manifest
//   - DispatchReport: The per-provider outcome of one dispatch
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
