// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Provider: One ecosystem adapter (cargo, npm, poetry, django, docker)
//   - CommandRunner: Spawns and blocks on external tools
//   - Probe: Filesystem and PATH inspection
//   - ManifestReader: Reads project identity from manifest files
//   - VersionStore: version.json persistence
//   - ConfigStore: Project configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ChangeNotifier: Filesystem change events. Without it, watch is disabled.
//   - VersionSource: Implemented by providers that report a version for bump.
//   - Diagnoser: Implemented by providers that explain why they did not match.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or provider package
package driven
