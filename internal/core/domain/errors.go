package domain

import "errors"

// Domain errors represent dispatch and state failures.
// These are distinct from the exit codes the CLI maps them to.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Dispatch Errors.

	// ErrNoProviderMatched indicates no registered provider supports the command.
	// Fatal for the whole invocation.
	ErrNoProviderMatched = errors.New("no provider matched")

	// ErrToolMissing indicates a required executable cannot be resolved.
	// Fatal: the fan-out stops at the provider that hit it.
	ErrToolMissing = errors.New("external tool missing")

	// ErrToolFailed indicates a delegated child process exited non-zero.
	// Reported per provider; remaining providers still run.
	ErrToolFailed = errors.New("external tool failed")

	// ErrNotInteractive indicates a command that must run from a terminal was not.
	ErrNotInteractive = errors.New("not an interactive terminal")

	// State Errors.

	// ErrStateCorrupt indicates the persisted version state could not be parsed.
	// Recovered by substituting an empty VersionState.
	ErrStateCorrupt = errors.New("version state corrupt")
)
