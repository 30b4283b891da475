package domain

import "fmt"

// CommandKind identifies one logical command routed to providers.
type CommandKind string

// Available command kinds.
const (
	CommandBuild    CommandKind = "build"
	CommandClean    CommandKind = "clean"
	CommandFormat   CommandKind = "format"
	CommandLint     CommandKind = "lint"
	CommandOutdated CommandKind = "outdated"
	CommandRun      CommandKind = "run"
	CommandUpdate   CommandKind = "update"
	CommandTest     CommandKind = "test"
	CommandSync     CommandKind = "sync"
	CommandLock     CommandKind = "lock"
	CommandInstall  CommandKind = "install"
	CommandPublish  CommandKind = "publish"

	// CommandBump carries a DockerEnv payload.
	CommandBump CommandKind = "bump"

	// CommandDocker carries a DockerAction and DockerEnv payload.
	CommandDocker CommandKind = "docker"
)

// AllCommandKinds returns every command kind in help order.
func AllCommandKinds() []CommandKind {
	return []CommandKind{
		CommandBuild,
		CommandClean,
		CommandFormat,
		CommandLint,
		CommandOutdated,
		CommandRun,
		CommandUpdate,
		CommandTest,
		CommandSync,
		CommandLock,
		CommandInstall,
		CommandPublish,
		CommandBump,
		CommandDocker,
	}
}

// SimpleCommandKinds returns the command kinds that take no payload.
func SimpleCommandKinds() []CommandKind {
	kinds := AllCommandKinds()
	return kinds[:len(kinds)-2]
}

// IsValid returns true if the command kind is recognised.
func (k CommandKind) IsValid() bool {
	for _, kind := range AllCommandKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// IsParametrized returns true if the command needs a payload.
func (k CommandKind) IsParametrized() bool {
	return k == CommandBump || k == CommandDocker
}

// IsRepeatable returns false for commands that must not re-run on file
// changes: they either rewrite files in the project or have effects outside
// it that must not repeat.
func (k CommandKind) IsRepeatable() bool {
	switch k {
	case CommandBump, CommandPublish, CommandLock, CommandUpdate:
		return false
	default:
		return k.IsValid()
	}
}

// String returns the string representation.
func (k CommandKind) String() string {
	return string(k)
}

// Description returns the one-line semantics shown in help output.
func (k CommandKind) Description() string {
	switch k {
	case CommandBuild:
		return "Compile or package the detected project(s)"
	case CommandClean:
		return "Remove build and cache artifacts"
	case CommandFormat:
		return "Run the ecosystem's formatter"
	case CommandLint:
		return "Run the ecosystem's static checker"
	case CommandOutdated:
		return "Report stale dependencies"
	case CommandRun:
		return "Start or execute the project"
	case CommandUpdate:
		return "Upgrade dependencies in place"
	case CommandTest:
		return "Run the test suite"
	case CommandSync:
		return "Synchronise dependency state"
	case CommandLock:
		return "Regenerate or export a dependency lock artifact"
	case CommandInstall:
		return "Install the built artifact locally"
	case CommandPublish:
		return "Publish to a package registry"
	case CommandBump:
		return "Advance the stored version pair for one environment"
	case CommandDocker:
		return "Manage a containerised deployment"
	default:
		return "Unknown"
	}
}

// ParseCommandKind converts a string to a CommandKind.
func ParseCommandKind(s string) (CommandKind, error) {
	k := CommandKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: unknown command %q", ErrInvalidInput, s)
	}
	return k, nil
}

// Request is one logical command plus its payload.
type Request struct {
	// Kind selects the capability every provider is queried for.
	Kind CommandKind

	// Args are passed through to the delegated tool.
	Args []string

	// Env is the target environment for bump and docker.
	Env DockerEnv

	// Action is the docker lifecycle operation for docker.
	Action DockerAction
}

// Validate checks that parametrized commands carry their payload.
func (r Request) Validate() error {
	if !r.Kind.IsValid() {
		return fmt.Errorf("%w: unknown command %q", ErrInvalidInput, r.Kind)
	}
	switch r.Kind {
	case CommandBump:
		if !r.Env.IsValid() {
			return fmt.Errorf("%w: bump requires an environment", ErrInvalidInput)
		}
	case CommandDocker:
		if !r.Env.IsValid() {
			return fmt.Errorf("%w: docker requires an environment", ErrInvalidInput)
		}
		if !r.Action.IsValid() {
			return fmt.Errorf("%w: docker requires an action", ErrInvalidInput)
		}
	}
	return nil
}

// String returns a human-readable form such as "docker upgrade prod".
func (r Request) String() string {
	switch r.Kind {
	case CommandBump:
		return fmt.Sprintf("%s %s", r.Kind, r.Env)
	case CommandDocker:
		return fmt.Sprintf("%s %s %s", r.Kind, r.Action, r.Env)
	default:
		return r.Kind.String()
	}
}
