package driven

import (
	"context"
	"strings"
)

// Invocation describes one external tool call.
// Dir and Env are applied to the child process only.
type Invocation struct {
	// Tool is the executable name, resolved on PATH.
	Tool string
	// Args are passed verbatim.
	Args []string
	// Dir is the child's working directory. Empty inherits the current one.
	Dir string
	// Env is merged over the parent environment for the child.
	Env map[string]string
	// Quiet discards the child's output. Used by inspection checks.
	Quiet bool
}

// String returns the command line for messages.
func (i Invocation) String() string {
	if len(i.Args) == 0 {
		return i.Tool
	}
	return i.Tool + " " + strings.Join(i.Args, " ")
}

// CommandRunner spawns external tools.
type CommandRunner interface {
	// Run resolves inv.Tool and blocks until it exits.
	// Returns an error wrapping domain.ErrToolMissing if the tool cannot be
	// resolved, or domain.ErrToolFailed if it exits non-zero.
	Run(ctx context.Context, inv Invocation) error

	// LookPath resolves a tool name to an absolute path.
	LookPath(name string) (string, error)
}
