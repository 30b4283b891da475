package mcp

import (
	"github.com/custodia-labs/st-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Dispatcher routes commands to providers.
	Dispatcher driving.Dispatcher

	// Versions exposes tracked versions. Optional.
	Versions driving.VersionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Dispatcher == nil {
		return ErrMissingDispatcher
	}
	return nil
}
