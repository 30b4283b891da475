// Package mcp provides an MCP (Model Context Protocol) server adapter for st.
// It lets AI assistants plan and run project commands through the dispatcher.
package mcp

import "errors"

// ErrMissingDispatcher is returned when the dispatcher is not provided.
var ErrMissingDispatcher = errors.New("mcp: dispatcher is required")
