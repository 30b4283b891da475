// Package driving defines what the CLI and the MCP server call into:
// dispatch, version state, settings and watch.
//
// Implementations live in internal/core/services.
package driving
