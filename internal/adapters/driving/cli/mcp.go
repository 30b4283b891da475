package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/st-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can run project
commands.

Tools:
  dispatch  run a command against the project
  plan      list the providers a command would run

Resources:
  st://providers  registered providers
  st://versions   stored version pairs

By default, the server communicates over stdio using JSON-RPC. Output of the
delegated tools goes to stderr so it never mixes with the protocol stream.

Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  st mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  st mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	s, err := loadServices(func(o *Options) {
		o.ChildStdout = os.Stderr
		o.ChildStdin = strings.NewReader("")
		o.Interactive = nil
	})
	if err != nil {
		return err
	}

	ports := &mcp.Ports{
		Dispatcher: s.Dispatcher,
		Versions:   s.Versions,
	}

	server, err := mcp.NewServer(ports, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
