package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch <command> [args...]",
	Short: "Re-run a command whenever project files change",
	Long: `Run a command once, then again each time files in the project change.

Changes under .git, target, node_modules, dist, __pycache__ and .venv are
ignored, as are writes to the version file. A failing run is reported and
watching continues; a command no provider supports stops immediately.

bump, publish, lock and update cannot be watched.

Examples:
  st watch test
  st watch lint
  st watch docker restart dev`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	req, err := parseRequest(args)
	if err != nil {
		return withExitCode(err)
	}
	if !req.Kind.IsRepeatable() {
		return withExitCode(fmt.Errorf("%w: %s cannot be watched", domain.ErrInvalidInput, req.Kind))
	}

	s, err := loadServices()
	if err != nil {
		return err
	}
	if s.Watch == nil {
		return errors.New("watch service not configured")
	}

	cmd.Printf("Watching for changes, running %s (Ctrl+C to stop)\n", req)
	return withExitCode(s.Watch.Watch(cmd.Context(), req))
}

// parseRequest builds a request from a command line such as
// ["docker", "restart", "dev"] or ["test", "--nocapture"].
func parseRequest(args []string) (domain.Request, error) {
	if len(args) == 0 {
		return domain.Request{}, fmt.Errorf("%w: missing command", domain.ErrInvalidInput)
	}
	kind, err := domain.ParseCommandKind(args[0])
	if err != nil {
		return domain.Request{}, err
	}

	req := domain.Request{Kind: kind}
	rest := args[1:]
	switch kind {
	case domain.CommandBump:
		if len(rest) != 1 {
			return domain.Request{}, fmt.Errorf("%w: usage: bump <env>", domain.ErrInvalidInput)
		}
		if req.Env, err = domain.ParseDockerEnv(rest[0]); err != nil {
			return domain.Request{}, err
		}
	case domain.CommandDocker:
		if len(rest) != 2 {
			return domain.Request{}, fmt.Errorf("%w: usage: docker <action> <env>", domain.ErrInvalidInput)
		}
		if req.Action, err = domain.ParseDockerAction(rest[0]); err != nil {
			return domain.Request{}, err
		}
		if req.Env, err = domain.ParseDockerEnv(rest[1]); err != nil {
			return domain.Request{}, err
		}
	default:
		req.Args = rest
	}
	return req, nil
}
