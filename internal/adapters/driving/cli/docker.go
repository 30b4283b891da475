package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

var dockerCmd = &cobra.Command{
	Use:   "docker <build|run|stop|restart|upgrade> <env>",
	Short: domain.CommandDocker.Description(),
	Long: `Manage the project's container for one environment.

  build    build docker/<env>.Dockerfile tagged <project>_<env>:<version>
  run      start the tagged image detached
  stop     stop the running container
  restart  stop, then run
  upgrade  build the new version, stop the old one, run the new one

Versions come from "st bump <env>".`,
	Args: cobra.ExactArgs(2),
	RunE: runDocker,
}

func init() {
	dockerCmd.Flags().Bool("dry-run", false, "show which providers would run without running them")
	rootCmd.AddCommand(dockerCmd)
}

func runDocker(cmd *cobra.Command, args []string) error {
	action, err := domain.ParseDockerAction(args[0])
	if err != nil {
		return withExitCode(err)
	}
	env, err := domain.ParseDockerEnv(args[1])
	if err != nil {
		return withExitCode(err)
	}
	return runDispatch(cmd, domain.Request{Kind: domain.CommandDocker, Action: action, Env: env})
}
