package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

var bumpCmd = &cobra.Command{
	Use:   "bump <env>",
	Short: domain.CommandBump.Description(),
	Long: `Record the project's manifest version as the new version for one
environment (dev, test or prod). The previous new version becomes the old
one, which docker upgrade uses to stop the running container.

The version pairs are stored in version.json in the project directory.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: envNames(),
	RunE:      runBump,
}

func init() {
	bumpCmd.Flags().Bool("dry-run", false, "show which providers would run without running them")
	rootCmd.AddCommand(bumpCmd)
}

func runBump(cmd *cobra.Command, args []string) error {
	env, err := domain.ParseDockerEnv(args[0])
	if err != nil {
		return withExitCode(err)
	}
	return runDispatch(cmd, domain.Request{Kind: domain.CommandBump, Env: env})
}

func envNames() []string {
	envs := domain.AllDockerEnvs()
	names := make([]string, len(envs))
	for i, env := range envs {
		names[i] = env.String()
	}
	return names
}
