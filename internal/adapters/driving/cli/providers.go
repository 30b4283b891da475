package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

var providersCmd = &cobra.Command{
	Use:   "providers [command]",
	Short: "Show which providers apply to the project",
	Long: `Show, for the project directory, which registered providers support each
command. Only detection runs; no tool is invoked.

bump and docker are checked against the environment given by --env, and
docker against its build action.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProviders,
}

func init() {
	providersCmd.Flags().String("env", domain.EnvDev.String(), "environment for bump and docker")
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	s, err := loadServices()
	if err != nil {
		return err
	}
	if s.Dispatcher == nil {
		return errors.New("dispatcher not configured")
	}

	envFlag, _ := cmd.Flags().GetString("env")
	env, err := domain.ParseDockerEnv(envFlag)
	if err != nil {
		return withExitCode(err)
	}

	if len(args) == 1 {
		kind, err := domain.ParseCommandKind(args[0])
		if err != nil {
			return withExitCode(err)
		}
		return runPlan(cmd, s, matrixRequest(kind, env))
	}

	kinds := domain.AllCommandKinds()
	supported := make(map[domain.CommandKind][]string, len(kinds))
	for _, kind := range kinds {
		names, err := s.Dispatcher.Plan(cmd.Context(), matrixRequest(kind, env))
		if err != nil {
			return withExitCode(err)
		}
		supported[kind] = names
	}
	cmd.Println(theme.Matrix(kinds, s.Dispatcher.Providers(), supported))
	return nil
}

// matrixRequest builds a valid request for kind, filling any payload.
func matrixRequest(kind domain.CommandKind, env domain.DockerEnv) domain.Request {
	req := domain.Request{Kind: kind}
	switch kind {
	case domain.CommandBump:
		req.Env = env
	case domain.CommandDocker:
		req.Env = env
		req.Action = domain.DockerBuild
	}
	return req
}
