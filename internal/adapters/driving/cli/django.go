package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var djangoCmd = &cobra.Command{
	Use:   "django",
	Short: "Django management commands",
	Long: `Run Django management commands through poetry.

The project directory must hold a pyproject.toml with django installed and
a <src>/<src>/wsgi.py, where <src> is the project name with - replaced by _.`,
}

var djangoCollectStaticCmd = &cobra.Command{
	Use:   "collectstatic",
	Short: "Collect static files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDjango(cmd, DjangoCommands.CollectStatic)
	},
}

var djangoDumpDataCmd = &cobra.Command{
	Use:   "dumpdata",
	Short: "Dump the database to dump.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDjango(cmd, DjangoCommands.DumpData)
	},
}

var djangoLoadDataCmd = &cobra.Command{
	Use:   "loaddata",
	Short: "Load dump.json into the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDjango(cmd, DjangoCommands.LoadData)
	},
}

func init() {
	djangoCmd.AddCommand(djangoCollectStaticCmd)
	djangoCmd.AddCommand(djangoDumpDataCmd)
	djangoCmd.AddCommand(djangoLoadDataCmd)
	rootCmd.AddCommand(djangoCmd)
}

func runDjango(cmd *cobra.Command, run func(DjangoCommands, context.Context) error) error {
	s, err := loadServices()
	if err != nil {
		return err
	}
	if s.Django == nil {
		return errors.New("django commands not configured")
	}
	return withExitCode(run(s.Django, cmd.Context()))
}
