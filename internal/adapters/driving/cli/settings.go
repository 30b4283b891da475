package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage project settings",
	Long: `View and change the settings stored in the project's .st.toml.

Use subcommands to show the effective settings or change one key.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one settings key",
	Long: `Set one key in the project's .st.toml.

Available keys:
  providers.disabled   comma-separated provider names never queried
  version.file         version state file, relative to the project
  docker.project       project name used in image tags
  docker.run_args      extra arguments for docker run
  docker.build_args    extra arguments for docker build
  args.<command>       extra arguments appended to a command, e.g. args.test`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	s, err := loadServices()
	if err != nil {
		return err
	}
	if s.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Providers]")
	cmd.Printf("  Disabled: %s\n", joinOrNone(settings.DisabledProviders, ", "))
	cmd.Println()

	cmd.Println("[Version]")
	cmd.Printf("  File: %s\n", settings.VersionFile)
	cmd.Println()

	cmd.Println("[Docker]")
	project := settings.Docker.Project
	if project == "" {
		project = "(from manifest)"
	}
	cmd.Printf("  Project: %s\n", project)
	cmd.Printf("  Run args: %s\n", joinOrNone(settings.Docker.RunArgs, " "))
	cmd.Printf("  Build args: %s\n", joinOrNone(settings.Docker.BuildArgs, " "))
	cmd.Println()

	cmd.Println("[Args]")
	found := false
	for _, kind := range domain.AllCommandKinds() {
		if args := settings.ArgsFor(kind); len(args) > 0 {
			cmd.Printf("  %s: %s\n", kind, strings.Join(args, " "))
			found = true
		}
	}
	if !found {
		cmd.Println("  (none)")
	}
	cmd.Println()

	cmd.Printf("Config file: %s\n", s.Settings.Path())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	s, err := loadServices()
	if err != nil {
		return err
	}
	if s.Settings == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := s.Settings.Set(key, value); err != nil {
		return withExitCode(fmt.Errorf("failed to set %s: %w", key, err))
	}

	cmd.Printf("Set %s = %q\n", key, value)
	return nil
}

func joinOrNone(values []string, sep string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, sep)
}
