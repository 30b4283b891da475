package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Show the stored version pair of each environment",
	Args:  cobra.NoArgs,
	RunE:  runVersions,
}

func init() {
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, _ []string) error {
	s, err := loadServices()
	if err != nil {
		return err
	}
	if s.Versions == nil {
		return errors.New("version service not configured")
	}

	cmd.Println(theme.Versions(s.Versions.State()))
	cmd.Println(theme.Muted.Render(s.Versions.Path()))
	return nil
}
