package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

// isInteractive reports whether stdin is a terminal.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// dispatchCmds holds one command per payload-free command kind.
var dispatchCmds = make(map[domain.CommandKind]*cobra.Command)

func init() {
	for _, kind := range domain.SimpleCommandKinds() {
		cmd := newDispatchCmd(kind)
		dispatchCmds[kind] = cmd
		rootCmd.AddCommand(cmd)
	}
}

func newDispatchCmd(kind domain.CommandKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s [-- args...]", kind),
		Short: kind.Description(),
		Long: fmt.Sprintf(`%s.

Every toolchain detected in the project directory runs, in the order cargo,
npm, poetry, django, docker. Arguments after -- are passed to each tool.`, kind.Description()),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatch(cmd, domain.Request{Kind: kind, Args: args})
		},
	}
	cmd.Flags().Bool("dry-run", false, "show which providers would run without running them")
	if kind == domain.CommandPublish {
		cmd.Long += "\n\nPublishing must be run from a terminal so registry credentials are\nentered interactively."
	}
	return cmd
}

// runDispatch sends req through the dispatcher and prints the outcome.
func runDispatch(cmd *cobra.Command, req domain.Request) error {
	s, err := loadServices()
	if err != nil {
		return err
	}
	if s.Dispatcher == nil {
		return errors.New("dispatcher not configured")
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		return runPlan(cmd, s, req)
	}

	if req.Kind == domain.CommandPublish && !isInteractive() {
		return withExitCode(fmt.Errorf("%w: publish must be run from a terminal", domain.ErrNotInteractive))
	}

	report, err := s.Dispatcher.Dispatch(cmd.Context(), req)
	if report.Handled() {
		cmd.Println(theme.Report(report))
	}
	return withExitCode(err)
}

func runPlan(cmd *cobra.Command, s *Services, req domain.Request) error {
	providers, err := s.Dispatcher.Plan(cmd.Context(), req)
	if err != nil {
		return withExitCode(err)
	}
	cmd.Println(theme.Plan(req, providers))
	if len(providers) == 0 {
		return withExitCode(fmt.Errorf("%w for %q", domain.ErrNoProviderMatched, req.String()))
	}
	return nil
}
