// Package cli provides the cobra command tree for st.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/st-cli/internal/adapters/driving/styles"
	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driving"
	"github.com/custodia-labs/st-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Exit codes returned by Execute.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitNoProvider  = 2
	ExitToolMissing = 127
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// withExitCode wraps err with the exit code its cause maps to.
func withExitCode(err error) error {
	if err == nil {
		return nil
	}
	code := ExitFailure
	switch {
	case errors.Is(err, domain.ErrToolMissing):
		code = ExitToolMissing
	case errors.Is(err, domain.ErrNoProviderMatched):
		code = ExitNoProvider
	}
	return &ExitError{Code: code, Err: err}
}

// DjangoCommands runs Django management commands.
type DjangoCommands interface {
	CollectStatic(ctx context.Context) error
	DumpData(ctx context.Context) error
	LoadData(ctx context.Context) error
}

// Services are the driving ports the commands use.
type Services struct {
	Dispatcher driving.Dispatcher
	Versions   driving.VersionService
	Settings   driving.SettingsService
	Watch      driving.WatchService
	Django     DjangoCommands
}

// Options configure how services are built for one invocation.
type Options struct {
	// Dir is the absolute project directory.
	Dir string
	// ConfigPath is the absolute path of the project config file.
	ConfigPath string
	// ChildStdin and ChildStdout replace the delegated tools' streams.
	// Nil inherits the process's own.
	ChildStdin  io.Reader
	ChildStdout io.Writer
	// OnEvent receives dispatch progress.
	OnEvent func(domain.DispatchEvent)
	// Interactive reports whether a person is at the terminal. Nil means
	// never, which refuses publish.
	Interactive func() bool
}

// Builder wires services for resolved options.
type Builder func(Options) (*Services, error)

// envConfig holds environment overrides. Flags win over these.
type envConfig struct {
	Verbose    bool   `env:"ST_VERBOSE"`
	ProjectDir string `env:"ST_PROJECT_DIR"`
	ConfigFile string `env:"ST_CONFIG"`
}

var (
	services *Services
	builder  Builder

	flagDir     string
	flagConfig  string
	flagVerbose bool

	envCfg envConfig
	theme  = styles.DefaultStyles()
)

var rootCmd = &cobra.Command{
	Use:   "st",
	Short: "One command line for every project toolchain",
	Long: `st runs a logical command (build, test, lint, ...) against the current
project and delegates it to every toolchain that applies: cargo, npm,
poetry, django and docker.

A directory holding several ecosystems runs all of them, in that order.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: configure,
}

// SetBuilder sets how services are wired on first use.
func SetBuilder(b Builder) {
	builder = b
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "C", "", "project directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: <dir>/"+domain.DefaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "show delegated commands and diagnostics")
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, "Error: ") {
		msg = "Error: " + msg
	}
	fmt.Fprintln(rootCmd.ErrOrStderr(), theme.Error.Render(msg))

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

func configure(cmd *cobra.Command, _ []string) error {
	envCfg = envConfig{}
	if err := env.Parse(&envCfg); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	verbose := envCfg.Verbose
	if cmd.Flags().Changed("verbose") {
		verbose = flagVerbose
	}
	logger.SetVerbose(verbose)
	return nil
}

// resolveOptions applies flags over environment over defaults.
func resolveOptions() (Options, error) {
	dir := envCfg.ProjectDir
	if flagDir != "" {
		dir = flagDir
	}
	if dir == "" {
		dir = "."
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return Options{}, fmt.Errorf("resolving project directory: %w", err)
	}

	config := envCfg.ConfigFile
	if flagConfig != "" {
		config = flagConfig
	}
	if config == "" {
		config = filepath.Join(absDir, domain.DefaultConfigFile)
	}
	absConfig, err := filepath.Abs(config)
	if err != nil {
		return Options{}, fmt.Errorf("resolving config path: %w", err)
	}

	return Options{
		Dir:         absDir,
		ConfigPath:  absConfig,
		OnEvent:     printEvent,
		Interactive: func() bool { return isInteractive() },
	}, nil
}

// loadServices returns the configured services, building them on first use.
func loadServices(adjust ...func(*Options)) (*Services, error) {
	if services != nil {
		return services, nil
	}
	if builder == nil {
		return nil, errors.New("services not configured")
	}

	opts, err := resolveOptions()
	if err != nil {
		return nil, err
	}
	for _, fn := range adjust {
		fn(&opts)
	}

	s, err := builder(opts)
	if err != nil {
		return nil, err
	}
	services = s
	return services, nil
}

func printEvent(ev domain.DispatchEvent) {
	if line := theme.Event(ev); line != "" {
		fmt.Fprintln(rootCmd.OutOrStderr(), line)
	}
}
