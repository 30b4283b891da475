package cli

import (
	"bytes"
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

// mockDispatcher implements driving.Dispatcher for testing.
type mockDispatcher struct {
	providers []string
	plans     map[domain.CommandKind][]string
	report    *domain.DispatchReport
	err       error

	dispatched []domain.Request
	planned    []domain.Request
}

func (m *mockDispatcher) Dispatch(_ context.Context, req domain.Request) (*domain.DispatchReport, error) {
	m.dispatched = append(m.dispatched, req)
	if m.report == nil {
		return &domain.DispatchReport{Request: req}, m.err
	}
	return m.report, m.err
}

func (m *mockDispatcher) Plan(_ context.Context, req domain.Request) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	m.planned = append(m.planned, req)
	return m.plans[req.Kind], nil
}

func (m *mockDispatcher) Providers() []string {
	return m.providers
}

// mockVersionService implements driving.VersionService for testing.
type mockVersionService struct {
	state *domain.VersionState
}

func (m *mockVersionService) Bump(env domain.DockerEnv, version string) (*domain.VersionState, error) {
	m.state = m.State().Bump(env, version)
	return m.state, nil
}

func (m *mockVersionService) State() *domain.VersionState {
	if m.state == nil {
		return domain.DefaultVersionState()
	}
	return m.state
}

func (m *mockVersionService) Path() string {
	return "/work/shop/version.json"
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings *domain.Settings
	set      map[string]string
	setErr   error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	if m.settings == nil {
		return domain.DefaultSettings(), nil
	}
	return m.settings, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.set == nil {
		m.set = make(map[string]string)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Path() string {
	return "/work/shop/.st.toml"
}

// mockWatchService implements driving.WatchService for testing.
type mockWatchService struct {
	watched []domain.Request
	err     error
}

func (m *mockWatchService) Watch(_ context.Context, req domain.Request) error {
	m.watched = append(m.watched, req)
	return m.err
}

// mockDjango implements DjangoCommands for testing.
type mockDjango struct {
	calls []string
	err   error
}

func (m *mockDjango) CollectStatic(context.Context) error {
	m.calls = append(m.calls, "collectstatic")
	return m.err
}

func (m *mockDjango) DumpData(context.Context) error {
	m.calls = append(m.calls, "dumpdata")
	return m.err
}

func (m *mockDjango) LoadData(context.Context) error {
	m.calls = append(m.calls, "loaddata")
	return m.err
}

// testServices holds the mocks installed by setupCLITest.
type testServices struct {
	dispatcher *mockDispatcher
	versions   *mockVersionService
	settings   *mockSettingsService
	watch      *mockWatchService
	django     *mockDjango
}

func setupCLITest() (*testServices, func()) {
	oldServices := services
	oldBuilder := builder
	oldInteractive := isInteractive

	ts := &testServices{
		dispatcher: &mockDispatcher{
			providers: []string{"cargo", "npm", "poetry", "django", "docker"},
			plans:     make(map[domain.CommandKind][]string),
		},
		versions: &mockVersionService{},
		settings: &mockSettingsService{},
		watch:    &mockWatchService{},
		django:   &mockDjango{},
	}
	services = &Services{
		Dispatcher: ts.dispatcher,
		Versions:   ts.versions,
		Settings:   ts.settings,
		Watch:      ts.watch,
		Django:     ts.django,
	}
	isInteractive = func() bool { return true }
	envCfg = envConfig{}
	resetFlags(rootCmd)

	return ts, func() {
		services = oldServices
		builder = oldBuilder
		isInteractive = oldInteractive
		resetFlags(rootCmd)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}
}

// resetFlags restores every flag in the tree to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command with args and returns everything printed.
func run(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// exitCode returns the code carried by err, or -1 if it has none.
func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}
