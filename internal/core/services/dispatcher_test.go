package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/st-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
)

// versionProvider reports a manifest version for bump.
type versionProvider struct {
	*fakeProvider
	version string
	asked   int
}

func (p *versionProvider) ManifestVersion(context.Context) (string, error) {
	p.asked++
	if p.version == "" {
		return "", fmt.Errorf("%w: %s declares no version", domain.ErrInvalidInput, p.name)
	}
	return p.version, nil
}

func newVersionFake(name, version string) *versionProvider {
	return &versionProvider{fakeProvider: newFake(name, nil, domain.CommandBump), version: version}
}

// hintProvider explains why it never matches.
type hintProvider struct {
	*fakeProvider
	hint string
}

func (p *hintProvider) Diagnose(context.Context, domain.Request) string { return p.hint }

// fakeProvider implements driven.Provider for testing.
type fakeProvider struct {
	name     string
	kinds    map[domain.CommandKind]bool
	err      error
	log      *[]string
	received []domain.Request
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Supports(_ context.Context, req domain.Request) bool {
	return p.kinds[req.Kind]
}

func (p *fakeProvider) Execute(_ context.Context, req domain.Request) error {
	p.received = append(p.received, req)
	if p.log != nil {
		*p.log = append(*p.log, p.name)
	}
	return p.err
}

func newFake(name string, log *[]string, kinds ...domain.CommandKind) *fakeProvider {
	p := &fakeProvider{name: name, kinds: make(map[domain.CommandKind]bool), log: log}
	for _, k := range kinds {
		p.kinds[k] = true
	}
	return p
}

func TestDispatcher_RunsEverySupportingProviderInOrder(t *testing.T) {
	var calls []string
	cargo := newFake("cargo", &calls, domain.CommandBuild)
	npm := newFake("npm", &calls, domain.CommandBuild)
	poetry := newFake("poetry", &calls, domain.CommandTest)

	d := NewDispatcher([]driven.Provider{cargo, npm, poetry})
	report, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandBuild})

	require.NoError(t, err)
	assert.Equal(t, []string{"cargo", "npm"}, calls)
	assert.Equal(t, []string{"cargo", "npm"}, report.Providers())
	assert.True(t, report.Succeeded())
	assert.Empty(t, poetry.received)
}

func TestDispatcher_NoProviderMatched(t *testing.T) {
	var calls []string
	cargo := newFake("cargo", &calls, domain.CommandBuild)

	d := NewDispatcher([]driven.Provider{cargo})
	report, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandLint})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoProviderMatched)
	assert.Contains(t, err.Error(), "lint")
	assert.Empty(t, calls)
	assert.False(t, report.Handled())
}

func TestDispatcher_EmptyRegistry(t *testing.T) {
	d := NewDispatcher(nil)

	_, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandClean})

	assert.ErrorIs(t, err, domain.ErrNoProviderMatched)
}

func TestDispatcher_FailureDoesNotStopFanOut(t *testing.T) {
	var calls []string
	cargo := newFake("cargo", &calls, domain.CommandTest)
	cargo.err = errors.Join(domain.ErrToolFailed, errors.New("exit status 101"))
	npm := newFake("npm", &calls, domain.CommandTest)

	d := NewDispatcher([]driven.Provider{cargo, npm})
	report, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandTest})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrToolFailed)
	assert.Contains(t, err.Error(), "Error: cargo:")
	assert.Equal(t, []string{"cargo", "npm"}, calls)

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "cargo", failed[0].Provider)
	assert.False(t, report.Succeeded())
}

func TestDispatcher_AllFailuresAggregated(t *testing.T) {
	cargo := newFake("cargo", nil, domain.CommandLint)
	cargo.err = domain.ErrToolFailed
	npm := newFake("npm", nil, domain.CommandLint)
	npm.err = domain.ErrToolFailed

	d := NewDispatcher([]driven.Provider{cargo, npm})
	report, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandLint})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error: cargo:")
	assert.Contains(t, err.Error(), "Error: npm:")
	assert.Len(t, report.Failed(), 2)
}

func TestDispatcher_ToolMissingStopsFanOut(t *testing.T) {
	var calls []string
	cargo := newFake("cargo", &calls, domain.CommandBuild)
	cargo.err = domain.ErrToolMissing
	npm := newFake("npm", &calls, domain.CommandBuild)

	d := NewDispatcher([]driven.Provider{cargo, npm})
	_, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandBuild})

	assert.ErrorIs(t, err, domain.ErrToolMissing)
	assert.Equal(t, []string{"cargo"}, calls)
}

func TestDispatcher_InvalidRequest(t *testing.T) {
	var calls []string
	docker := newFake("docker", &calls, domain.CommandDocker)

	d := NewDispatcher([]driven.Provider{docker})
	_, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandDocker, Env: domain.EnvDev})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, calls)
}

func TestDispatcher_DisabledProvidersAreSkipped(t *testing.T) {
	var calls []string
	cargo := newFake("cargo", &calls, domain.CommandBuild)
	npm := newFake("npm", &calls, domain.CommandBuild)

	settings := domain.DefaultSettings()
	settings.DisabledProviders = []string{"npm"}

	d := NewDispatcher([]driven.Provider{cargo, npm}, WithSettings(settings))
	_, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandBuild})

	require.NoError(t, err)
	assert.Equal(t, []string{"cargo"}, calls)
	assert.Equal(t, []string{"cargo"}, d.Providers())
}

func TestDispatcher_ExtraArgsAppended(t *testing.T) {
	cargo := newFake("cargo", nil, domain.CommandTest)

	settings := domain.DefaultSettings()
	settings.ExtraArgs[domain.CommandTest] = []string{"--", "--nocapture"}

	d := NewDispatcher([]driven.Provider{cargo}, WithSettings(settings))
	_, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandTest, Args: []string{"--release"}})

	require.NoError(t, err)
	require.Len(t, cargo.received, 1)
	assert.Equal(t, []string{"--release", "--", "--nocapture"}, cargo.received[0].Args)
}

func TestDispatcher_Events(t *testing.T) {
	cargo := newFake("cargo", nil, domain.CommandBuild)
	npm := newFake("npm", nil, domain.CommandBuild)
	npm.err = domain.ErrToolFailed

	var events []domain.DispatchStatus
	d := NewDispatcher([]driven.Provider{cargo, npm}, WithEventHandler(func(ev domain.DispatchEvent) {
		events = append(events, ev.Status)
	}))
	_, _ = d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandBuild})

	assert.Equal(t, []domain.DispatchStatus{
		domain.DispatchStarted, domain.DispatchSucceeded,
		domain.DispatchStarted, domain.DispatchFailed,
	}, events)
}

func TestDispatcher_Plan(t *testing.T) {
	var calls []string
	cargo := newFake("cargo", &calls, domain.CommandFormat)
	npm := newFake("npm", &calls, domain.CommandBuild)
	poetry := newFake("poetry", &calls, domain.CommandFormat)

	d := NewDispatcher([]driven.Provider{cargo, npm, poetry})
	names, err := d.Plan(context.Background(), domain.Request{Kind: domain.CommandFormat})

	require.NoError(t, err)
	assert.Equal(t, []string{"cargo", "poetry"}, names)
	assert.Empty(t, calls)

	_, err = d.Plan(context.Background(), domain.Request{Kind: "deploy"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDispatcher_BumpRecordsOneTransition(t *testing.T) {
	store := memory.NewVersionStore(domain.DefaultVersionState().
		Bump(domain.EnvDev, "0.9.0").
		Bump(domain.EnvDev, "1.0.0"))
	cargo := newVersionFake("cargo", "1.1.0")
	npm := newVersionFake("npm", "1.1.0")

	d := NewDispatcher([]driven.Provider{cargo, npm}, WithVersionRecorder(NewVersionService(store)))
	report, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandBump, Env: domain.EnvDev})

	require.NoError(t, err)
	assert.Equal(t, []string{"cargo", "npm"}, report.Providers())
	assert.Equal(t, 1, cargo.asked)
	assert.Equal(t, 1, npm.asked)
	assert.Empty(t, cargo.received)
	assert.Equal(t, 1, store.Saves())

	state, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.VersionPair{Old: "1.0.0", New: "1.1.0"}, state.Dev)
}

func TestDispatcher_BumpWarnsOnDisagreement(t *testing.T) {
	buf := captureLog(t)
	store := memory.NewVersionStore(nil)
	cargo := newVersionFake("cargo", "2.0.0")
	npm := newVersionFake("npm", "1.9.0")

	d := NewDispatcher([]driven.Provider{cargo, npm}, WithVersionRecorder(NewVersionService(store)))
	_, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandBump, Env: domain.EnvProd})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "npm declares version 1.9.0 but cargo declares 2.0.0")

	state, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.VersionPair{New: "2.0.0"}, state.Prod)
}

func TestDispatcher_BumpSkipsProvidersWithoutVersion(t *testing.T) {
	store := memory.NewVersionStore(nil)
	cargo := newVersionFake("cargo", "")
	npm := newVersionFake("npm", "0.3.0")

	d := NewDispatcher([]driven.Provider{cargo, npm}, WithVersionRecorder(NewVersionService(store)))
	report, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandBump, Env: domain.EnvTest})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Error: cargo:")
	assert.Len(t, report.Failed(), 1)

	state, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.VersionPair{New: "0.3.0"}, state.Test)
}

func TestDispatcher_BumpSaveFailure(t *testing.T) {
	store := memory.NewVersionStore(nil)
	boom := errors.New("disk full")
	store.FailSave(boom)

	d := NewDispatcher([]driven.Provider{newVersionFake("cargo", "1.0.0")}, WithVersionRecorder(NewVersionService(store)))
	report, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandBump, Env: domain.EnvDev})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "record dev version")
	assert.True(t, report.Handled())
}

func TestDispatcher_BumpNeedsRecorder(t *testing.T) {
	cargo := newVersionFake("cargo", "1.0.0")

	d := NewDispatcher([]driven.Provider{cargo})
	_, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandBump, Env: domain.EnvDev})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, cargo.asked)
}

func TestDispatcher_PublishNeedsTerminal(t *testing.T) {
	tests := []struct {
		name        string
		opts        []DispatcherOption
		wantRefused bool
	}{
		{"no check configured", nil, true},
		{"not a terminal", []DispatcherOption{WithInteractive(func() bool { return false })}, true},
		{"terminal", []DispatcherOption{WithInteractive(func() bool { return true })}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			npm := newFake("npm", nil, domain.CommandPublish)

			d := NewDispatcher([]driven.Provider{npm}, tt.opts...)
			_, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandPublish, Args: []string{"--token", "x"}})

			if tt.wantRefused {
				assert.ErrorIs(t, err, domain.ErrNotInteractive)
				assert.Empty(t, npm.received)
				return
			}
			require.NoError(t, err)
			assert.Len(t, npm.received, 1)
		})
	}
}

func TestDispatcher_PlanIgnoresTerminal(t *testing.T) {
	npm := newFake("npm", nil, domain.CommandPublish)

	d := NewDispatcher([]driven.Provider{npm})
	names, err := d.Plan(context.Background(), domain.Request{Kind: domain.CommandPublish})

	require.NoError(t, err)
	assert.Equal(t, []string{"npm"}, names)
}

func TestDispatcher_NoProviderHints(t *testing.T) {
	cargo := newFake("cargo", nil, domain.CommandBuild)
	docker := &hintProvider{fakeProvider: newFake("docker", nil), hint: "no dev version recorded, run `st bump dev`"}
	quiet := &hintProvider{fakeProvider: newFake("django", nil)}

	d := NewDispatcher([]driven.Provider{cargo, quiet, docker})
	_, err := d.Dispatch(context.Background(), domain.Request{Kind: domain.CommandDocker, Action: domain.DockerBuild, Env: domain.EnvDev})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoProviderMatched)
	assert.Contains(t, err.Error(), "docker: no dev version recorded, run `st bump dev`")
	assert.NotContains(t, err.Error(), "django")
}
