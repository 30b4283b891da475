package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

// fakeLifecycle records primitive calls in order.
type fakeLifecycle struct {
	canRun  bool
	canStop bool
	stopErr error
	runErr  error
	calls   []string
	version string
}

func (f *fakeLifecycle) CanBuild(domain.DockerEnv) bool { return false }
func (f *fakeLifecycle) CanRun(domain.DockerEnv) bool   { return f.canRun }
func (f *fakeLifecycle) CanStop(domain.DockerEnv) bool  { return f.canStop }

func (f *fakeLifecycle) Build(_ context.Context, env domain.DockerEnv) error {
	f.calls = append(f.calls, "build:"+env.String())
	return nil
}

func (f *fakeLifecycle) Run(_ context.Context, env domain.DockerEnv) error {
	f.calls = append(f.calls, "run:"+env.String())
	return f.runErr
}

func (f *fakeLifecycle) Stop(_ context.Context, env domain.DockerEnv) error {
	f.calls = append(f.calls, "stop:"+env.String())
	return f.stopErr
}

func (f *fakeLifecycle) NewTag(env domain.DockerEnv) (string, error) {
	return domain.DockerTag("app", env, f.version), nil
}

func (f *fakeLifecycle) OldTag(env domain.DockerEnv) (string, error) {
	return "", errors.New("no previous version")
}

// overridingLifecycle replaces restart and provides upgrade.
type overridingLifecycle struct {
	fakeLifecycle
	restarted bool
	upgraded  bool
}

func (o *overridingLifecycle) CanRestart(domain.DockerEnv) bool { return true }

func (o *overridingLifecycle) Restart(context.Context, domain.DockerEnv) error {
	o.restarted = true
	return nil
}

func (o *overridingLifecycle) CanUpgrade(domain.DockerEnv) bool { return true }

func (o *overridingLifecycle) Upgrade(context.Context, domain.DockerEnv) error {
	o.upgraded = true
	return nil
}

func TestCanRestart_IsConjunctionOfStopAndRun(t *testing.T) {
	for _, env := range domain.AllDockerEnvs() {
		for _, canStop := range []bool{false, true} {
			for _, canRun := range []bool{false, true} {
				l := &fakeLifecycle{canStop: canStop, canRun: canRun}
				assert.Equal(t, canStop && canRun, CanRestart(l, env),
					"env=%s stop=%v run=%v", env, canStop, canRun)
			}
		}
	}
}

func TestRestart_StopsThenRuns(t *testing.T) {
	l := &fakeLifecycle{canStop: true, canRun: true}

	err := Restart(context.Background(), l, domain.EnvDev)

	require.NoError(t, err)
	assert.Equal(t, []string{"stop:dev", "run:dev"}, l.calls)
}

func TestRestart_RunsEvenWhenStopFails(t *testing.T) {
	l := &fakeLifecycle{canStop: true, canRun: true, stopErr: errors.New("nothing to stop")}

	err := Restart(context.Background(), l, domain.EnvTest)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to stop")
	assert.Equal(t, []string{"stop:test", "run:test"}, l.calls)
}

func TestRestart_ReportsBothFailures(t *testing.T) {
	l := &fakeLifecycle{
		canStop: true,
		canRun:  true,
		stopErr: errors.New("stop failed"),
		runErr:  errors.New("run failed"),
	}

	err := Restart(context.Background(), l, domain.EnvProd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "stop failed")
	assert.Contains(t, err.Error(), "run failed")
}

func TestRestart_UnsupportedWithoutPrimitives(t *testing.T) {
	l := &fakeLifecycle{canStop: true}

	err := Restart(context.Background(), l, domain.EnvDev)

	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Empty(t, l.calls)
}

func TestRestart_OverrideWins(t *testing.T) {
	l := &overridingLifecycle{}

	assert.True(t, CanRestart(l, domain.EnvDev))
	require.NoError(t, Restart(context.Background(), l, domain.EnvDev))
	assert.True(t, l.restarted)
	assert.Empty(t, l.calls)
}

func TestUpgrade_DefaultUnsupported(t *testing.T) {
	l := &fakeLifecycle{canStop: true, canRun: true}

	assert.False(t, CanUpgrade(l, domain.EnvProd))
	assert.NoError(t, Upgrade(context.Background(), l, domain.EnvProd))
	assert.Empty(t, l.calls)
}

func TestUpgrade_Override(t *testing.T) {
	l := &overridingLifecycle{}

	assert.True(t, CanUpgrade(l, domain.EnvProd))
	require.NoError(t, Upgrade(context.Background(), l, domain.EnvProd))
	assert.True(t, l.upgraded)
}

func TestNewName_DerivedFromTag(t *testing.T) {
	l := &fakeLifecycle{version: "1.2.0"}

	tag, err := l.NewTag(domain.EnvProd)
	require.NoError(t, err)
	assert.Equal(t, "app_prod:1.2.0", tag)

	name, err := NewName(l, domain.EnvProd)
	require.NoError(t, err)
	assert.Equal(t, "app_prod_1.2.0", name)
}

func TestOldName_PropagatesTagError(t *testing.T) {
	_, err := OldName(&fakeLifecycle{}, domain.EnvDev)
	assert.Error(t, err)
}

func TestCanAndDo(t *testing.T) {
	l := &fakeLifecycle{canStop: true, canRun: true}
	ctx := context.Background()

	assert.False(t, Can(l, domain.DockerBuild, domain.EnvDev))
	assert.True(t, Can(l, domain.DockerRun, domain.EnvDev))
	assert.True(t, Can(l, domain.DockerStop, domain.EnvDev))
	assert.True(t, Can(l, domain.DockerRestart, domain.EnvDev))
	assert.False(t, Can(l, domain.DockerUpgrade, domain.EnvDev))
	assert.False(t, Can(l, "deploy", domain.EnvDev))

	require.NoError(t, Do(ctx, l, domain.DockerRun, domain.EnvDev))
	require.NoError(t, Do(ctx, l, domain.DockerStop, domain.EnvDev))
	assert.Equal(t, []string{"run:dev", "stop:dev"}, l.calls)

	assert.ErrorIs(t, Do(ctx, l, "deploy", domain.EnvDev), domain.ErrInvalidInput)
}
