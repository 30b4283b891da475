package providers

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/lifecycle"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
	"github.com/custodia-labs/st-cli/internal/logger"
)

var (
	_ driven.Provider     = (*Docker)(nil)
	_ lifecycle.Lifecycle = (*Docker)(nil)
	_ lifecycle.Upgrader  = (*Docker)(nil)
	_ driven.Diagnoser    = (*Docker)(nil)
)

// Docker manages per-environment containers built from docker/{env}.Dockerfile.
//
// Images are tagged {project}_{env}:{version} from the tracked version
// state; the project name comes from settings or the project manifest.
// Restart uses the derived stop-then-run.
type Docker struct {
	deps Deps
}

// NewDocker creates the docker provider.
func NewDocker(deps Deps) *Docker {
	return &Docker{deps: deps}
}

// Name returns the provider name.
func (d *Docker) Name() string {
	return "docker"
}

// Supports reports whether the docker action applies.
func (d *Docker) Supports(_ context.Context, req domain.Request) bool {
	if req.Kind != domain.CommandDocker {
		return false
	}
	return lifecycle.Can(d, req.Action, req.Env)
}

// Execute performs the docker action.
func (d *Docker) Execute(ctx context.Context, req domain.Request) error {
	if req.Kind != domain.CommandDocker {
		return fmt.Errorf("%w: docker does not support %s", domain.ErrInvalidInput, req.Kind)
	}
	return lifecycle.Do(ctx, d, req.Action, req.Env)
}

// Diagnose explains why a docker request for an env with a Dockerfile
// cannot be served, usually a missing version.
func (d *Docker) Diagnose(_ context.Context, req domain.Request) string {
	if req.Kind != domain.CommandDocker || !d.hasDockerfile(req.Env) {
		return ""
	}
	if d.pair(req.Env).New == "" {
		return fmt.Sprintf("no %s version recorded, run `st bump %s`", req.Env, req.Env)
	}
	if _, err := d.NewTag(req.Env); err != nil {
		return err.Error()
	}
	return ""
}

// CanBuild requires the env's Dockerfile and a current version.
func (d *Docker) CanBuild(env domain.DockerEnv) bool {
	return d.hasDockerfile(env) && d.hasTag(env)
}

// Build builds the current version's image.
func (d *Docker) Build(ctx context.Context, env domain.DockerEnv) error {
	tag, err := d.NewTag(env)
	if err != nil {
		return err
	}
	args := []string{"build", "-f", domain.DockerfilePath(env), "-t", tag}
	args = append(args, d.buildArgs()...)
	args = append(args, ".")
	return d.docker(ctx, args...)
}

// CanRun has the same requirements as CanBuild.
func (d *Docker) CanRun(env domain.DockerEnv) bool {
	return d.CanBuild(env)
}

// Run starts the current version detached.
func (d *Docker) Run(ctx context.Context, env domain.DockerEnv) error {
	tag, err := d.NewTag(env)
	if err != nil {
		return err
	}
	args := []string{"run", "-d", "--rm", "--name", domain.DockerName(tag)}
	args = append(args, d.runArgs()...)
	args = append(args, tag)
	return d.docker(ctx, args...)
}

// CanStop has the same requirements as CanBuild.
func (d *Docker) CanStop(env domain.DockerEnv) bool {
	return d.CanBuild(env)
}

// Stop stops the current version's container.
func (d *Docker) Stop(ctx context.Context, env domain.DockerEnv) error {
	name, err := lifecycle.NewName(d, env)
	if err != nil {
		return err
	}
	return d.docker(ctx, "stop", name)
}

// CanUpgrade requires everything build and run need.
func (d *Docker) CanUpgrade(env domain.DockerEnv) bool {
	return d.CanBuild(env) && d.CanRun(env)
}

// Upgrade builds the new image, stops the running container and starts the
// new one. A failed build leaves the old container running.
//
// The container stopped is the previous version's, or the current
// version's when there is no distinct previous one, so re-upgrading the same
// version replaces its container. Stopping is best effort: it may already be
// gone.
func (d *Docker) Upgrade(ctx context.Context, env domain.DockerEnv) error {
	if err := d.Build(ctx, env); err != nil {
		return fmt.Errorf("build: %w", err)
	}

	pair := d.pair(env)
	if pair.Old != "" && pair.Old != pair.New {
		name, err := lifecycle.OldName(d, env)
		if err != nil {
			return err
		}
		if err := d.docker(ctx, "stop", name); err != nil {
			logger.Warn("stop previous container %s: %v", name, err)
		}
	} else {
		name, err := lifecycle.NewName(d, env)
		if err != nil {
			return err
		}
		if err := d.docker(ctx, "stop", name); err != nil {
			logger.Debug("stop container %s: %v", name, err)
		}
	}

	if err := d.Run(ctx, env); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// NewTag returns the image tag of env's current version.
func (d *Docker) NewTag(env domain.DockerEnv) (string, error) {
	return d.tag(env, d.pair(env).New)
}

// OldTag returns the image tag of env's previous version.
func (d *Docker) OldTag(env domain.DockerEnv) (string, error) {
	return d.tag(env, d.pair(env).Old)
}

func (d *Docker) tag(env domain.DockerEnv, version string) (string, error) {
	if version == "" {
		return "", fmt.Errorf("%w: no %s version recorded, run `st bump %s`", domain.ErrNotFound, env, env)
	}
	project, err := d.project()
	if err != nil {
		return "", err
	}
	return domain.DockerTag(project, env, version), nil
}

func (d *Docker) hasDockerfile(env domain.DockerEnv) bool {
	return d.deps.Probe.FileExists(filepath.Join(d.deps.Dir, domain.DockerfilePath(env)))
}

func (d *Docker) hasTag(env domain.DockerEnv) bool {
	_, err := d.NewTag(env)
	if err != nil {
		logger.Debug("docker: %v", err)
	}
	return err == nil
}

func (d *Docker) pair(env domain.DockerEnv) domain.VersionPair {
	if d.deps.Versions == nil {
		return domain.VersionPair{}
	}
	return d.deps.Versions.State().Pair(env)
}

// project resolves the project name: settings first, then the manifest.
func (d *Docker) project() (string, error) {
	if d.deps.Settings != nil && d.deps.Settings.Docker.Project != "" {
		return d.deps.Settings.Docker.Project, nil
	}
	m, err := d.deps.Manifests.Detect(d.deps.Dir)
	if err != nil {
		return "", err
	}
	if m.Name == "" {
		return "", fmt.Errorf("%w: %s declares no name", domain.ErrNotFound, m.Path)
	}
	return m.Name, nil
}

func (d *Docker) buildArgs() []string {
	if d.deps.Settings == nil {
		return nil
	}
	return d.deps.Settings.Docker.BuildArgs
}

func (d *Docker) runArgs() []string {
	if d.deps.Settings == nil {
		return nil
	}
	return d.deps.Settings.Docker.RunArgs
}

func (d *Docker) docker(ctx context.Context, args ...string) error {
	return d.deps.Runner.Run(ctx, driven.Invocation{Tool: "docker", Args: args, Dir: d.deps.Dir})
}
