package providers

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
	"github.com/custodia-labs/st-cli/internal/logger"
)

// VersionTracker exposes the tracked version state. Satisfied by the
// version service.
type VersionTracker interface {
	State() *domain.VersionState
}

// Deps are the collaborators shared by every provider.
type Deps struct {
	// Dir is the project directory commands run in.
	Dir       string
	Runner    driven.CommandRunner
	Probe     driven.Probe
	Manifests driven.ManifestReader
	// Versions is required for docker; nil disables it.
	Versions VersionTracker
	Settings *domain.Settings
}

// step is one row of a capability table.
type step struct {
	args []string
	// when narrows applicability beyond the manifest check. Optional.
	when func(ctx context.Context) bool
}

// toolchain is a provider that delegates every command to one executable.
type toolchain struct {
	name     string
	tool     string
	manifest domain.ManifestKind
	steps    map[domain.CommandKind]step
	// bumps makes the provider report its manifest version for bump.
	bumps bool
	// prepare adjusts an invocation before it runs. Optional.
	prepare func(inv *driven.Invocation) error
	deps    Deps
}

// Name returns the provider name.
func (t *toolchain) Name() string {
	return t.name
}

// Supports reports whether req applies to the project.
func (t *toolchain) Supports(ctx context.Context, req domain.Request) bool {
	if req.Kind == domain.CommandBump {
		return t.bumps && t.present()
	}
	s, ok := t.steps[req.Kind]
	if !ok || !t.present() {
		return false
	}
	return s.when == nil || s.when(ctx)
}

// Execute delegates req to the tool. Bump only checks the manifest
// version; the dispatcher records it through ManifestVersion.
func (t *toolchain) Execute(ctx context.Context, req domain.Request) error {
	if req.Kind == domain.CommandBump && t.bumps {
		_, err := t.ManifestVersion(ctx)
		return err
	}
	s, ok := t.steps[req.Kind]
	if !ok {
		return fmt.Errorf("%w: %s does not support %s", domain.ErrInvalidInput, t.name, req.Kind)
	}

	args := make([]string, 0, len(s.args)+len(req.Args))
	args = append(args, s.args...)
	args = append(args, req.Args...)
	return t.run(ctx, driven.Invocation{Tool: t.tool, Args: args})
}

func (t *toolchain) run(ctx context.Context, inv driven.Invocation) error {
	inv.Dir = t.deps.Dir
	if t.prepare != nil {
		if err := t.prepare(&inv); err != nil {
			return err
		}
	}
	return t.deps.Runner.Run(ctx, inv)
}

// present reports whether the ecosystem manifest exists.
func (t *toolchain) present() bool {
	return t.deps.Probe.FileExists(filepath.Join(t.deps.Dir, t.manifest.FileName()))
}

// readManifest returns nil if the manifest is missing or unreadable.
func (t *toolchain) readManifest() *domain.Manifest {
	m, err := t.deps.Manifests.Read(t.deps.Dir, t.manifest)
	if err != nil {
		logger.Debug("%s: %v", t.name, err)
		return nil
	}
	return m
}

// hasScript is a predicate for npm-style script rows.
func (t *toolchain) hasScript(name string) func(context.Context) bool {
	return func(context.Context) bool {
		return t.readManifest().HasScript(name)
	}
}

// hasSubTool is a predicate for tools installed inside the project's
// environment, checked with a quiet `<tool> run <sub> --version`.
func (t *toolchain) hasSubTool(sub string) func(context.Context) bool {
	return func(ctx context.Context) bool {
		if !t.deps.Probe.ToolExists(t.tool) {
			logger.Debug("%s: %s not on PATH, skipping %s check", t.name, t.tool, sub)
			return false
		}
		err := t.deps.Runner.Run(ctx, driven.Invocation{
			Tool:  t.tool,
			Args:  []string{"run", sub, "--version"},
			Dir:   t.deps.Dir,
			Quiet: true,
		})
		if err != nil {
			logger.Debug("%s: %s not available: %v", t.name, sub, err)
			return false
		}
		return true
	}
}

// ManifestVersion returns the version the ecosystem manifest declares.
func (t *toolchain) ManifestVersion(context.Context) (string, error) {
	m, err := t.deps.Manifests.Read(t.deps.Dir, t.manifest)
	if err != nil {
		return "", err
	}
	if m.Version == "" {
		return "", fmt.Errorf("%w: %s declares no version", domain.ErrInvalidInput, m.Path)
	}
	return m.Version, nil
}
