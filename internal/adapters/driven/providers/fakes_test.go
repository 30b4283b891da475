package providers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
)

const projectDir = "/work/shop"

// fakeRunner implements driven.CommandRunner for testing.
type fakeRunner struct {
	calls []driven.Invocation
	// fail maps a command line to the error it returns.
	fail map[string]error
}

func (r *fakeRunner) Run(_ context.Context, inv driven.Invocation) error {
	r.calls = append(r.calls, inv)
	return r.fail[inv.String()]
}

func (r *fakeRunner) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

// commands returns the non-quiet command lines that ran.
func (r *fakeRunner) commands() []string {
	var out []string
	for _, c := range r.calls {
		if !c.Quiet {
			out = append(out, c.String())
		}
	}
	return out
}

// fakeProbe implements driven.Probe for testing.
type fakeProbe struct {
	files map[string]bool
	// missing lists tools not on PATH.
	missing map[string]bool
}

func newFakeProbe(rel ...string) *fakeProbe {
	p := &fakeProbe{files: make(map[string]bool), missing: make(map[string]bool)}
	for _, f := range rel {
		p.files[filepath.Join(projectDir, f)] = true
	}
	return p
}

func (p *fakeProbe) FileExists(path string) bool { return p.files[path] }
func (p *fakeProbe) ToolExists(name string) bool { return !p.missing[name] }

// fakeManifests implements driven.ManifestReader for testing.
type fakeManifests struct {
	byKind map[domain.ManifestKind]*domain.Manifest
}

func (m *fakeManifests) Read(_ string, kind domain.ManifestKind) (*domain.Manifest, error) {
	if mf, ok := m.byKind[kind]; ok {
		return mf, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, kind.FileName())
}

func (m *fakeManifests) Detect(dir string) (*domain.Manifest, error) {
	for _, kind := range domain.AllManifestKinds() {
		if mf, ok := m.byKind[kind]; ok {
			return mf, nil
		}
	}
	return nil, fmt.Errorf("%w: no manifest in %s", domain.ErrNotFound, dir)
}

// fakeTracker implements VersionTracker for testing.
type fakeTracker struct {
	state *domain.VersionState
}

func (t *fakeTracker) State() *domain.VersionState { return t.state }

type fixture struct {
	runner    *fakeRunner
	probe     *fakeProbe
	manifests *fakeManifests
	tracker   *fakeTracker
	settings  *domain.Settings
}

func newFixture(files ...string) *fixture {
	return &fixture{
		runner:    &fakeRunner{fail: make(map[string]error)},
		probe:     newFakeProbe(files...),
		manifests: &fakeManifests{byKind: make(map[domain.ManifestKind]*domain.Manifest)},
		tracker:   &fakeTracker{state: domain.DefaultVersionState()},
		settings:  domain.DefaultSettings(),
	}
}

func (f *fixture) deps() Deps {
	return Deps{
		Dir:       projectDir,
		Runner:    f.runner,
		Probe:     f.probe,
		Manifests: f.manifests,
		Versions:  f.tracker,
		Settings:  f.settings,
	}
}

func (f *fixture) withManifest(kind domain.ManifestKind, name, version string, scripts ...string) *fixture {
	m := &domain.Manifest{
		Kind:    kind,
		Path:    filepath.Join(projectDir, kind.FileName()),
		Name:    name,
		Version: version,
	}
	if kind == domain.ManifestNpm {
		m.Scripts = make(map[string]string)
		for _, s := range scripts {
			m.Scripts[s] = s
		}
	}
	f.manifests.byKind[kind] = m
	f.probe.files[m.Path] = true
	return f
}

func req(kind domain.CommandKind, args ...string) domain.Request {
	return domain.Request{Kind: kind, Args: args}
}

func cmdline(parts ...string) string {
	return strings.Join(parts, " ")
}
