package providers

import (
	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
)

// Ensure Npm implements the interfaces.
var (
	_ driven.Provider      = (*Npm)(nil)
	_ driven.VersionSource = (*Npm)(nil)
)

// Npm handles Node projects (package.json).
// format, run and test need the matching script in package.json.
type Npm struct {
	toolchain
}

// NewNpm creates the npm provider.
func NewNpm(deps Deps) *Npm {
	n := &Npm{toolchain{
		name:     "npm",
		tool:     "npm",
		manifest: domain.ManifestNpm,
		bumps:    true,
		deps:     deps,
	}}
	n.steps = map[domain.CommandKind]step{
		domain.CommandClean:    {args: []string{"cache", "clean", "--force"}},
		domain.CommandFormat:   {args: []string{"run", "prettier"}, when: n.hasScript("prettier")},
		domain.CommandOutdated: {args: []string{"outdated"}},
		domain.CommandRun:      {args: []string{"start"}, when: n.hasScript("start")},
		domain.CommandUpdate:   {args: []string{"update"}},
		domain.CommandTest:     {args: []string{"test"}, when: n.hasScript("test")},
		domain.CommandSync:     {args: []string{"ci"}},
		domain.CommandLock:     {args: []string{"install", "--package-lock-only"}},
		domain.CommandInstall:  {args: []string{"install"}},
		domain.CommandPublish:  {args: []string{"publish"}},
	}
	return n
}
