package providers

import (
	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
)

// Ensure Poetry implements the interfaces.
var (
	_ driven.Provider      = (*Poetry)(nil)
	_ driven.VersionSource = (*Poetry)(nil)
)

// Poetry handles Python projects (pyproject.toml).
type Poetry struct {
	toolchain
}

// NewPoetry creates the poetry provider.
func NewPoetry(deps Deps) *Poetry {
	p := &Poetry{toolchain{
		name:     "poetry",
		tool:     "poetry",
		manifest: domain.ManifestPyProject,
		bumps:    true,
		deps:     deps,
	}}
	p.steps = map[domain.CommandKind]step{
		domain.CommandBuild:    {args: []string{"build"}},
		domain.CommandFormat:   {args: []string{"run", "black", "."}, when: p.hasSubTool("black")},
		domain.CommandOutdated: {args: []string{"show", "-o"}},
		domain.CommandUpdate:   {args: []string{"update"}},
		domain.CommandTest:     {args: []string{"run", "pytest"}, when: p.hasSubTool("pytest")},
		domain.CommandSync:     {args: []string{"install", "--sync"}},
		domain.CommandLock: {args: []string{
			"export", "-f", "requirements.txt", "-o", "requirements.txt", "--without-hashes",
		}},
		domain.CommandInstall: {args: []string{"install"}},
		domain.CommandPublish: {args: []string{"publish"}},
	}
	return p
}
