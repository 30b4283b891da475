package providers

import (
	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
)

// Ensure Cargo implements the interfaces.
var (
	_ driven.Provider      = (*Cargo)(nil)
	_ driven.VersionSource = (*Cargo)(nil)
)

// Cargo handles Rust projects (Cargo.toml).
type Cargo struct {
	toolchain
}

// NewCargo creates the cargo provider.
func NewCargo(deps Deps) *Cargo {
	return &Cargo{toolchain{
		name:     "cargo",
		tool:     "cargo",
		manifest: domain.ManifestCargo,
		bumps:    true,
		deps:     deps,
		steps: map[domain.CommandKind]step{
			domain.CommandBuild:    {args: []string{"build"}},
			domain.CommandClean:    {args: []string{"clean"}},
			domain.CommandFormat:   {args: []string{"fmt"}},
			domain.CommandLint:     {args: []string{"clippy"}},
			domain.CommandOutdated: {args: []string{"outdated"}},
			domain.CommandRun:      {args: []string{"run"}},
			domain.CommandUpdate:   {args: []string{"update"}},
			domain.CommandTest:     {args: []string{"test"}},
			domain.CommandInstall:  {args: []string{"install", "--path", "."}},
			domain.CommandPublish:  {args: []string{"publish"}},
		},
	}}
}
