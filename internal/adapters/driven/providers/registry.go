package providers

import "github.com/custodia-labs/st-cli/internal/core/ports/driven"

// Registry holds every provider in dispatch order.
type Registry struct {
	Cargo  *Cargo
	Npm    *Npm
	Poetry *Poetry
	Django *Django
	Docker *Docker
}

// NewRegistry creates all providers over shared deps.
func NewRegistry(deps Deps) *Registry {
	return &Registry{
		Cargo:  NewCargo(deps),
		Npm:    NewNpm(deps),
		Poetry: NewPoetry(deps),
		Django: NewDjango(deps),
		Docker: NewDocker(deps),
	}
}

// Providers returns the providers in fixed registration order.
func (r *Registry) Providers() []driven.Provider {
	return []driven.Provider{r.Cargo, r.Npm, r.Poetry, r.Django, r.Docker}
}
