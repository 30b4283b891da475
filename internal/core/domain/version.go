package domain

// VersionPair records one environment's previous and current version.
type VersionPair struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// VersionState is the persisted document tracking per-environment version
// transitions. The zero value is the default state used when no valid file exists.
type VersionState struct {
	Dev  VersionPair `json:"dev"`
	Test VersionPair `json:"test"`
	Prod VersionPair `json:"prod"`
}

// DefaultVersionState returns an empty state.
func DefaultVersionState() *VersionState {
	return &VersionState{}
}

// Pair returns the version pair for env.
// Unknown environments return an empty pair.
func (s *VersionState) Pair(env DockerEnv) VersionPair {
	switch env {
	case EnvDev:
		return s.Dev
	case EnvTest:
		return s.Test
	case EnvProd:
		return s.Prod
	default:
		return VersionPair{}
	}
}

// Bump returns a copy of the state with env advanced to version.
// The previous new value becomes old; every other environment is unchanged.
func (s *VersionState) Bump(env DockerEnv, version string) *VersionState {
	next := *s
	pair := VersionPair{Old: s.Pair(env).New, New: version}
	switch env {
	case EnvDev:
		next.Dev = pair
	case EnvTest:
		next.Test = pair
	case EnvProd:
		next.Prod = pair
	}
	return &next
}
