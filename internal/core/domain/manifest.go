package domain

// ManifestKind identifies an ecosystem manifest file.
type ManifestKind string

// Known manifest kinds.
const (
	ManifestCargo     ManifestKind = "cargo"
	ManifestPyProject ManifestKind = "pyproject"
	ManifestNpm       ManifestKind = "npm"
)

// AllManifestKinds returns manifest kinds in detection order.
func AllManifestKinds() []ManifestKind {
	return []ManifestKind{ManifestCargo, ManifestPyProject, ManifestNpm}
}

// FileName returns the manifest file name in a project root.
func (k ManifestKind) FileName() string {
	switch k {
	case ManifestCargo:
		return "Cargo.toml"
	case ManifestPyProject:
		return "pyproject.toml"
	case ManifestNpm:
		return "package.json"
	default:
		return ""
	}
}

// String returns the string representation.
func (k ManifestKind) String() string {
	return string(k)
}

// Manifest is the project identity read from a manifest file.
type Manifest struct {
	// Kind is the manifest the values were read from.
	Kind ManifestKind
	// Path is the absolute path of the manifest file.
	Path string
	// Name is the declared project or package name.
	Name string
	// Version is the declared version. May be empty (e.g. a cargo workspace root).
	Version string
	// Scripts lists npm script names. Nil for other ecosystems.
	Scripts map[string]string
}

// HasScript returns true if the manifest declares the named script.
func (m *Manifest) HasScript(name string) bool {
	if m == nil || m.Scripts == nil {
		return false
	}
	_, ok := m.Scripts[name]
	return ok
}
