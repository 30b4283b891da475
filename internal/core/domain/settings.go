package domain

// DefaultVersionFile is the version state file name in the project root.
const DefaultVersionFile = "version.json"

// DefaultConfigFile is the project configuration file name.
const DefaultConfigFile = ".st.toml"

// Settings is the effective project configuration.
type Settings struct {
	// DisabledProviders are removed from the registry before dispatch.
	DisabledProviders []string
	// ExtraArgs are appended to the delegated tool's arguments per command.
	ExtraArgs map[CommandKind][]string
	// VersionFile is the version state path, relative to the project root.
	VersionFile string
	// Docker holds container naming and argument overrides.
	Docker DockerSettings
}

// DockerSettings configures the docker provider.
type DockerSettings struct {
	// Project overrides the manifest project name in tags.
	Project string
	// RunArgs are inserted before the image in `docker run`.
	RunArgs []string
	// BuildArgs are inserted before the context in `docker build`.
	BuildArgs []string
}

// DefaultSettings returns settings with defaults applied.
func DefaultSettings() *Settings {
	return &Settings{
		ExtraArgs:   make(map[CommandKind][]string),
		VersionFile: DefaultVersionFile,
	}
}

// IsDisabled returns true if the named provider is disabled.
func (s *Settings) IsDisabled(provider string) bool {
	if s == nil {
		return false
	}
	for _, name := range s.DisabledProviders {
		if name == provider {
			return true
		}
	}
	return false
}

// ArgsFor returns the configured extra args for a command.
func (s *Settings) ArgsFor(kind CommandKind) []string {
	if s == nil || s.ExtraArgs == nil {
		return nil
	}
	return s.ExtraArgs[kind]
}
