package driven

// Probe inspects the environment without mutating it.
type Probe interface {
	// FileExists returns true if path exists (file or directory).
	FileExists(path string) bool

	// ToolExists returns true if the executable resolves on PATH.
	ToolExists(name string) bool
}
