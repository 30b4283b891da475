// Package probe answers side-effect-free questions about the environment.
package probe

import (
	"os"
	"os/exec"

	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
)

// Ensure Probe implements the interface.
var _ driven.Probe = (*Probe)(nil)

// Probe checks the local filesystem and PATH.
type Probe struct{}

// New creates a probe.
func New() *Probe {
	return &Probe{}
}

// FileExists returns true if path exists.
func (p *Probe) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ToolExists returns true if name resolves on PATH.
func (p *Probe) ToolExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
