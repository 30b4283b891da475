package driven

import "github.com/custodia-labs/st-cli/internal/core/domain"

// ManifestReader reads project identity from ecosystem manifests.
type ManifestReader interface {
	// Read parses the manifest of the given kind in dir.
	// Returns domain.ErrNotFound if the file does not exist.
	Read(dir string, kind domain.ManifestKind) (*domain.Manifest, error)

	// Detect returns the first manifest found in dir, in
	// domain.AllManifestKinds order.
	Detect(dir string) (*domain.Manifest, error)
}
