// Package manifest reads project identity from Cargo.toml, pyproject.toml
// and package.json.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"

	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.ManifestReader = (*Reader)(nil)

// Reader parses manifests from disk. It holds no state.
type Reader struct{}

// NewReader creates a manifest reader.
func NewReader() *Reader {
	return &Reader{}
}

type cargoFile struct {
	Package struct {
		Name    string `toml:"name"`
		Version any    `toml:"version"`
	} `toml:"package"`
	Workspace struct {
		Package struct {
			Version string `toml:"version"`
		} `toml:"package"`
	} `toml:"workspace"`
}

type pyprojectFile struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// Read parses the manifest of kind in dir.
func (r *Reader) Read(dir string, kind domain.ManifestKind) (*domain.Manifest, error) {
	name := kind.FileName()
	if name == "" {
		return nil, fmt.Errorf("%w: unknown manifest kind %q", domain.ErrInvalidInput, kind)
	}

	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	m := &domain.Manifest{Kind: kind, Path: path}

	switch kind {
	case domain.ManifestCargo:
		err = parseCargo(data, m)
	case domain.ManifestPyProject:
		err = parsePyProject(data, m)
	case domain.ManifestNpm:
		err = parsePackageJSON(data, m)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// Detect returns the first manifest present in dir.
func (r *Reader) Detect(dir string) (*domain.Manifest, error) {
	for _, kind := range domain.AllManifestKinds() {
		m, err := r.Read(dir, kind)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		return m, err
	}
	return nil, fmt.Errorf("%w: no manifest in %s", domain.ErrNotFound, dir)
}

func parseCargo(data []byte, m *domain.Manifest) error {
	var f cargoFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return err
	}
	m.Name = f.Package.Name

	// `version.workspace = true` inherits from [workspace.package].
	if v, ok := f.Package.Version.(string); ok {
		m.Version = v
	} else {
		m.Version = f.Workspace.Package.Version
	}
	return nil
}

func parsePyProject(data []byte, m *domain.Manifest) error {
	var f pyprojectFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return err
	}
	m.Name = f.Tool.Poetry.Name
	m.Version = f.Tool.Poetry.Version
	if m.Name == "" {
		m.Name = f.Project.Name
	}
	if m.Version == "" {
		m.Version = f.Project.Version
	}
	return nil
}

func parsePackageJSON(data []byte, m *domain.Manifest) error {
	if !gjson.ValidBytes(data) {
		return errors.New("invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	m.Name = doc.Get("name").String()
	m.Version = doc.Get("version").String()
	m.Scripts = make(map[string]string)
	doc.Get("scripts").ForEach(func(key, value gjson.Result) bool {
		m.Scripts[key.String()] = value.String()
		return true
	})
	return nil
}
