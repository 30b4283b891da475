package providers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
)

// Ensure Django implements the interface.
var _ driven.Provider = (*Django)(nil)

// DjangoDumpFile is the fixture file written by dumpdata and read by loaddata.
const DjangoDumpFile = "dump.json"

// Django handles Django sites managed by poetry.
//
// A project qualifies when pyproject.toml exists, django-admin is installed
// in the poetry environment and {src}/{src}/wsgi.py exists, where src is the
// project name with dashes replaced by underscores. manage.py runs from
// {src} with DJANGO_SETTINGS_MODULE={src}.settings and DJANGO_LOCAL=1 set
// on the child only.
type Django struct {
	toolchain
}

// NewDjango creates the django provider.
func NewDjango(deps Deps) *Django {
	d := &Django{toolchain{
		name:     "django",
		tool:     "poetry",
		manifest: domain.ManifestPyProject,
		deps:     deps,
	}}
	d.prepare = d.scope
	d.steps = map[domain.CommandKind]step{
		domain.CommandRun:  {args: manageArgs("runserver"), when: d.IsProject},
		domain.CommandLint: {args: manageArgs("check"), when: d.IsProject},
	}
	return d
}

func manageArgs(args ...string) []string {
	return append([]string{"run", "python", "manage.py"}, args...)
}

// IsProject reports whether the directory holds a Django site.
func (d *Django) IsProject(ctx context.Context) bool {
	if !d.present() {
		return false
	}
	src := d.srcDir()
	if src == "" {
		return false
	}
	if !d.deps.Probe.FileExists(filepath.Join(d.deps.Dir, src, src, "wsgi.py")) {
		return false
	}
	return d.hasSubTool("django-admin")(ctx)
}

// CollectStatic gathers static files for deployment.
func (d *Django) CollectStatic(ctx context.Context) error {
	return d.manage(ctx, "collectstatic")
}

// DumpData exports the database to DjangoDumpFile. Development only.
func (d *Django) DumpData(ctx context.Context) error {
	return d.manage(ctx, "dumpdata", "--output", DjangoDumpFile)
}

// LoadData imports DjangoDumpFile into the database. Development only.
func (d *Django) LoadData(ctx context.Context) error {
	return d.manage(ctx, "loaddata", DjangoDumpFile)
}

func (d *Django) manage(ctx context.Context, args ...string) error {
	if !d.IsProject(ctx) {
		return fmt.Errorf("%w: %s is not a Django project", domain.ErrNoProviderMatched, d.deps.Dir)
	}
	return d.run(ctx, driven.Invocation{Tool: d.tool, Args: manageArgs(args...)})
}

// scope points the invocation at the site package.
func (d *Django) scope(inv *driven.Invocation) error {
	src := d.srcDir()
	if src == "" {
		return fmt.Errorf("%w: pyproject.toml declares no name", domain.ErrInvalidInput)
	}
	inv.Dir = filepath.Join(d.deps.Dir, src)
	inv.Env = map[string]string{
		"DJANGO_SETTINGS_MODULE": src + ".settings",
		"DJANGO_LOCAL":           "1",
	}
	return nil
}

func (d *Django) srcDir() string {
	m := d.readManifest()
	if m == nil {
		return ""
	}
	return strings.ReplaceAll(m.Name, "-", "_")
}
