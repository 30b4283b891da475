package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
	"github.com/custodia-labs/st-cli/internal/core/ports/driving"
	"github.com/custodia-labs/st-cli/internal/logger"
)

// Ensure Dispatcher implements the interface.
var _ driving.Dispatcher = (*Dispatcher)(nil)

// Dispatcher fans one command out to every provider that supports it.
// Providers run sequentially in registration order so child output never
// interleaves; one dispatch runs at a time.
type Dispatcher struct {
	mu          sync.Mutex
	providers   []driven.Provider
	settings    *domain.Settings
	onEvent     func(domain.DispatchEvent)
	versions    VersionRecorder
	interactive func() bool
}

// VersionRecorder persists one version transition per bump.
type VersionRecorder interface {
	Bump(env domain.DockerEnv, version string) (*domain.VersionState, error)
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithSettings applies disabled providers and per-command extra args.
func WithSettings(settings *domain.Settings) DispatcherOption {
	return func(d *Dispatcher) {
		d.settings = settings
	}
}

// WithEventHandler registers a callback for progress events.
// It is called synchronously from Dispatch.
func WithEventHandler(fn func(domain.DispatchEvent)) DispatcherOption {
	return func(d *Dispatcher) {
		d.onEvent = fn
	}
}

// WithVersionRecorder enables bump. Providers report their manifest
// version and r records a single transition per dispatch.
func WithVersionRecorder(r VersionRecorder) DispatcherOption {
	return func(d *Dispatcher) {
		d.versions = r
	}
}

// WithInteractive sets the check publish must pass. Without it publish is
// always refused.
func WithInteractive(fn func() bool) DispatcherOption {
	return func(d *Dispatcher) {
		d.interactive = fn
	}
}

// NewDispatcher creates a dispatcher over a fixed-order provider registry.
// Disabled providers are dropped and never queried.
func NewDispatcher(providers []driven.Provider, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{}
	for _, opt := range opts {
		opt(d)
	}

	d.providers = make([]driven.Provider, 0, len(providers))
	for _, p := range providers {
		if d.settings.IsDisabled(p.Name()) {
			logger.Debug("provider %s disabled by configuration", p.Name())
			continue
		}
		d.providers = append(d.providers, p)
	}
	return d
}

// Providers returns the registered provider names in registration order.
func (d *Dispatcher) Providers() []string {
	names := make([]string, len(d.providers))
	for i, p := range d.providers {
		names[i] = p.Name()
	}
	return names
}

// Plan returns the providers that support req, without executing anything.
func (d *Dispatcher) Plan(ctx context.Context, req domain.Request) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var names []string
	for _, p := range d.providers {
		if p.Supports(ctx, req) {
			names = append(names, p.Name())
		}
	}
	return names, nil
}

// Dispatch runs req on every supporting provider.
//
// Every supporting provider's action runs exactly once, in registration
// order, regardless of earlier matches or failures. The exception is a
// missing external tool, which stops the fan-out immediately.
//
// For bump, providers that implement driven.VersionSource report their
// version instead of executing, and one transition is recorded afterwards.
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.Request) (*domain.DispatchReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	switch req.Kind {
	case domain.CommandPublish:
		if d.interactive == nil || !d.interactive() {
			return nil, fmt.Errorf("%w: publish must be run from a terminal", domain.ErrNotInteractive)
		}
	case domain.CommandBump:
		if d.versions == nil {
			return nil, fmt.Errorf("%w: version tracking not configured", domain.ErrInvalidInput)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	req = d.withExtraArgs(req)
	report := &domain.DispatchReport{Request: req}

	logger.Section("Dispatch " + req.String())

	var (
		errs     *multierror.Error
		reported []versionReport
	)
	for _, p := range d.providers {
		if !p.Supports(ctx, req) {
			logger.Debug("%s: not applicable to %s", p.Name(), req)
			continue
		}

		d.emit(domain.DispatchEvent{Provider: p.Name(), Request: req, Status: domain.DispatchStarted})

		start := time.Now()
		version, err := d.execute(ctx, p, req)
		report.Results = append(report.Results, domain.ProviderResult{
			Provider: p.Name(),
			Err:      err,
			Duration: time.Since(start),
		})

		if err != nil {
			d.emit(domain.DispatchEvent{Provider: p.Name(), Request: req, Status: domain.DispatchFailed, Err: err})
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			if errors.Is(err, domain.ErrToolMissing) {
				break
			}
			continue
		}
		if version != "" {
			reported = append(reported, versionReport{provider: p.Name(), version: version})
		}
		d.emit(domain.DispatchEvent{Provider: p.Name(), Request: req, Status: domain.DispatchSucceeded})
	}

	if !report.Handled() {
		return report, d.noProvider(ctx, req)
	}

	if len(reported) > 0 {
		if err := d.recordVersion(req.Env, reported); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	if errs != nil {
		errs.ErrorFormat = formatErrors
	}
	return report, errs.ErrorOrNil()
}

// versionReport is one provider's answer to a bump.
type versionReport struct {
	provider string
	version  string
}

// execute runs p's action. A version source answers bump with its version.
func (d *Dispatcher) execute(ctx context.Context, p driven.Provider, req domain.Request) (string, error) {
	if req.Kind == domain.CommandBump {
		if src, ok := p.(driven.VersionSource); ok {
			return src.ManifestVersion(ctx)
		}
	}
	return "", p.Execute(ctx, req)
}

// recordVersion applies the first report in registration order.
func (d *Dispatcher) recordVersion(env domain.DockerEnv, reported []versionReport) error {
	first := reported[0]
	for _, r := range reported[1:] {
		if r.version != first.version {
			logger.Warn("%s declares version %s but %s declares %s, recording %s",
				r.provider, r.version, first.provider, first.version, first.version)
		}
	}

	if _, err := d.versions.Bump(env, first.version); err != nil {
		return fmt.Errorf("record %s version: %w", env, err)
	}
	return nil
}

// noProvider builds the routing error, with any hints providers offer.
func (d *Dispatcher) noProvider(ctx context.Context, req domain.Request) error {
	err := fmt.Errorf("%w for %q", domain.ErrNoProviderMatched, req.String())

	var hints []string
	for _, p := range d.providers {
		diag, ok := p.(driven.Diagnoser)
		if !ok {
			continue
		}
		if hint := diag.Diagnose(ctx, req); hint != "" {
			hints = append(hints, p.Name()+": "+hint)
		}
	}
	if len(hints) == 0 {
		return err
	}
	return fmt.Errorf("%w (%s)", err, strings.Join(hints, "; "))
}

func (d *Dispatcher) withExtraArgs(req domain.Request) domain.Request {
	extra := d.settings.ArgsFor(req.Kind)
	if len(extra) == 0 {
		return req
	}
	args := make([]string, 0, len(req.Args)+len(extra))
	args = append(args, req.Args...)
	args = append(args, extra...)
	req.Args = args
	return req
}

func (d *Dispatcher) emit(ev domain.DispatchEvent) {
	if d.onEvent != nil {
		d.onEvent(ev)
	}
}

func formatErrors(errs []error) string {
	messages := make([]string, len(errs))
	for i, err := range errs {
		messages[i] = "Error: " + err.Error()
	}
	return strings.Join(messages, "\n")
}
