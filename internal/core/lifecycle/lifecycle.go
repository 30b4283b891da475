package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

// ErrUnsupported is returned when a docker action is invoked on an
// implementer that does not support it for the environment.
var ErrUnsupported = errors.New("docker action unsupported")

// Lifecycle is the primitive docker sub-protocol.
type Lifecycle interface {
	CanBuild(env domain.DockerEnv) bool
	Build(ctx context.Context, env domain.DockerEnv) error

	CanRun(env domain.DockerEnv) bool
	Run(ctx context.Context, env domain.DockerEnv) error

	CanStop(env domain.DockerEnv) bool
	Stop(ctx context.Context, env domain.DockerEnv) error

	// NewTag returns the image tag of the current version.
	NewTag(env domain.DockerEnv) (string, error)

	// OldTag returns the image tag of the previous version.
	OldTag(env domain.DockerEnv) (string, error)
}

// Restarter replaces the derived restart wholesale.
type Restarter interface {
	CanRestart(env domain.DockerEnv) bool
	Restart(ctx context.Context, env domain.DockerEnv) error
}

// Upgrader provides an upgrade. The composition (typically build new tag,
// stop old name, run new tag) is the implementer's policy.
type Upgrader interface {
	CanUpgrade(env domain.DockerEnv) bool
	Upgrade(ctx context.Context, env domain.DockerEnv) error
}

// CanRestart reports whether restart applies: the override if present,
// otherwise CanStop AND CanRun.
func CanRestart(l Lifecycle, env domain.DockerEnv) bool {
	if r, ok := l.(Restarter); ok {
		return r.CanRestart(env)
	}
	return l.CanStop(env) && l.CanRun(env)
}

// Restart runs the override if present, otherwise Stop then Run.
// Stop completes before Run starts. A failed stop does not prevent the run
// attempt; both failures are returned together.
func Restart(ctx context.Context, l Lifecycle, env domain.DockerEnv) error {
	if r, ok := l.(Restarter); ok {
		return r.Restart(ctx, env)
	}
	if !CanRestart(l, env) {
		return fmt.Errorf("%w: restart %s", ErrUnsupported, env)
	}

	var errs *multierror.Error
	if err := l.Stop(ctx, env); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("stop: %w", err))
	}
	if err := l.Run(ctx, env); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("run: %w", err))
	}
	return errs.ErrorOrNil()
}

// CanUpgrade reports whether upgrade applies. False unless l is an Upgrader.
func CanUpgrade(l Lifecycle, env domain.DockerEnv) bool {
	if u, ok := l.(Upgrader); ok {
		return u.CanUpgrade(env)
	}
	return false
}

// Upgrade runs the implementer's upgrade. A no-op for non-Upgraders.
func Upgrade(ctx context.Context, l Lifecycle, env domain.DockerEnv) error {
	if u, ok := l.(Upgrader); ok {
		return u.Upgrade(ctx, env)
	}
	return nil
}

// NewName derives the container name of the current version from NewTag.
func NewName(l Lifecycle, env domain.DockerEnv) (string, error) {
	tag, err := l.NewTag(env)
	if err != nil {
		return "", err
	}
	return domain.DockerName(tag), nil
}

// OldName derives the container name of the previous version from OldTag.
func OldName(l Lifecycle, env domain.DockerEnv) (string, error) {
	tag, err := l.OldTag(env)
	if err != nil {
		return "", err
	}
	return domain.DockerName(tag), nil
}

// Can is the capability predicate for one docker action.
func Can(l Lifecycle, action domain.DockerAction, env domain.DockerEnv) bool {
	switch action {
	case domain.DockerBuild:
		return l.CanBuild(env)
	case domain.DockerRun:
		return l.CanRun(env)
	case domain.DockerStop:
		return l.CanStop(env)
	case domain.DockerRestart:
		return CanRestart(l, env)
	case domain.DockerUpgrade:
		return CanUpgrade(l, env)
	default:
		return false
	}
}

// Do performs one docker action.
func Do(ctx context.Context, l Lifecycle, action domain.DockerAction, env domain.DockerEnv) error {
	switch action {
	case domain.DockerBuild:
		return l.Build(ctx, env)
	case domain.DockerRun:
		return l.Run(ctx, env)
	case domain.DockerStop:
		return l.Stop(ctx, env)
	case domain.DockerRestart:
		return Restart(ctx, l, env)
	case domain.DockerUpgrade:
		return Upgrade(ctx, l, env)
	default:
		return fmt.Errorf("%w: unknown docker action %q", domain.ErrInvalidInput, action)
	}
}
