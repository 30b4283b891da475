// Package process runs external tools as child processes.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
	"github.com/custodia-labs/st-cli/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.CommandRunner = (*Runner)(nil)

// Runner executes invocations with inherited standard streams.
// The working directory and environment of the st process itself are never
// modified; both are applied to the child only.
type Runner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option configures a Runner.
type Option func(*Runner)

// WithStdin overrides the child's standard input.
func WithStdin(r io.Reader) Option {
	return func(rn *Runner) { rn.stdin = r }
}

// WithStdout overrides the child's standard output.
func WithStdout(w io.Writer) Option {
	return func(rn *Runner) { rn.stdout = w }
}

// WithStderr overrides the child's standard error.
func WithStderr(w io.Writer) Option {
	return func(rn *Runner) { rn.stderr = w }
}

// NewRunner creates a runner attached to the process's standard streams.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LookPath resolves a tool on PATH.
func (r *Runner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrToolMissing, name, err)
	}
	return path, nil
}

// Run executes inv and waits for it to finish.
// A tool that cannot be found yields domain.ErrToolMissing; a non-zero exit
// yields domain.ErrToolFailed.
func (r *Runner) Run(ctx context.Context, inv driven.Invocation) error {
	bin, err := r.LookPath(inv.Tool)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, bin, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Env = mergeEnv(os.Environ(), inv.Env)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	if inv.Quiet {
		cmd.Stdin = nil
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	}

	logger.Info("$ %s", inv.String())

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: %s exited with status %d", domain.ErrToolFailed, inv.Tool, exitErr.ExitCode())
		}
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrToolMissing, inv.Tool)
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrToolFailed, inv.Tool, err)
	}
	return nil
}

// mergeEnv overlays extra onto base, replacing existing keys in place.
func mergeEnv(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}

	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(extra))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if val, ok := extra[key]; ok {
			out = append(out, key+"="+val)
			seen[key] = true
			continue
		}
		out = append(out, kv)
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+extra[k])
	}
	return out
}
