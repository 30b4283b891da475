package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

// Marks used in reports.
const (
	MarkOK     = "✓"
	MarkFailed = "✗"
	MarkNone   = "·"
)

// Event renders a progress line for a dispatch event, or "" for events
// that need no line.
func (s *Styles) Event(ev domain.DispatchEvent) string {
	switch ev.Status {
	case domain.DispatchStarted:
		return s.Header.Render(fmt.Sprintf("==> %s: %s", ev.Provider, ev.Request))
	case domain.DispatchFailed:
		return s.Error.Render(fmt.Sprintf("%s %s failed: %v", MarkFailed, ev.Provider, ev.Err))
	default:
		return ""
	}
}

// Report renders the per-provider summary of a dispatch.
func (s *Styles) Report(r *domain.DispatchReport) string {
	if !r.Handled() {
		return s.Warning.Render(fmt.Sprintf("no provider handled %s", r.Request))
	}

	var b strings.Builder
	for _, res := range r.Results {
		mark := s.Success.Render(MarkOK)
		detail := s.Muted.Render(res.Duration.Round(time.Millisecond).String())
		if !res.OK() {
			mark = s.Error.Render(MarkFailed)
			detail = s.Error.Render(res.Err.Error())
		}
		fmt.Fprintf(&b, "%s %s %s\n", mark, s.Label.Render(res.Provider), detail)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Plan renders the providers a dry run would execute.
func (s *Styles) Plan(req domain.Request, providers []string) string {
	if len(providers) == 0 {
		return s.Warning.Render(fmt.Sprintf("no provider handles %s", req))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.Header.Render(fmt.Sprintf("%s would run:", req)))
	for _, name := range providers {
		fmt.Fprintf(&b, "  %s %s\n", MarkNone, name)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Matrix renders which providers support which commands.
// supported maps a command to the providers that support it.
func (s *Styles) Matrix(kinds []domain.CommandKind, providers []string, supported map[domain.CommandKind][]string) string {
	var b strings.Builder

	b.WriteString(s.Label.Render(""))
	for _, p := range providers {
		fmt.Fprintf(&b, " %s", s.Label.Render(p))
	}
	b.WriteString("\n")

	for _, kind := range kinds {
		handled := make(map[string]bool, len(supported[kind]))
		for _, p := range supported[kind] {
			handled[p] = true
		}
		b.WriteString(s.Label.Render(kind.String()))
		for _, p := range providers {
			cell := s.Muted.Render(MarkNone)
			if handled[p] {
				cell = s.Success.Render(MarkOK)
			}
			fmt.Fprintf(&b, " %s", s.Label.Render(cell))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Versions renders a version state, one line per environment.
func (s *Styles) Versions(state *domain.VersionState) string {
	var b strings.Builder
	for _, env := range domain.AllDockerEnvs() {
		pair := state.Pair(env)
		fmt.Fprintf(&b, "%s %s %s %s\n",
			s.Label.Render(env.String()),
			orNone(pair.Old),
			s.Muted.Render("->"),
			orNone(pair.New),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

func orNone(v string) string {
	if v == "" {
		return "(none)"
	}
	return v
}
