package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

// CommandInput selects a command for the dispatch and plan tools.
type CommandInput struct {
	Command string   `json:"command" jsonschema:"the command to run: build, clean, format, lint, outdated, run, update, test, sync, lock, install, publish, bump or docker"`
	Args    []string `json:"args,omitempty" jsonschema:"extra arguments passed to the delegated tool"`
	Env     string   `json:"env,omitempty" jsonschema:"target environment for bump and docker: dev, test or prod"`
	Action  string   `json:"action,omitempty" jsonschema:"docker action: build, run, stop, restart or upgrade"`
}

// DispatchOutput is the output schema for the dispatch tool.
type DispatchOutput struct {
	Command   string            `json:"command"`
	Succeeded bool              `json:"succeeded"`
	Results   []ProviderOutcome `json:"results"`
}

// ProviderOutcome is one provider's result.
type ProviderOutcome struct {
	Provider   string `json:"provider"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// PlanOutput is the output schema for the plan tool.
type PlanOutput struct {
	Command   string   `json:"command"`
	Providers []string `json:"providers"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "dispatch",
		Description: "Run a project command on every applicable toolchain (publish is refused)",
	}, s.handleDispatch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "plan",
		Description: "List the toolchains a command would run, without running it",
	}, s.handlePlan)
}

// handleDispatch handles the dispatch tool invocation.
// Provider failures are reported in the output, not as a tool error.
// Publishing needs a terminal and is always refused.
func (s *Server) handleDispatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CommandInput,
) (*mcp.CallToolResult, DispatchOutput, error) {
	req, err := toRequest(input)
	if err != nil {
		return nil, DispatchOutput{}, err
	}
	if req.Kind == domain.CommandPublish {
		return nil, DispatchOutput{}, fmt.Errorf("%w: publish must be run from a terminal", domain.ErrNotInteractive)
	}

	report, err := s.ports.Dispatcher.Dispatch(ctx, req)
	if !report.Handled() {
		if err == nil {
			err = fmt.Errorf("%w for %q", domain.ErrNoProviderMatched, req.String())
		}
		return nil, DispatchOutput{}, err
	}

	output := DispatchOutput{
		Command:   req.String(),
		Succeeded: report.Succeeded(),
		Results:   make([]ProviderOutcome, len(report.Results)),
	}
	for i, res := range report.Results {
		output.Results[i] = ProviderOutcome{
			Provider:   res.Provider,
			OK:         res.OK(),
			DurationMS: res.Duration.Milliseconds(),
		}
		if res.Err != nil {
			output.Results[i].Error = res.Err.Error()
		}
	}

	if errors.Is(err, domain.ErrToolMissing) {
		return nil, output, err
	}
	return nil, output, nil
}

// handlePlan handles the plan tool invocation.
func (s *Server) handlePlan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CommandInput,
) (*mcp.CallToolResult, PlanOutput, error) {
	req, err := toRequest(input)
	if err != nil {
		return nil, PlanOutput{}, err
	}

	names, err := s.ports.Dispatcher.Plan(ctx, req)
	if err != nil {
		return nil, PlanOutput{}, err
	}
	if names == nil {
		names = []string{}
	}
	return nil, PlanOutput{Command: req.String(), Providers: names}, nil
}

// toRequest validates tool input into a domain request.
func toRequest(input CommandInput) (domain.Request, error) {
	kind, err := domain.ParseCommandKind(input.Command)
	if err != nil {
		return domain.Request{}, err
	}

	req := domain.Request{Kind: kind, Args: input.Args}
	if input.Env != "" {
		if req.Env, err = domain.ParseDockerEnv(input.Env); err != nil {
			return domain.Request{}, err
		}
	}
	if input.Action != "" {
		if req.Action, err = domain.ParseDockerAction(input.Action); err != nil {
			return domain.Request{}, err
		}
	}
	return req, req.Validate()
}
