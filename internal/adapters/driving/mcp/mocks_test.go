package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

// mockDispatcher implements driving.Dispatcher for testing.
type mockDispatcher struct {
	report    *domain.DispatchReport
	err       error
	plan      []string
	providers []string
	requests  []domain.Request
}

func (m *mockDispatcher) Dispatch(_ context.Context, req domain.Request) (*domain.DispatchReport, error) {
	m.requests = append(m.requests, req)
	if m.report == nil {
		return &domain.DispatchReport{Request: req}, fmt.Errorf("%w for %q", domain.ErrNoProviderMatched, req.String())
	}
	return m.report, m.err
}

func (m *mockDispatcher) Plan(_ context.Context, req domain.Request) ([]string, error) {
	m.requests = append(m.requests, req)
	return m.plan, m.err
}

func (m *mockDispatcher) Providers() []string {
	return m.providers
}

// mockVersionService implements driving.VersionService for testing.
type mockVersionService struct {
	state *domain.VersionState
}

func (m *mockVersionService) Bump(env domain.DockerEnv, v string) (*domain.VersionState, error) {
	m.state = m.state.Bump(env, v)
	return m.state, nil
}

func (m *mockVersionService) State() *domain.VersionState { return m.state }
func (m *mockVersionService) Path() string                { return "version.json" }

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
