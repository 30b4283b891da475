package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/st-cli/internal/core/domain"
)

func TestServer_handleProvidersResource(t *testing.T) {
	server, err := NewServer(&Ports{Dispatcher: &mockDispatcher{providers: []string{"cargo", "docker"}}})
	require.NoError(t, err)

	result, err := server.handleProvidersResource(context.Background(), makeReadResourceRequest("st://providers"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.JSONEq(t, `["cargo", "docker"]`, result.Contents[0].Text)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
}

func TestServer_handleVersionsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns state", func(t *testing.T) {
		versions := &mockVersionService{state: domain.DefaultVersionState().Bump(domain.EnvDev, "1.0.0")}
		server, err := NewServer(&Ports{Dispatcher: &mockDispatcher{}, Versions: versions})
		require.NoError(t, err)

		result, err := server.handleVersionsResource(ctx, makeReadResourceRequest("st://versions"))

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"dev": {"old": "", "new": "1.0.0"},
			"test": {"old": "", "new": ""},
			"prod": {"old": "", "new": ""}
		}`, result.Contents[0].Text)
	})

	t.Run("not found without version service", func(t *testing.T) {
		server, err := NewServer(&Ports{Dispatcher: &mockDispatcher{}})
		require.NoError(t, err)

		_, err = server.handleVersionsResource(ctx, makeReadResourceRequest("st://versions"))

		assert.Error(t, err)
	})
}
