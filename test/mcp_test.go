//go:build integration

package test

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type secretTransport struct {
	secret string
	base   http.RoundTripper
}

func (st secretTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-MCP-Secret", st.secret)
	return st.base.RoundTrip(req)
}

func (s *IntegrationTestSuite) connectMCP(ctx context.Context, secret string) (*mcp.ClientSession, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: "fitstats-integration", Version: "v0.0.1"}, nil)
	return client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: serverEndpoint + "/mcp",
		HTTPClient: &http.Client{
			Transport: secretTransport{secret: secret, base: http.DefaultTransport},
		},
	}, nil)
}

func (s *IntegrationTestSuite) TestMCP() {
	t := s.T()
	ctx := context.Background()

	_, err := s.connectMCP(ctx, "wrong-secret")
	require.Error(t, err)

	cs, err := s.connectMCP(ctx, testMCPSecret)
	require.NoError(t, err)
	defer cs.Close()

	tools, err := cs.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)
	toolNames := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		toolNames = append(toolNames, tool.Name)
	}
	assert.Contains(t, toolNames, "get_gymstats_schema")
	assert.Contains(t, toolNames, "get_active_workout")
	assert.Contains(t, toolNames, "get_e1rm_chart")

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name: "get_gymstats_schema",
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	schemaText, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, schemaText.Text, "exercise_set")

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "list_exercises",
		Arguments: map[string]any{"user_id": "mcp-user"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	listText, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, listText.Text, "back-squat")
}
