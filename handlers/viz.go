// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides the engagement_graph tool for agents
package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/viz"
)

type VizHandlers struct {
	client *client.Client
	now    func() time.Time
}

func NewVizHandlers(c *client.Client, now func() time.Time) *VizHandlers {
	return &VizHandlers{client: c, now: nowFunc(now)}
}

type EngagementGraphInput struct {
	Query string `json:"query,omitempty" jsonschema:"Restrict the graph to contacts matching this search"`
}

type EngagementGraphOutput struct {
	DOTSource    string `json:"dot_source"`
	ContactCount int    `json:"contact_count"`
	EdgeCount    int    `json:"edge_count"`
}

func (h *VizHandlers) EngagementGraph(ctx context.Context, _ *mcp.CallToolRequest, input EngagementGraphInput) (*mcp.CallToolResult, EngagementGraphOutput, error) {
	contacts, err := h.client.ListContacts(ctx, input.Query)
	if err != nil {
		return nil, EngagementGraphOutput{}, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	dash, err := h.client.Dashboard(ctx, contacts, h.now())
	if err != nil {
		return nil, EngagementGraphOutput{}, fmt.Errorf("failed to fetch interactions: %w", err)
	}

	dot, err := viz.GenerateEngagementGraph(ctx, dash.Engagements)
	if err != nil {
		return nil, EngagementGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	return nil, EngagementGraphOutput{
		DOTSource:    dot,
		ContactCount: len(dash.Engagements),
		EdgeCount:    strings.Count(dot, "->"),
	}, nil
}
