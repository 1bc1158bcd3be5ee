// ABOUTME: MCP resource handlers exposing contacts and engagement as JSON
// ABOUTME: Serves connecthub://contacts, connecthub://contacts/{id}, and connecthub://dashboard
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/connecthub/client"
)

const resourceScheme = "connecthub://"

type ResourceHandlers struct {
	client *client.Client
	now    func() time.Time
}

func NewResourceHandlers(c *client.Client, now func() time.Time) *ResourceHandlers {
	return &ResourceHandlers{client: c, now: nowFunc(now)}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	switch parts[0] {
	case "contacts":
		if len(parts) == 1 || parts[1] == "" {
			return h.readAllContacts(ctx, uri)
		}
		return h.readContact(ctx, uri, parts[1])
	case "dashboard":
		return h.readDashboard(ctx, uri)
	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
}

func (h *ResourceHandlers) readAllContacts(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	contacts, err := h.client.ListContacts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	return jsonResource(uri, contacts)
}

func (h *ResourceHandlers) readContact(ctx context.Context, uri, id string) (*mcp.ReadResourceResult, error) {
	contact, err := findContact(ctx, h.client, id)
	if err != nil {
		return nil, err
	}

	summary, interactions, err := h.client.ContactEngagement(ctx, id, h.now())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interactions: %w", err)
	}

	return jsonResource(uri, map[string]any{
		"contact":      contact,
		"engagement":   summary,
		"interactions": interactions,
	})
}

func (h *ResourceHandlers) readDashboard(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	contacts, err := h.client.ListContacts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	dash, err := h.client.Dashboard(ctx, contacts, h.now())
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return jsonResource(uri, dash)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
