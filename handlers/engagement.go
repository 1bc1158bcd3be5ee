// ABOUTME: Engagement MCP tool handlers
// ABOUTME: Per-contact staleness, the fleet dashboard, and the follow-up list
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/engagement"
	"github.com/harperreed/connecthub/models"
)

type EngagementHandlers struct {
	client *client.Client
	now    func() time.Time
}

func NewEngagementHandlers(c *client.Client, now func() time.Time) *EngagementHandlers {
	return &EngagementHandlers{client: c, now: nowFunc(now)}
}

type EngagementOutput struct {
	Count     int    `json:"count"`
	LastDate  string `json:"last_date,omitempty"`
	DaysSince *int   `json:"days_since,omitempty"`
	Tier      string `json:"tier"`
	Badge     string `json:"badge"`
}

type ContactEngagementInput struct {
	ContactID string `json:"contact_id" jsonschema:"Contact ID (required)"`
}

type ContactEngagementOutput struct {
	Contact       ContactOutput    `json:"contact"`
	Engagement    EngagementOutput `json:"engagement"`
	NeedsFollowUp bool             `json:"needs_follow_up"`
}

func (h *EngagementHandlers) ContactEngagement(ctx context.Context, _ *mcp.CallToolRequest, input ContactEngagementInput) (*mcp.CallToolResult, ContactEngagementOutput, error) {
	if input.ContactID == "" {
		return nil, ContactEngagementOutput{}, fmt.Errorf("contact_id is required")
	}

	contact, err := findContact(ctx, h.client, input.ContactID)
	if err != nil {
		return nil, ContactEngagementOutput{}, err
	}

	summary, _, err := h.client.ContactEngagement(ctx, contact.ID, h.now())
	if err != nil {
		return nil, ContactEngagementOutput{}, fmt.Errorf("failed to summarize engagement: %w", err)
	}

	return nil, ContactEngagementOutput{
		Contact:       contactToOutput(*contact),
		Engagement:    summaryToOutput(summary),
		NeedsFollowUp: engagement.NeedsFollowUp(summary),
	}, nil
}

type DashboardInput struct {
	Query string `json:"query,omitempty" jsonschema:"Restrict the dashboard to contacts matching this search"`
}

type DashboardOutput struct {
	TotalContacts     int                    `json:"total_contacts"`
	NeedFollowUp      int                    `json:"need_follow_up"`
	TotalInteractions int                    `json:"total_interactions"`
	Contacts          []ContactEngagementRow `json:"contacts"`
}

type ContactEngagementRow struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Engagement EngagementOutput `json:"engagement"`
}

func (h *EngagementHandlers) EngagementDashboard(ctx context.Context, _ *mcp.CallToolRequest, input DashboardInput) (*mcp.CallToolResult, DashboardOutput, error) {
	contacts, err := h.client.ListContacts(ctx, input.Query)
	if err != nil {
		return nil, DashboardOutput{}, fmt.Errorf("failed to fetch contacts: %w", err)
	}

	dash, err := h.client.Dashboard(ctx, contacts, h.now())
	if err != nil {
		return nil, DashboardOutput{}, fmt.Errorf("failed to build dashboard: %w", err)
	}

	return nil, DashboardOutput{
		TotalContacts:     dash.Fleet.Total,
		NeedFollowUp:      dash.Fleet.NeedFollowUp,
		TotalInteractions: dash.Fleet.TotalInteractions,
		Contacts:          toRows(dash.Engagements),
	}, nil
}

type ListFollowupsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of contacts (default all)"`
}

type ListFollowupsOutput struct {
	Followups []ContactEngagementRow `json:"followups"`
}

func (h *EngagementHandlers) ListFollowups(ctx context.Context, _ *mcp.CallToolRequest, input ListFollowupsInput) (*mcp.CallToolResult, ListFollowupsOutput, error) {
	followups, err := h.followups(ctx)
	if err != nil {
		return nil, ListFollowupsOutput{}, err
	}
	if input.Limit > 0 && len(followups) > input.Limit {
		followups = followups[:input.Limit]
	}
	return nil, ListFollowupsOutput{Followups: toRows(followups)}, nil
}

func (h *EngagementHandlers) followups(ctx context.Context) ([]models.ContactEngagement, error) {
	contacts, err := h.client.ListContacts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	interactions, err := h.client.ListInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interactions: %w", err)
	}
	return engagement.Followups(contacts, interactions, h.now()), nil
}

func summaryToOutput(s models.EngagementSummary) EngagementOutput {
	out := EngagementOutput{
		Count:     s.Count,
		DaysSince: s.DaysSince,
		Tier:      string(s.Tier),
		Badge:     s.BadgeLabel(),
	}
	if s.LastDate != nil {
		out.LastDate = s.LastDateLabel()
	}
	return out
}

func toRows(engagements []models.ContactEngagement) []ContactEngagementRow {
	rows := make([]ContactEngagementRow, len(engagements))
	for i, e := range engagements {
		rows[i] = ContactEngagementRow{
			ID:         e.Contact.ID,
			Name:       e.Contact.Name,
			Engagement: summaryToOutput(e.Summary),
		}
	}
	return rows
}
