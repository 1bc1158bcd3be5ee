// ABOUTME: Interaction MCP tool handlers
// ABOUTME: Implements list_interactions, log_interaction, and delete_interaction
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/models"
)

type InteractionHandlers struct {
	client *client.Client
}

func NewInteractionHandlers(c *client.Client) *InteractionHandlers {
	return &InteractionHandlers{client: c}
}

type InteractionOutput struct {
	ID        string `json:"id"`
	ContactID string `json:"contact_id"`
	Type      string `json:"type"`
	Date      string `json:"date"`
	Notes     string `json:"notes"`
	Duration  string `json:"duration,omitempty"`
}

type ListInteractionsInput struct {
	ContactID string `json:"contact_id,omitempty" jsonschema:"Only this contact's interactions; empty lists all"`
}

type ListInteractionsOutput struct {
	Interactions []InteractionOutput `json:"interactions"`
}

func (h *InteractionHandlers) ListInteractions(ctx context.Context, _ *mcp.CallToolRequest, input ListInteractionsInput) (*mcp.CallToolResult, ListInteractionsOutput, error) {
	var interactions []models.Interaction
	var err error
	if input.ContactID == "" {
		interactions, err = h.client.ListInteractions(ctx)
	} else {
		interactions, err = h.client.ContactInteractions(ctx, input.ContactID)
	}
	if err != nil {
		return nil, ListInteractionsOutput{}, fmt.Errorf("failed to list interactions: %w", err)
	}

	result := make([]InteractionOutput, len(interactions))
	for i, in := range interactions {
		result[i] = interactionToOutput(in)
	}
	return nil, ListInteractionsOutput{Interactions: result}, nil
}

type LogInteractionInput struct {
	ContactID string `json:"contact_id" jsonschema:"Contact ID (required)"`
	Type      string `json:"type,omitempty" jsonschema:"meeting, call, email or message (default meeting)"`
	Date      string `json:"date" jsonschema:"Date as YYYY-MM-DD (required)"`
	Notes     string `json:"notes" jsonschema:"What was discussed (required)"`
	Duration  string `json:"duration,omitempty" jsonschema:"Free text, e.g. 30min"`
}

func (h *InteractionHandlers) LogInteraction(ctx context.Context, _ *mcp.CallToolRequest, input LogInteractionInput) (*mcp.CallToolResult, InteractionOutput, error) {
	if input.ContactID == "" {
		return nil, InteractionOutput{}, fmt.Errorf("contact_id is required")
	}

	interaction, err := h.client.AddInteraction(ctx, input.ContactID, models.InteractionInput{
		Type:     input.Type,
		Date:     input.Date,
		Notes:    input.Notes,
		Duration: input.Duration,
	})
	if err != nil {
		return nil, InteractionOutput{}, err
	}
	return nil, interactionToOutput(*interaction), nil
}

func (h *InteractionHandlers) DeleteInteraction(ctx context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}
	if err := h.client.DeleteInteraction(ctx, input.ID, confirmFlag(input.Confirm)); err != nil {
		return nil, DeleteOutput{}, deleteError(err)
	}
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}

func interactionToOutput(in models.Interaction) InteractionOutput {
	return InteractionOutput{
		ID:        in.ID,
		ContactID: in.ContactID,
		Type:      string(in.Type.Normalize()),
		Date:      in.Date.String(),
		Notes:     in.Notes,
		Duration:  in.Duration,
	}
}
