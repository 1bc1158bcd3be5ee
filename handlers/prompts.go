// ABOUTME: MCP prompt handlers for relationship follow-up workflows
// ABOUTME: Builds contact-summary and follow-up-suggestions prompts from live data
package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/engagement"
)

// recentInteractionLimit caps how much history goes into a prompt.
const recentInteractionLimit = 10

type PromptHandlers struct {
	client *client.Client
	now    func() time.Time
}

func NewPromptHandlers(c *client.Client, now func() time.Time) *PromptHandlers {
	return &PromptHandlers{client: c, now: nowFunc(now)}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "contact-summary":
		return h.contactSummary(ctx, request.Params.Arguments)
	case "follow-up-suggestions":
		return h.followUpSuggestions(ctx)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) contactSummary(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	contactID := args["contact_id"]
	if contactID == "" {
		return nil, fmt.Errorf("contact_id is required")
	}

	contact, err := findContact(ctx, h.client, contactID)
	if err != nil {
		return nil, err
	}

	summary, interactions, err := h.client.ContactEngagement(ctx, contactID, h.now())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interactions: %w", err)
	}

	var text strings.Builder
	text.WriteString("Please summarize my relationship with this contact:\n\n")
	fmt.Fprintf(&text, "Name: %s\n", contact.Name)
	fmt.Fprintf(&text, "Email: %s\n", contact.Email)
	if contact.Company != "" {
		fmt.Fprintf(&text, "Company: %s\n", contact.Company)
	}
	if contact.Role != "" {
		fmt.Fprintf(&text, "Role: %s\n", contact.Role)
	}
	if len(contact.Tags) > 0 {
		fmt.Fprintf(&text, "Tags: %s\n", strings.Join(contact.Tags, ", "))
	}
	fmt.Fprintf(&text, "\nInteractions: %d (last: %s, %s)\n", summary.Count, summary.LastDateLabel(), summary.BadgeLabel())

	if len(interactions) > 0 {
		text.WriteString("\nRecent history:\n")
		for i, in := range interactions {
			if i == recentInteractionLimit {
				break
			}
			fmt.Fprintf(&text, "- %s %s: %s\n", in.Date.String(), in.Type.Label(), in.Notes)
		}
	}

	text.WriteString("\nHighlight open threads and suggest a next step.")

	return promptResult("Relationship summary for "+contact.Name, text.String()), nil
}

func (h *PromptHandlers) followUpSuggestions(ctx context.Context) (*mcp.GetPromptResult, error) {
	contacts, err := h.client.ListContacts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	interactions, err := h.client.ListInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interactions: %w", err)
	}

	followups := engagement.Followups(contacts, interactions, h.now())

	var text strings.Builder
	if len(followups) == 0 {
		text.WriteString("Every contact has been reached in the last 30 days. ")
		text.WriteString("Suggest ways to deepen the strongest relationships.")
	} else {
		text.WriteString("These contacts have gone quiet and need a follow-up:\n\n")
		for _, f := range followups {
			fmt.Fprintf(&text, "- %s", f.Contact.Name)
			if f.Contact.Company != "" {
				fmt.Fprintf(&text, " (%s)", f.Contact.Company)
			}
			fmt.Fprintf(&text, ": %s, last contact %s\n", f.Summary.BadgeLabel(), f.Summary.LastDateLabel())
		}
		text.WriteString("\nFor each one, draft a short personal message to reconnect.")
	}

	return promptResult("Follow-up suggestions", text.String()), nil
}

func promptResult(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
