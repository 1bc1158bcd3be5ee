// ABOUTME: MCP server subcommand
// ABOUTME: Exposes contacts, interactions, and engagement to agents over stdio
package cli

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/handlers"
)

// NewMCPServer builds the MCP server with every tool, resource, and prompt registered.
func NewMCPServer(c *client.Client, version string, now func() time.Time) *mcp.Server {
	contactHandlers := handlers.NewContactHandlers(c)
	interactionHandlers := handlers.NewInteractionHandlers(c)
	engagementHandlers := handlers.NewEngagementHandlers(c, now)
	vizHandlers := handlers.NewVizHandlers(c, now)
	resourceHandlers := handlers.NewResourceHandlers(c, now)
	promptHandlers := handlers.NewPromptHandlers(c, now)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "connecthub",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "List contacts, or search them by name, company, role, or tag",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact (name and email are required)",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_contact",
		Description: "Delete a contact and all of its interactions. Requires confirm: true",
	}, contactHandlers.DeleteContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_interactions",
		Description: "List interactions, newest first, for one contact or for everyone",
	}, interactionHandlers.ListInteractions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_interaction",
		Description: "Log a meeting, call, email, or message with a contact",
	}, interactionHandlers.LogInteraction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_interaction",
		Description: "Delete a logged interaction. Requires confirm: true",
	}, interactionHandlers.DeleteInteraction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "contact_engagement",
		Description: "Interaction count, last contact date, and staleness tier for one contact",
	}, engagementHandlers.ContactEngagement)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "engagement_dashboard",
		Description: "Fleet statistics and per-contact engagement, most neglected first",
	}, engagementHandlers.EngagementDashboard)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_followups",
		Description: "Contacts not reached in over 30 days, never-contacted first",
	}, engagementHandlers.ListFollowups)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "engagement_graph",
		Description: "Engagement graph in DOT: one node per staleness tier, contacts linked to their tier",
	}, vizHandlers.EngagementGraph)

	server.AddResource(&mcp.Resource{
		URI:         "connecthub://contacts",
		Name:        "contacts",
		Description: "Every contact as JSON",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "connecthub://contacts/{id}",
		Name:        "contact",
		Description: "One contact with its engagement and interaction history",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         "connecthub://dashboard",
		Name:        "dashboard",
		Description: "Fleet statistics and per-contact engagement",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddPrompt(&mcp.Prompt{
		Name:        "contact-summary",
		Description: "Summarize the relationship with one contact",
		Arguments: []*mcp.PromptArgument{
			{Name: "contact_id", Description: "Contact ID", Required: true},
		},
	}, promptHandlers.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "follow-up-suggestions",
		Description: "Draft reconnect messages for contacts who have gone quiet",
	}, promptHandlers.GetPrompt)

	return server
}

// MCPCommand starts the MCP server on stdio
func MCPCommand(ctx context.Context, c *client.Client, log zerolog.Logger, version string) error {
	log.Info().Str("api_url", c.BaseURL()).Msg("starting MCP server")
	return NewMCPServer(c, version, time.Now).Run(ctx, &mcp.StdioTransport{})
}
