// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements find_contacts, add_contact, and delete_contact over the REST client
package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/models"
)

type ContactHandlers struct {
	client *client.Client
}

func NewContactHandlers(c *client.Client) *ContactHandlers {
	return &ContactHandlers{client: c}
}

type ContactOutput struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Company string   `json:"company,omitempty"`
	Role    string   `json:"role,omitempty"`
	Tags    []string `json:"tags"`
}

type FindContactsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Free-text search over name, company, role and tags; empty lists everyone"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
}

func (h *ContactHandlers) FindContacts(ctx context.Context, _ *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	contacts, err := h.client.ListContacts(ctx, input.Query)
	if err != nil {
		return nil, FindContactsOutput{}, fmt.Errorf("failed to find contacts: %w", err)
	}

	result := make([]ContactOutput, len(contacts))
	for i, contact := range contacts {
		result[i] = contactToOutput(contact)
	}
	return nil, FindContactsOutput{Contacts: result}, nil
}

type AddContactInput struct {
	Name    string `json:"name" jsonschema:"Contact name (required)"`
	Email   string `json:"email" jsonschema:"Contact email address (required)"`
	Company string `json:"company,omitempty" jsonschema:"Company name"`
	Role    string `json:"role,omitempty" jsonschema:"Job title or role"`
	Tags    string `json:"tags,omitempty" jsonschema:"Comma separated tags, e.g. client, active"`
}

func (h *ContactHandlers) AddContact(ctx context.Context, _ *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	contact, err := h.client.CreateContact(ctx, models.ContactInput{
		Name:    input.Name,
		Email:   input.Email,
		Company: input.Company,
		Role:    input.Role,
		Tags:    input.Tags,
	})
	if err != nil {
		return nil, ContactOutput{}, err
	}
	return nil, contactToOutput(*contact), nil
}

type DeleteInput struct {
	ID      string `json:"id" jsonschema:"ID of the record to delete"`
	Confirm bool   `json:"confirm" jsonschema:"Must be true; deletion cannot be undone"`
}

type DeleteOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func (h *ContactHandlers) DeleteContact(ctx context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}
	if err := h.client.DeleteContact(ctx, input.ID, confirmFlag(input.Confirm)); err != nil {
		return nil, DeleteOutput{}, deleteError(err)
	}
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}

// confirmFlag turns the tool's confirm argument into a Confirmer.
func confirmFlag(confirmed bool) client.Confirmer {
	if confirmed {
		return client.Confirmed
	}
	return client.Declined
}

func deleteError(err error) error {
	if errors.Is(err, client.ErrDeclined) {
		return fmt.Errorf("deletion not confirmed: set confirm to true")
	}
	return err
}

func contactToOutput(c models.Contact) ContactOutput {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return ContactOutput{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Company: c.Company,
		Role:    c.Role,
		Tags:    tags,
	}
}

// findContact resolves a contact by ID from the full list; the backend has no
// single-contact endpoint.
func findContact(ctx context.Context, c *client.Client, id string) (*models.Contact, error) {
	contacts, err := c.ListContacts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	for i := range contacts {
		if contacts[i].ID == id {
			return &contacts[i], nil
		}
	}
	return nil, fmt.Errorf("contact not found: %s", id)
}

func nowFunc(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
