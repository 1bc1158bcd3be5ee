package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/config"
	"github.com/harperreed/connecthub/db"
	"github.com/harperreed/connecthub/models"
	"github.com/harperreed/connecthub/server"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func setupTestCLI(t *testing.T) *client.Client {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	ts := httptest.NewServer(server.New(database, zerolog.Nop(), nil).Routes())
	t.Cleanup(ts.Close)

	return client.New(ts.URL + "/api")
}

func seedContact(t *testing.T, c *client.Client, name, email string) *models.Contact {
	t.Helper()
	contact, err := c.CreateContact(context.Background(), models.ContactInput{Name: name, Email: email})
	require.NoError(t, err)
	return contact
}

func seedInteraction(t *testing.T, c *client.Client, contactID, date string) *models.Interaction {
	t.Helper()
	interaction, err := c.AddInteraction(context.Background(), contactID, models.InteractionInput{Type: "call", Date: date, Notes: "checked in"})
	require.NoError(t, err)
	return interaction
}

func TestAddAndListContacts(t *testing.T) {
	c := setupTestCLI(t)
	ctx := context.Background()
	var out bytes.Buffer

	err := AddContactCommand(ctx, c, &out, []string{"--name", "Ada Lovelace", "--email", "ada@example.com", "--company", "Analytical", "--tags", "math, engines"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "✓ Contact created: Ada Lovelace")

	out.Reset()
	require.NoError(t, ListContactsCommand(ctx, c, &out, nil))
	assert.Contains(t, out.String(), "NAME")
	assert.Contains(t, out.String(), "Ada Lovelace")
	assert.Contains(t, out.String(), "math, engines")
	assert.Contains(t, out.String(), "1 contact(s)")

	out.Reset()
	require.NoError(t, ListContactsCommand(ctx, c, &out, []string{"--query", "nobody"}))
	assert.Contains(t, out.String(), `No contacts match "nobody"`)
}

func TestListContactsEmpty(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, ListContactsCommand(context.Background(), setupTestCLI(t), &out, nil))
	assert.Contains(t, out.String(), "No contacts yet")
}

func TestAddContactValidation(t *testing.T) {
	var out bytes.Buffer

	err := AddContactCommand(context.Background(), setupTestCLI(t), &out, []string{"--name", "Ada"})
	require.Error(t, err)
	assert.Equal(t, "--email is required", err.Error())
	assert.Empty(t, out.String())
}

func TestDeleteContactConfirmation(t *testing.T) {
	c := setupTestCLI(t)
	ctx := context.Background()
	ada := seedContact(t, c, "Ada Lovelace", "ada@example.com")
	var out bytes.Buffer

	require.NoError(t, DeleteContactCommand(ctx, c, &out, client.Declined, []string{ada.ID}))
	assert.Contains(t, out.String(), "Deletion cancelled")

	contacts, err := c.ListContacts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, contacts, 1)

	out.Reset()
	require.NoError(t, DeleteContactCommand(ctx, c, &out, client.Declined, []string{"--yes", ada.ID}))
	assert.Contains(t, out.String(), "✓ Contact deleted")

	contacts, err = c.ListContacts(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestDeleteContactErrors(t *testing.T) {
	c := setupTestCLI(t)
	var out bytes.Buffer

	assert.Error(t, DeleteContactCommand(context.Background(), c, &out, client.Confirmed, nil))

	err := DeleteContactCommand(context.Background(), c, &out, client.Confirmed, []string{"missing"})
	require.Error(t, err)
	assert.True(t, client.IsTransport(err))
}

func TestInteractionCommands(t *testing.T) {
	c := setupTestCLI(t)
	ctx := context.Background()
	ada := seedContact(t, c, "Ada Lovelace", "ada@example.com")
	var out bytes.Buffer

	err := LogInteractionCommand(ctx, c, &out, now, []string{"--contact", ada.ID, "--type", "email", "--notes", "sent the notes", "--duration", "5min"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "✓ Logged Email on 2025-06-15")

	out.Reset()
	require.NoError(t, ListInteractionsCommand(ctx, c, &out, now, []string{ada.ID}))
	assert.Contains(t, out.String(), "1 interaction(s), last contact: 2025-06-15 (0d)")
	assert.Contains(t, out.String(), "sent the notes")
	assert.Contains(t, out.String(), "5min")

	interactions, err := c.ContactInteractions(ctx, ada.ID)
	require.NoError(t, err)
	require.Len(t, interactions, 1)

	out.Reset()
	require.NoError(t, DeleteInteractionCommand(ctx, c, &out, client.Confirmed, []string{interactions[0].ID}))
	assert.Contains(t, out.String(), "✓ Interaction deleted")

	out.Reset()
	require.NoError(t, ListInteractionsCommand(ctx, c, &out, now, []string{ada.ID}))
	assert.Contains(t, out.String(), "last contact: Never (No contact)")
	assert.Contains(t, out.String(), "No interactions yet")
}

func TestLogInteractionValidation(t *testing.T) {
	c := setupTestCLI(t)
	ada := seedContact(t, c, "Ada Lovelace", "ada@example.com")
	var out bytes.Buffer

	err := LogInteractionCommand(context.Background(), c, &out, now, []string{"--notes", "hi"})
	assert.EqualError(t, err, "--contact is required")

	err = LogInteractionCommand(context.Background(), c, &out, now, []string{"--contact", ada.ID})
	assert.EqualError(t, err, "--notes is required")

	err = LogInteractionCommand(context.Background(), c, &out, now, []string{"--contact", ada.ID, "--notes", "hi", "--type", "fax"})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "--type must be one of"))
}

func TestFollowupsCommand(t *testing.T) {
	c := setupTestCLI(t)
	ctx := context.Background()
	ada := seedContact(t, c, "Ada Lovelace", "ada@example.com")
	grace := seedContact(t, c, "Grace Hopper", "grace@navy.mil")
	seedContact(t, c, "Linus Torvalds", "linus@example.com")
	seedInteraction(t, c, ada.ID, "2025-06-10")
	seedInteraction(t, c, grace.ID, "2025-03-01")
	var out bytes.Buffer

	require.NoError(t, FollowupsCommand(ctx, c, &out, now, nil))
	text := out.String()
	assert.NotContains(t, text, "Ada Lovelace")
	assert.Contains(t, text, "⚪ Linus Torvalds")
	assert.Contains(t, text, "🔴 Grace Hopper")
	assert.Less(t, strings.Index(text, "Linus"), strings.Index(text, "Grace"))

	out.Reset()
	require.NoError(t, FollowupsCommand(ctx, c, &out, now, []string{"--limit", "1"}))
	assert.NotContains(t, out.String(), "Grace Hopper")
}

func TestFollowupsCommandAllFresh(t *testing.T) {
	c := setupTestCLI(t)
	ada := seedContact(t, c, "Ada Lovelace", "ada@example.com")
	seedInteraction(t, c, ada.ID, "2025-06-10")
	var out bytes.Buffer

	require.NoError(t, FollowupsCommand(context.Background(), c, &out, now, nil))
	assert.Contains(t, out.String(), "Everyone has been contacted in the last 30 days")
}

func TestDashboardCommand(t *testing.T) {
	c := setupTestCLI(t)
	ada := seedContact(t, c, "Ada Lovelace", "ada@example.com")
	seedContact(t, c, "Grace Hopper", "grace@navy.mil")
	seedInteraction(t, c, ada.ID, "2025-06-10")
	var out bytes.Buffer

	require.NoError(t, DashboardCommand(context.Background(), c, &out, now, nil))
	assert.Contains(t, out.String(), "CONNECTHUB DASHBOARD")
	assert.Contains(t, out.String(), "2 contacts")
	assert.Contains(t, out.String(), "Grace Hopper")
}

func TestVizGraphCommand(t *testing.T) {
	c := setupTestCLI(t)
	ada := seedContact(t, c, "Ada Lovelace", "ada@example.com")
	seedInteraction(t, c, ada.ID, "2025-06-10")
	var out bytes.Buffer

	require.NoError(t, VizGraphCommand(context.Background(), c, &out, now, nil))
	assert.Contains(t, out.String(), "digraph")
	assert.Contains(t, out.String(), "Ada Lovelace")

	path := filepath.Join(t.TempDir(), "graph.dot")
	out.Reset()
	require.NoError(t, VizGraphCommand(context.Background(), c, &out, now, []string{"--output", path}))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph")
}

func TestTerminalConfirmerDeclinesWithoutTTY(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	_, err = f.WriteString("y\n")
	require.NoError(t, err)
	_, err = f.Seek(0, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	var prompt bytes.Buffer
	ok, err := NewTerminalConfirmer(f, &prompt).Confirm(context.Background(), "Delete?")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, prompt.String())
}

func TestMCPServerBuilds(t *testing.T) {
	assert.NotNil(t, NewMCPServer(setupTestCLI(t), "test", time.Now))
}

func TestConfigCommand(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "config.json")
	effective := &config.Config{APIURL: "http://api.test/api", CacheTTL: 30 * time.Second}
	var out bytes.Buffer

	require.NoError(t, ConfigCommand(ctx, effective, path, &out, nil))
	assert.Contains(t, out.String(), "http://api.test/api")
	assert.NoFileExists(t, path)

	out.Reset()
	require.NoError(t, ConfigCommand(ctx, effective, path, &out, []string{"--api-url", "http://saved.test/api", "--cache-ttl", "45s"}))
	assert.Contains(t, out.String(), "✓ Config saved")

	saved, err := config.LoadFrom(ctx, path, envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, "http://saved.test/api", saved.APIURL)
	assert.Equal(t, 45*time.Second, saved.CacheTTL)
}

func TestConfigCommandRejectsZeroCacheTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	var out bytes.Buffer

	err := ConfigCommand(context.Background(), &config.Config{}, path, &out, []string{"--cache-ttl", "0s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONNECTHUB_CACHE_TTL=0")
	assert.NotContains(t, out.String(), "Config saved")
	assert.NoFileExists(t, path)
}
