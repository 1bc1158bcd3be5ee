// ABOUTME: REST client for the contact and interaction backend
// ABOUTME: Lists, searches, creates, and deletes contacts and interactions over JSON
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harperreed/connecthub/cache"
	"github.com/harperreed/connecthub/engagement"
	"github.com/harperreed/connecthub/models"
)

const (
	interactionsPrefix = "interactions/"
	allInteractionsKey = interactionsPrefix + "all"
)

// HTTPDoer executes HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the single repository object every view talks to. It keeps the
// last fetched contact list and, optionally, a read-through interaction cache.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	cache      *cache.Store
	log        zerolog.Logger

	mu           sync.RWMutex
	lastContacts []models.Contact
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) { c.httpClient = doer }
}

// WithCache enables the interaction read-through cache.
func WithCache(store *cache.Store) Option {
	return func(c *Client) { c.cache = store }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:5000/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest sends a JSON request and decodes a JSON response into out when
// out is non-nil. Any failure or non-2xx status is a TransportError.
func (c *Client) doRequest(ctx context.Context, op, method, endpoint string, body, out any) error {
	respBody, err := c.send(ctx, op, method, endpoint, body)
	if err != nil {
		return err
	}
	return c.decode(op, method, endpoint, respBody, out)
}

func (c *Client) decode(op, method, endpoint string, respBody []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &TransportError{Op: op, Method: method, URL: c.baseURL + endpoint, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// send performs the request and returns the raw body of a 2xx response.
func (c *Client) send(ctx context.Context, op, method, endpoint string, body any) ([]byte, error) {
	reqURL := c.baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{Op: op, Method: method, URL: reqURL, Err: fmt.Errorf("failed to marshal request body: %w", err)}
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, &TransportError{Op: op, Method: method, URL: reqURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("request_id", requestID).Str("method", method).Str("url", reqURL).Msg("request failed")
		return nil, &TransportError{Op: op, Method: method, URL: reqURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", reqURL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Method: method, URL: reqURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			Op:         op,
			Method:     method,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	return respBody, nil
}

// ListContacts returns all contacts, or those matching query when it is not
// blank. Matching is up to the backend. The result becomes LastContacts.
func (c *Client) ListContacts(ctx context.Context, query string) ([]models.Contact, error) {
	endpoint := "/contacts"
	op := "fetch contacts"
	if strings.TrimSpace(query) != "" {
		endpoint += "?search=" + url.QueryEscape(query)
		op = "search contacts"
	}

	var contacts []models.Contact
	if err := c.doRequest(ctx, op, http.MethodGet, endpoint, nil, &contacts); err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}

	c.mu.Lock()
	c.lastContacts = contacts
	c.mu.Unlock()

	return contacts, nil
}

// LastContacts returns a copy of the most recently fetched contact list.
func (c *Client) LastContacts() []models.Contact {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Contact, len(c.lastContacts))
	copy(out, c.lastContacts)
	return out
}

// CreateContact validates the form input and creates the contact.
func (c *Client) CreateContact(ctx context.Context, in models.ContactInput) (*models.Contact, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	body := models.NewContact{
		Name:    in.Name,
		Email:   in.Email,
		Company: strings.TrimSpace(in.Company),
		Role:    strings.TrimSpace(in.Role),
		Tags:    models.ParseTags(in.Tags),
	}

	var created models.Contact
	if err := c.doRequest(ctx, "add contact", http.MethodPost, "/contacts", body, &created); err != nil {
		return nil, err
	}

	c.log.Info().Str("contact_id", created.ID).Msg("contact created")
	return &created, nil
}

// DeleteContact asks for confirmation, then deletes the contact.
func (c *Client) DeleteContact(ctx context.Context, id string, confirmer Confirmer) error {
	if err := confirm(ctx, confirmer, "Are you sure you want to delete this contact?"); err != nil {
		return err
	}

	if err := c.doRequest(ctx, "delete contact", http.MethodDelete, "/contacts/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}

	// the backend drops the contact's interactions with it
	c.invalidateInteractions()
	c.log.Info().Str("contact_id", id).Msg("contact deleted")
	return nil
}

// ListInteractions returns every interaction across all contacts.
func (c *Client) ListInteractions(ctx context.Context) ([]models.Interaction, error) {
	return c.readInteractions(ctx, allInteractionsKey, "fetch interactions", "/interactions")
}

// ContactInteractions returns the interactions logged for one contact.
func (c *Client) ContactInteractions(ctx context.Context, contactID string) ([]models.Interaction, error) {
	return c.readInteractions(ctx,
		interactionsPrefix+"contact/"+contactID,
		"fetch interactions",
		"/interactions/contact/"+url.PathEscape(contactID),
	)
}

func (c *Client) readInteractions(ctx context.Context, key, op, endpoint string) ([]models.Interaction, error) {
	if c.cache != nil {
		var cached []models.Interaction
		hit, err := c.cache.Get(key, &cached)
		if err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	raw, err := c.send(ctx, op, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	var interactions []models.Interaction
	if err := c.decode(op, http.MethodGet, endpoint, raw, &interactions); err != nil {
		return nil, err
	}
	if interactions == nil {
		interactions = []models.Interaction{}
	}

	// cached verbatim so timestamped dates keep their time of day
	if c.cache != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := c.cache.Put(key, json.RawMessage(raw)); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return interactions, nil
}

// AddInteraction validates the form input and logs an interaction for contactID.
func (c *Client) AddInteraction(ctx context.Context, contactID string, in models.InteractionInput) (*models.Interaction, error) {
	in.Type = strings.TrimSpace(in.Type)
	in.Date = strings.TrimSpace(in.Date)
	in.Notes = strings.TrimSpace(in.Notes)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	date, err := time.Parse(models.DateLayout, in.Date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: "must be a date in YYYY-MM-DD format"}
	}

	interactionType := models.InteractionType(in.Type)
	if interactionType == "" {
		interactionType = models.InteractionMeeting
	}

	body := models.NewInteraction{
		Type:      interactionType,
		Date:      models.NewDate(date),
		Notes:     in.Notes,
		Duration:  strings.TrimSpace(in.Duration),
		ContactID: contactID,
	}

	var created models.Interaction
	if err := c.doRequest(ctx, "add interaction", http.MethodPost, "/interactions", body, &created); err != nil {
		return nil, err
	}

	c.invalidateInteractions()
	c.log.Info().Str("contact_id", contactID).Str("interaction_id", created.ID).Msg("interaction logged")
	return &created, nil
}

// DeleteInteraction asks for confirmation, then deletes the interaction.
func (c *Client) DeleteInteraction(ctx context.Context, id string, confirmer Confirmer) error {
	if err := confirm(ctx, confirmer, "Are you sure you want to delete this interaction?"); err != nil {
		return err
	}

	if err := c.doRequest(ctx, "delete interaction", http.MethodDelete, "/interactions/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}

	c.invalidateInteractions()
	c.log.Info().Str("interaction_id", id).Msg("interaction deleted")
	return nil
}

func (c *Client) invalidateInteractions() {
	if c.cache == nil {
		return
	}
	if err := c.cache.Invalidate(interactionsPrefix); err != nil {
		c.log.Warn().Err(err).Msg("cache invalidation failed")
	}
}

// ContactEngagement fetches one contact's interactions and summarizes them.
func (c *Client) ContactEngagement(ctx context.Context, contactID string, now time.Time) (models.EngagementSummary, []models.Interaction, error) {
	interactions, err := c.ContactInteractions(ctx, contactID)
	if err != nil {
		return models.EngagementSummary{}, nil, err
	}
	return engagement.Summarize(interactions, now), interactions, nil
}

// Dashboard holds the fleet statistics and the per-contact engagement for a
// contact list.
type Dashboard struct {
	Fleet       models.FleetSummary        `json:"fleet"`
	Engagements []models.ContactEngagement `json:"engagements"`
}

// Dashboard fetches all interactions and summarizes them against contacts.
func (c *Client) Dashboard(ctx context.Context, contacts []models.Contact, now time.Time) (*Dashboard, error) {
	interactions, err := c.ListInteractions(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Fleet:       engagement.SummarizeFleet(contacts, interactions, now),
		Engagements: engagement.Engagements(contacts, interactions, now),
	}, nil
}
