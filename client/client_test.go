package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/connecthub/cache"
	"github.com/harperreed/connecthub/models"
)

// recorder captures requests made against a stub backend.
type recorder struct {
	calls atomic.Int32

	mu   sync.Mutex
	req  *http.Request
	data map[string]any
}

func (r *recorder) last() *http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.req
}

func (r *recorder) body() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data
}

func newStub(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.calls.Add(1)
		var body map[string]any
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		rec.mu.Lock()
		rec.req = r
		rec.data = body
		rec.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return New(server.URL + "/api"), rec
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListContactsWithoutQuery(t *testing.T) {
	c, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Contact{
			{ID: "c1", Name: "Ada Lovelace", Email: "ada@example.com", Tags: []string{"math"}},
		})
	})

	contacts, err := c.ListContacts(context.Background(), "   ")
	require.NoError(t, err)

	assert.Equal(t, "/api/contacts", rec.last().URL.Path)
	assert.False(t, rec.last().URL.Query().Has("search"))
	assert.Equal(t, http.MethodGet, rec.last().Method)
	assert.NotEmpty(t, rec.last().Header.Get("X-Request-ID"))
	require.Len(t, contacts, 1)
	assert.Equal(t, "c1", contacts[0].ID)
	assert.Equal(t, contacts, c.LastContacts())
}

func TestListContactsForwardsQuery(t *testing.T) {
	c, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Contact{})
	})

	contacts, err := c.ListContacts(context.Background(), "acme & co")
	require.NoError(t, err)

	assert.Equal(t, "acme & co", rec.last().URL.Query().Get("search"))
	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)
}

func TestListContactsNon2xxIsTransportError(t *testing.T) {
	c, _ := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
	})

	_, err := c.ListContacts(context.Background(), "")

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
	assert.Equal(t, "fetch contacts", te.Op)
	assert.True(t, IsTransport(err))
	assert.False(t, IsValidation(err))
}

func TestListContactsNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(url).ListContacts(context.Background(), "")

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.StatusCode)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestListContactsFailureKeepsLastList(t *testing.T) {
	var fail atomic.Bool
	c, _ := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, []models.Contact{{ID: "c1"}})
	})

	_, err := c.ListContacts(context.Background(), "")
	require.NoError(t, err)

	fail.Store(true)
	_, err = c.ListContacts(context.Background(), "x")
	require.Error(t, err)
	assert.Len(t, c.LastContacts(), 1)
}

func TestCreateContactSendsNormalizedBody(t *testing.T) {
	c, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, models.Contact{ID: "new", Name: "Grace Hopper", Email: "grace@navy.mil", Tags: []string{"a", "b", "c"}})
	})

	created, err := c.CreateContact(context.Background(), models.ContactInput{
		Name:    " Grace Hopper ",
		Email:   "grace@navy.mil",
		Company: "US Navy",
		Role:    "Rear Admiral",
		Tags:    "a, b ,, c",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.last().Method)
	assert.Equal(t, "/api/contacts", rec.last().URL.Path)
	assert.Equal(t, "application/json", rec.last().Header.Get("Content-Type"))
	assert.Equal(t, "Grace Hopper", rec.body()["name"])
	assert.Equal(t, "US Navy", rec.body()["company"])
	assert.Equal(t, []any{"a", "b", "c"}, rec.body()["tags"])
	assert.Equal(t, "new", created.ID)
}

func TestCreateContactValidationMakesNoRequest(t *testing.T) {
	c, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, models.Contact{})
	})

	tests := []struct {
		name  string
		in    models.ContactInput
		field string
	}{
		{"empty email", models.ContactInput{Name: "Ada"}, "email"},
		{"empty name", models.ContactInput{Email: "ada@example.com"}, "name"},
		{"blank name", models.ContactInput{Name: "   ", Email: "ada@example.com"}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.CreateContact(context.Background(), tt.in)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.field+" is required", ve.Error())
		})
	}
	assert.Zero(t, rec.calls.Load())
}

func TestCreateContactBackendRejection(t *testing.T) {
	c, _ := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "duplicate email"})
	})

	_, err := c.CreateContact(context.Background(), models.ContactInput{Name: "Ada", Email: "ada@example.com"})

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusBadRequest, te.StatusCode)
	assert.Contains(t, te.Unwrap().Error(), "duplicate email")
}

func TestDeleteContactDeclinedMakesNoRequest(t *testing.T) {
	c, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.DeleteContact(context.Background(), "c1", Declined)
	assert.ErrorIs(t, err, ErrDeclined)

	err = c.DeleteContact(context.Background(), "c1", nil)
	assert.ErrorIs(t, err, ErrDeclined)

	assert.Zero(t, rec.calls.Load())
}

func TestDeleteContactConfirmed(t *testing.T) {
	c, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	var prompt string
	err := c.DeleteContact(context.Background(), "c1", ConfirmFunc(func(_ context.Context, p string) (bool, error) {
		prompt = p
		return true, nil
	}))
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, rec.last().Method)
	assert.Equal(t, "/api/contacts/c1", rec.last().URL.Path)
	assert.Contains(t, prompt, "delete this contact")
}

func TestDeleteContactConfirmerError(t *testing.T) {
	c, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	boom := errors.New("tty closed")
	err := c.DeleteContact(context.Background(), "c1", ConfirmFunc(func(context.Context, string) (bool, error) {
		return false, boom
	}))
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, rec.calls.Load())
}

func TestDeleteContactRejected(t *testing.T) {
	c, _ := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.DeleteContact(context.Background(), "missing", Confirmed)
	assert.True(t, IsTransport(err))
}

func TestAddInteraction(t *testing.T) {
	c, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{
			"_id": "i1", "contactId": "c1", "type": "call", "date": "2024-03-05T00:00:00.000Z", "notes": "intro call",
		})
	})

	created, err := c.AddInteraction(context.Background(), "c1", models.InteractionInput{
		Type:     "call",
		Date:     "2024-03-05",
		Notes:    "intro call",
		Duration: "30min",
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/interactions", rec.last().URL.Path)
	assert.Equal(t, "c1", rec.body()["contactId"])
	assert.Equal(t, "call", rec.body()["type"])
	assert.Equal(t, "2024-03-05", rec.body()["date"])
	assert.Equal(t, "30min", rec.body()["duration"])
	assert.Equal(t, "i1", created.ID)
	assert.Equal(t, "2024-03-05", created.Date.String())
}

func TestAddInteractionDefaultsToMeeting(t *testing.T) {
	c, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"_id": "i1"})
	})

	_, err := c.AddInteraction(context.Background(), "c1", models.InteractionInput{Date: "2024-03-05", Notes: "lunch"})
	require.NoError(t, err)
	assert.Equal(t, "meeting", rec.body()["type"])
}

func TestAddInteractionValidation(t *testing.T) {
	c, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{})
	})

	tests := []struct {
		name  string
		in    models.InteractionInput
		field string
	}{
		{"missing date", models.InteractionInput{Notes: "hi"}, "date"},
		{"missing notes", models.InteractionInput{Date: "2024-01-01"}, "notes"},
		{"bad date", models.InteractionInput{Date: "01/02/2024", Notes: "hi"}, "date"},
		{"unknown type", models.InteractionInput{Type: "fax", Date: "2024-01-01", Notes: "hi"}, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.AddInteraction(context.Background(), "c1", tt.in)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
	assert.Zero(t, rec.calls.Load())
}

func TestDeleteInteraction(t *testing.T) {
	c, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	require.ErrorIs(t, c.DeleteInteraction(context.Background(), "i1", Declined), ErrDeclined)
	assert.Zero(t, rec.calls.Load())

	require.NoError(t, c.DeleteInteraction(context.Background(), "i1", Confirmed))
	assert.Equal(t, "/api/interactions/i1", rec.last().URL.Path)
	assert.Equal(t, http.MethodDelete, rec.last().Method)
}

func TestContactEngagement(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	c, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"_id": "i1", "contactId": "c1", "type": "call", "date": "2024-06-20", "notes": "a"},
			{"_id": "i2", "contactId": "c1", "type": "email", "date": "2024-05-21", "notes": "b"},
		})
	})

	summary, interactions, err := c.ContactEngagement(context.Background(), "c1", now)
	require.NoError(t, err)

	assert.Equal(t, "/api/interactions/contact/c1", rec.last().URL.Path)
	assert.Len(t, interactions, 2)
	assert.Equal(t, 2, summary.Count)
	require.NotNil(t, summary.DaysSince)
	assert.Equal(t, 10, *summary.DaysSince)
	assert.Equal(t, models.TierFresh, summary.Tier)
}

func TestDashboard(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	c, rec := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"_id": "i1", "contactId": "c1", "type": "call", "date": "2024-06-20", "notes": "a"},
			{"_id": "i2", "contactId": "c2", "type": "call", "date": "2024-01-02", "notes": "b"},
		})
	})

	contacts := []models.Contact{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}}
	dash, err := c.Dashboard(context.Background(), contacts, now)
	require.NoError(t, err)

	assert.Equal(t, "/api/interactions", rec.last().URL.Path)
	assert.Equal(t, models.FleetSummary{Total: 3, NeedFollowUp: 2, TotalInteractions: 2}, dash.Fleet)
	require.Len(t, dash.Engagements, 3)
	assert.Equal(t, models.TierCritical, dash.Engagements[1].Summary.Tier)
	assert.Equal(t, models.TierUnknown, dash.Engagements[2].Summary.Tier)
}

func TestInteractionCacheReadThroughAndInvalidation(t *testing.T) {
	store, err := cache.Open(time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	var gets atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			gets.Add(1)
			writeJSON(w, http.StatusOK, []map[string]any{
				{"_id": "i1", "contactId": "c1", "type": "call", "date": "2024-06-20", "notes": "a"},
			})
		case http.MethodPost:
			writeJSON(w, http.StatusCreated, map[string]any{"_id": "i2"})
		}
	}))
	t.Cleanup(server.Close)

	c := New(server.URL, WithCache(store))
	ctx := context.Background()

	_, err = c.ContactInteractions(ctx, "c1")
	require.NoError(t, err)
	cached, err := c.ContactInteractions(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, cached, 1)
	assert.Equal(t, int32(1), gets.Load())

	_, err = c.AddInteraction(ctx, "c1", models.InteractionInput{Date: "2024-06-29", Notes: "follow up"})
	require.NoError(t, err)

	_, err = c.ContactInteractions(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), gets.Load())
}

func TestInteractionCacheKeepsTimeOfDay(t *testing.T) {
	store, err := cache.Open(time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	var gets atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gets.Add(1)
		writeJSON(w, http.StatusOK, []map[string]any{
			{"_id": "i1", "contactId": "c1", "type": "call", "date": "2024-05-01T20:00:00.000Z", "notes": "late call"},
		})
	}))
	t.Cleanup(server.Close)

	c := New(server.URL, WithCache(store))
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	fresh, _, err := c.ContactEngagement(ctx, "c1", now)
	require.NoError(t, err)
	cached, interactions, err := c.ContactEngagement(ctx, "c1", now)
	require.NoError(t, err)
	assert.Equal(t, int32(1), gets.Load())

	require.NotNil(t, fresh.DaysSince)
	assert.Equal(t, 30, *fresh.DaysSince)
	assert.Equal(t, models.TierFresh, fresh.Tier)
	assert.Equal(t, fresh, cached)

	require.Len(t, interactions, 1)
	assert.Equal(t, 20, interactions[0].Date.UTC().Hour())

	contacts := []models.Contact{{ID: "c1"}}
	first, err := c.Dashboard(ctx, contacts, now)
	require.NoError(t, err)
	second, err := c.Dashboard(ctx, contacts, now)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Fleet.NeedFollowUp)
	assert.Equal(t, first.Fleet, second.Fleet)
}
