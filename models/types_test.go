// ABOUTME: Tests for CRM data models
// ABOUTME: Validates tag parsing, date decoding, and interaction type rendering
package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"trims and drops empties", "a, b ,, c", []string{"a", "b", "c"}},
		{"empty input", "", []string{}},
		{"only separators", " , ,", []string{}},
		{"single tag", "client", []string{"client"}},
		{"keeps order", "prospect, active, client", []string{"prospect", "active", "client"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.raw))
		})
	}
}

func TestDateUnmarshalAcceptsBackendFormats(t *testing.T) {
	want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{
		`"2024-05-01"`,
		`"2024-05-01T00:00:00Z"`,
		`"2024-05-01T00:00:00.000Z"`,
	} {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(raw), &d), raw)
		assert.True(t, want.Equal(d.Time), "%s decoded to %s", raw, d.Time)
	}
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"last tuesday"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}

func TestDateMarshalsCalendarDay(t *testing.T) {
	d := NewDate(time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-01"`, string(data))
	assert.Equal(t, "May 1, 2024", d.Display())
}

func TestInteractionDecodesBackendPayload(t *testing.T) {
	payload := `{"_id":"i1","contactId":"c1","type":"call","date":"2024-02-03T00:00:00.000Z","notes":"intro","duration":"30min"}`

	var i Interaction
	require.NoError(t, json.Unmarshal([]byte(payload), &i))

	assert.Equal(t, "i1", i.ID)
	assert.Equal(t, "c1", i.ContactID)
	assert.Equal(t, InteractionCall, i.Type)
	assert.Equal(t, "2024-02-03", i.Date.String())
	assert.Equal(t, "30min", i.Duration)
}

func TestInteractionTypeRendering(t *testing.T) {
	assert.Equal(t, "Phone Call", InteractionCall.Label())
	assert.Equal(t, "Meeting", InteractionMeeting.Label())
	assert.Equal(t, InteractionMessage, InteractionType("carrier-pigeon").Normalize())
	assert.Equal(t, InteractionMessage.Glyph(), InteractionType("carrier-pigeon").Glyph())
}

func TestEngagementSummaryLabels(t *testing.T) {
	var empty EngagementSummary
	assert.Equal(t, "Never", empty.LastDateLabel())
	assert.Equal(t, "No contact", empty.BadgeLabel())

	last := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	days := 0
	s := EngagementSummary{Count: 1, LastDate: &last, DaysSince: &days, Tier: TierFresh}
	assert.Equal(t, "2024-01-15", s.LastDateLabel())
	assert.Equal(t, "0d", s.BadgeLabel())
}
