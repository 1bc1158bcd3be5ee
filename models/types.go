// ABOUTME: Data models for the engagement CRM
// ABOUTME: Defines Contact, Interaction, form inputs, and derived engagement summaries
package models

import (
	"strconv"
	"strings"
	"time"
)

type Contact struct {
	ID      string   `json:"_id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Company string   `json:"company,omitempty"`
	Role    string   `json:"role,omitempty"`
	Tags    []string `json:"tags"`
}

type Interaction struct {
	ID        string          `json:"_id"`
	ContactID string          `json:"contactId"`
	Type      InteractionType `json:"type"`
	Date      Date            `json:"date"`
	Notes     string          `json:"notes"`
	Duration  string          `json:"duration,omitempty"`
}

// NewContact is the POST /contacts request body.
type NewContact struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Company string   `json:"company"`
	Role    string   `json:"role"`
	Tags    []string `json:"tags"`
}

// NewInteraction is the POST /interactions request body.
type NewInteraction struct {
	Type      InteractionType `json:"type"`
	Date      Date            `json:"date"`
	Notes     string          `json:"notes"`
	Duration  string          `json:"duration"`
	ContactID string          `json:"contactId"`
}

// ContactInput holds raw form values. Tags is comma separated.
type ContactInput struct {
	Name    string `validate:"required"`
	Email   string `validate:"required"`
	Company string
	Role    string
	Tags    string
}

// InteractionInput holds raw form values. Date is YYYY-MM-DD.
type InteractionInput struct {
	Type     string `validate:"omitempty,oneof=meeting call email message"`
	Date     string `validate:"required"`
	Notes    string `validate:"required"`
	Duration string
}

// ParseTags splits a comma separated tag string, trimming each entry and
// dropping empty ones. The result is never nil.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// InteractionType constants.
type InteractionType string

const (
	InteractionMeeting InteractionType = "meeting"
	InteractionCall    InteractionType = "call"
	InteractionEmail   InteractionType = "email"
	InteractionMessage InteractionType = "message"
)

// InteractionTypes lists the enumeration in form order.
var InteractionTypes = []InteractionType{
	InteractionMeeting,
	InteractionCall,
	InteractionEmail,
	InteractionMessage,
}

// Normalize maps unknown types to message, matching how they are rendered.
func (t InteractionType) Normalize() InteractionType {
	switch t {
	case InteractionMeeting, InteractionCall, InteractionEmail, InteractionMessage:
		return t
	default:
		return InteractionMessage
	}
}

func (t InteractionType) Label() string {
	switch t.Normalize() {
	case InteractionMeeting:
		return "Meeting"
	case InteractionCall:
		return "Phone Call"
	case InteractionEmail:
		return "Email"
	default:
		return "Message"
	}
}

func (t InteractionType) Glyph() string {
	switch t.Normalize() {
	case InteractionMeeting:
		return "☕"
	case InteractionCall:
		return "📞"
	case InteractionEmail:
		return "✉"
	default:
		return "💬"
	}
}

// StalenessTier constants.
type StalenessTier string

const (
	TierUnknown  StalenessTier = "unknown"
	TierFresh    StalenessTier = "fresh"
	TierWarning  StalenessTier = "warning"
	TierCritical StalenessTier = "critical"
)

// EngagementSummary is derived from a contact's interaction history.
// LastDate and DaysSince are nil when there are no interactions.
type EngagementSummary struct {
	Count     int           `json:"count"`
	LastDate  *time.Time    `json:"last_date,omitempty"`
	DaysSince *int          `json:"days_since,omitempty"`
	Tier      StalenessTier `json:"tier"`
}

// LastDateLabel returns the last interaction date as YYYY-MM-DD, or "Never".
func (s EngagementSummary) LastDateLabel() string {
	if s.LastDate == nil {
		return "Never"
	}
	return s.LastDate.UTC().Format(DateLayout)
}

// BadgeLabel returns the short staleness badge, e.g. "12d" or "No contact".
func (s EngagementSummary) BadgeLabel() string {
	if s.DaysSince == nil {
		return "No contact"
	}
	return strconv.Itoa(*s.DaysSince) + "d"
}

// ContactEngagement pairs a contact with its engagement summary.
type ContactEngagement struct {
	Contact Contact           `json:"contact"`
	Summary EngagementSummary `json:"summary"`
}

// FleetSummary holds the dashboard statistics.
type FleetSummary struct {
	Total             int `json:"total"`
	NeedFollowUp      int `json:"need_follow_up"`
	TotalInteractions int `json:"total_interactions"`
}
