// ABOUTME: Contact engagement model
// ABOUTME: Aggregates interaction history into staleness tiers and dashboard statistics
package engagement

import (
	"sort"
	"time"

	"github.com/harperreed/connecthub/models"
)

// Staleness tier boundaries. A contact is fresh up to and including
// TierWarningAfterDays, warning up to and including TierCriticalAfterDays.
const (
	TierWarningAfterDays  = 30
	TierCriticalAfterDays = 90
)

// FollowUpAfterDays is the dashboard threshold. It is defined separately from
// the tier boundaries and only happens to share their value.
const FollowUpAfterDays = 30

const day = 24 * time.Hour

// DaysBetween returns floor((now - then) / 24h).
func DaysBetween(then, now time.Time) int {
	elapsed := now.Sub(then)
	days := int(elapsed / day)
	if elapsed < 0 && elapsed%day != 0 {
		days--
	}
	return days
}

// Summarize computes the engagement summary for one contact's interactions.
func Summarize(interactions []models.Interaction, now time.Time) models.EngagementSummary {
	summary := models.EngagementSummary{Count: len(interactions)}
	if len(interactions) == 0 {
		summary.Tier = TierFor(nil)
		return summary
	}

	last := interactions[0].Date.Time
	for _, i := range interactions[1:] {
		if i.Date.After(last) {
			last = i.Date.Time
		}
	}

	days := DaysBetween(last, now)
	summary.LastDate = &last
	summary.DaysSince = &days
	summary.Tier = TierFor(&days)
	return summary
}

// TierFor classifies days since last interaction. Nil means never contacted.
func TierFor(daysSince *int) models.StalenessTier {
	switch {
	case daysSince == nil:
		return models.TierUnknown
	case *daysSince > TierCriticalAfterDays:
		return models.TierCritical
	case *daysSince > TierWarningAfterDays:
		return models.TierWarning
	default:
		return models.TierFresh
	}
}

// NeedsFollowUp reports whether a contact is overdue: never contacted, or
// last contacted more than FollowUpAfterDays ago.
func NeedsFollowUp(s models.EngagementSummary) bool {
	if s.Count == 0 || s.DaysSince == nil {
		return true
	}
	return *s.DaysSince > FollowUpAfterDays
}

// byContact partitions interactions by owning contact ID.
func byContact(interactions []models.Interaction) map[string][]models.Interaction {
	grouped := make(map[string][]models.Interaction)
	for _, i := range interactions {
		grouped[i.ContactID] = append(grouped[i.ContactID], i)
	}
	return grouped
}

// Engagements summarizes every contact, preserving list order.
func Engagements(contacts []models.Contact, interactions []models.Interaction, now time.Time) []models.ContactEngagement {
	grouped := byContact(interactions)
	result := make([]models.ContactEngagement, len(contacts))
	for idx, c := range contacts {
		result[idx] = models.ContactEngagement{
			Contact: c,
			Summary: Summarize(grouped[c.ID], now),
		}
	}
	return result
}

// SummarizeFleet computes the dashboard statistics. TotalInteractions counts
// every interaction passed in, including those of contacts not in the list.
func SummarizeFleet(contacts []models.Contact, interactions []models.Interaction, now time.Time) models.FleetSummary {
	fleet := models.FleetSummary{
		Total:             len(contacts),
		TotalInteractions: len(interactions),
	}
	for _, e := range Engagements(contacts, interactions, now) {
		if NeedsFollowUp(e.Summary) {
			fleet.NeedFollowUp++
		}
	}
	return fleet
}

// Followups returns contacts needing follow-up: never contacted first, then
// the most overdue.
func Followups(contacts []models.Contact, interactions []models.Interaction, now time.Time) []models.ContactEngagement {
	return Overdue(Engagements(contacts, interactions, now))
}

// Overdue keeps the engagements that need follow-up, ordered as Followups.
func Overdue(engagements []models.ContactEngagement) []models.ContactEngagement {
	var overdue []models.ContactEngagement
	for _, e := range engagements {
		if NeedsFollowUp(e.Summary) {
			overdue = append(overdue, e)
		}
	}

	sort.SliceStable(overdue, func(i, j int) bool {
		a, b := overdue[i].Summary.DaysSince, overdue[j].Summary.DaysSince
		if a == nil || b == nil {
			return a == nil && b != nil
		}
		return *a > *b
	})
	return overdue
}
