// ABOUTME: Terminal dashboard rendering
// ABOUTME: ASCII overview of contact counts, follow-ups, and staleness tiers
package viz

import (
	"fmt"
	"strings"

	"github.com/harperreed/connecthub/models"
)

// DashboardStats is everything the text dashboard shows.
type DashboardStats struct {
	Fleet     models.FleetSummary
	ByTier    map[models.StalenessTier]int
	Followups []models.ContactEngagement
}

// NewDashboardStats counts contacts per tier alongside the fleet summary.
func NewDashboardStats(fleet models.FleetSummary, engagements, followups []models.ContactEngagement) *DashboardStats {
	stats := &DashboardStats{
		Fleet:     fleet,
		ByTier:    make(map[models.StalenessTier]int),
		Followups: followups,
	}
	for _, e := range engagements {
		stats.ByTier[e.Summary.Tier]++
	}
	return stats
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  CONNECTHUB DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  📇 %d contacts  ⚠️  %d need follow-up (30+ days)  💬 %d interactions\n\n",
		stats.Fleet.Total, stats.Fleet.NeedFollowUp, stats.Fleet.TotalInteractions))

	out.WriteString("ENGAGEMENT\n")
	renderTiers(&out, stats.ByTier)

	if len(stats.Followups) > 0 {
		out.WriteString("\nNEEDS ATTENTION\n")
		for _, f := range stats.Followups {
			out.WriteString(fmt.Sprintf("  %-24s %s\n", f.Contact.Name, f.Summary.BadgeLabel()))
		}
	}

	return out.String()
}

func renderTiers(out *strings.Builder, byTier map[models.StalenessTier]int) {
	maxCount := 0
	for _, n := range byTier {
		if n > maxCount {
			maxCount = n
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, tier := range tierOrder {
		count := byTier[tier]
		barLength := (count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		out.WriteString(fmt.Sprintf("  %-9s %s  %2d\n", tier, bar, count))
	}
}
