// ABOUTME: Follow-up and dashboard CLI commands
// ABOUTME: Lists contacts gone quiet and renders the engagement dashboard
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/engagement"
	"github.com/harperreed/connecthub/models"
	"github.com/harperreed/connecthub/viz"
)

// FollowupsCommand lists contacts needing follow-up, never-contacted first.
func FollowupsCommand(ctx context.Context, c *client.Client, out io.Writer, now time.Time, args []string) error {
	fs := flag.NewFlagSet("followups", flag.ExitOnError)
	limit := fs.Int("limit", 0, "Maximum number of contacts to show (0 for all)")
	_ = fs.Parse(args)

	followups, _, err := loadEngagement(ctx, c, "", now)
	if err != nil {
		return err
	}

	if len(followups) == 0 {
		_, _ = fmt.Fprintf(out, "Everyone has been contacted in the last %d days\n", engagement.FollowUpAfterDays)
		return nil
	}
	if *limit > 0 && len(followups) > *limit {
		followups = followups[:*limit]
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tLAST CONTACT\tDAYS SINCE\tEMAIL\tID")
	_, _ = fmt.Fprintln(w, "----\t------------\t----------\t-----\t--")
	for _, f := range followups {
		_, _ = fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\t%s\n",
			tierIndicator(f.Summary.Tier), f.Contact.Name,
			f.Summary.LastDateLabel(), f.Summary.BadgeLabel(), f.Contact.Email, f.Contact.ID)
	}
	_ = w.Flush()
	return nil
}

// DashboardCommand prints the engagement dashboard.
func DashboardCommand(ctx context.Context, c *client.Client, out io.Writer, now time.Time, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	query := fs.String("query", "", "Restrict to contacts matching this search")
	_ = fs.Parse(args)

	followups, dash, err := loadEngagement(ctx, c, *query, now)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprint(out, viz.RenderDashboard(viz.NewDashboardStats(dash.Fleet, dash.Engagements, followups)))
	return nil
}

func loadEngagement(ctx context.Context, c *client.Client, query string, now time.Time) ([]models.ContactEngagement, *client.Dashboard, error) {
	contacts, err := c.ListContacts(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	dash, err := c.Dashboard(ctx, contacts, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch interactions: %w", err)
	}

	return engagement.Overdue(dash.Engagements), dash, nil
}

func tierIndicator(tier models.StalenessTier) string {
	switch tier {
	case models.TierFresh:
		return "🟢"
	case models.TierWarning:
		return "🟡"
	case models.TierCritical:
		return "🔴"
	default:
		return "⚪"
	}
}
