// ABOUTME: Interaction CLI commands
// ABOUTME: Lists a contact's history, logs new interactions, and deletes them
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/models"
)

// ListInteractionsCommand shows one contact's interactions, newest first, with
// its engagement summary.
func ListInteractionsCommand(ctx context.Context, c *client.Client, out io.Writer, now time.Time, args []string) error {
	fs := flag.NewFlagSet("list-interactions", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("contact ID is required")
	}
	contactID := fs.Arg(0)

	summary, interactions, err := c.ContactEngagement(ctx, contactID, now)
	if err != nil {
		return fmt.Errorf("failed to list interactions: %w", err)
	}

	_, _ = fmt.Fprintf(out, "%d interaction(s), last contact: %s (%s)\n\n",
		summary.Count, summary.LastDateLabel(), summary.BadgeLabel())

	if len(interactions) == 0 {
		_, _ = fmt.Fprintln(out, "No interactions yet. Log one with: connecthub crm log-interaction --contact "+contactID)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDATE\tTYPE\tDURATION\tNOTES")
	_, _ = fmt.Fprintln(w, "--\t----\t----\t--------\t-----")
	for _, in := range interactions {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\n",
			in.ID, in.Date.String(), in.Type.Glyph(), in.Type.Label(), in.Duration, in.Notes)
	}
	_ = w.Flush()
	return nil
}

// LogInteractionCommand records an interaction with a contact. The date
// defaults to today.
func LogInteractionCommand(ctx context.Context, c *client.Client, out io.Writer, now time.Time, args []string) error {
	fs := flag.NewFlagSet("log-interaction", flag.ExitOnError)
	contactID := fs.String("contact", "", "Contact ID (required)")
	interactionType := fs.String("type", string(models.InteractionMeeting), "meeting, call, email, or message")
	date := fs.String("date", now.Format(models.DateLayout), "Date (YYYY-MM-DD)")
	notes := fs.String("notes", "", "What was discussed (required)")
	duration := fs.String("duration", "", "Duration, e.g. 30min")
	_ = fs.Parse(args)

	if *contactID == "" {
		return fmt.Errorf("--contact is required")
	}

	interaction, err := c.AddInteraction(ctx, *contactID, models.InteractionInput{
		Type:     *interactionType,
		Date:     *date,
		Notes:    *notes,
		Duration: *duration,
	})
	if err != nil {
		return commandError("log interaction", err)
	}

	_, _ = fmt.Fprintf(out, "✓ Logged %s on %s (ID: %s)\n",
		interaction.Type.Label(), interaction.Date.String(), interaction.ID)
	return nil
}

// DeleteInteractionCommand deletes an interaction after confirmation.
func DeleteInteractionCommand(ctx context.Context, c *client.Client, out io.Writer, confirmer client.Confirmer, args []string) error {
	fs := flag.NewFlagSet("delete-interaction", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Delete without asking")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("interaction ID is required")
	}
	id := fs.Arg(0)

	if err := c.DeleteInteraction(ctx, id, withYes(*yes, confirmer)); err != nil {
		if errors.Is(err, client.ErrDeclined) {
			_, _ = fmt.Fprintln(out, "Deletion cancelled")
			return nil
		}
		return fmt.Errorf("failed to delete interaction: %w", err)
	}

	_, _ = fmt.Fprintf(out, "✓ Interaction deleted: %s\n", id)
	return nil
}
