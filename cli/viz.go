// ABOUTME: Visualization CLI commands
// ABOUTME: Writes the engagement graph as DOT to a file or stdout
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/viz"
)

// VizGraphCommand generates the contact engagement graph.
func VizGraphCommand(ctx context.Context, c *client.Client, out io.Writer, now time.Time, args []string) error {
	fs := flag.NewFlagSet("viz graph", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	query := fs.String("query", "", "Restrict to contacts matching this search")

	if err := fs.Parse(args); err != nil {
		return err
	}

	contacts, err := c.ListContacts(ctx, *query)
	if err != nil {
		return fmt.Errorf("failed to fetch contacts: %w", err)
	}
	dash, err := c.Dashboard(ctx, contacts, now)
	if err != nil {
		return fmt.Errorf("failed to fetch interactions: %w", err)
	}

	dot, err := viz.GenerateEngagementGraph(ctx, dash.Engagements)
	if err != nil {
		return err
	}

	if *output != "" {
		return os.WriteFile(*output, []byte(dot), 0644)
	}

	_, _ = fmt.Fprintln(out, dot)
	return nil
}
