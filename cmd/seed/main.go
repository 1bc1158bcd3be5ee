// ABOUTME: Seeds a backend with sample contacts and interactions
// ABOUTME: Spreads interaction dates so every staleness tier shows up in the dashboard

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/config"
	"github.com/harperreed/connecthub/models"
)

type sampleContact struct {
	contact models.ContactInput
	// days ago for each interaction; none means never contacted
	history []int
}

var samples = []sampleContact{
	{models.ContactInput{Name: "Ada Lovelace", Email: "ada@example.com", Company: "Analytical Engines", Role: "Founder", Tags: "math, investor"}, []int{3, 40, 95}},
	{models.ContactInput{Name: "Grace Hopper", Email: "grace@example.com", Company: "US Navy", Role: "Rear Admiral", Tags: "compilers, mentor"}, []int{45}},
	{models.ContactInput{Name: "Linus Torvalds", Email: "linus@example.com", Company: "Linux Foundation", Role: "Fellow", Tags: "kernel"}, []int{120, 200}},
	{models.ContactInput{Name: "Margaret Hamilton", Email: "margaret@example.com", Company: "Hamilton Technologies", Role: "CEO", Tags: "apollo, client"}, []int{12}},
	{models.ContactInput{Name: "Dennis Ritchie", Email: "dmr@example.com", Company: "Bell Labs", Role: "Researcher", Tags: "unix"}, nil},
}

var interactionTypes = []string{"meeting", "call", "email", "message"}

func main() {
	apiURL := flag.String("api-url", config.DefaultAPIURL, "Backend API root")
	dryRun := flag.Bool("dry-run", false, "Show what would be created without making changes")
	flag.Parse()

	if err := seed(context.Background(), client.New(*apiURL), *dryRun, time.Now()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding completed successfully")
}

func seed(ctx context.Context, c *client.Client, dryRun bool, now time.Time) error {
	existing, err := existingEmails(ctx, c, dryRun)
	if err != nil {
		return err
	}

	for _, s := range samples {
		if existing[normalizeEmail(s.contact.Email)] {
			log.Printf("Skipping %s: already present", s.contact.Name)
			continue
		}
		if dryRun {
			log.Printf("Would create %s with %d interaction(s)", s.contact.Name, len(s.history))
			continue
		}

		contact, err := c.CreateContact(ctx, s.contact)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", s.contact.Name, err)
		}
		log.Printf("Created %s (ID: %s)", contact.Name, contact.ID)

		for i, daysAgo := range s.history {
			_, err := c.AddInteraction(ctx, contact.ID, models.InteractionInput{
				Type:  interactionTypes[i%len(interactionTypes)],
				Date:  now.AddDate(0, 0, -daysAgo).Format(models.DateLayout),
				Notes: fmt.Sprintf("Caught up with %s", contact.Name),
			})
			if err != nil {
				return fmt.Errorf("failed to log interaction for %s: %w", contact.Name, err)
			}
		}
	}
	return nil
}

// existingEmails lets a second seed run skip contacts it already created. A
// dry run never contacts the backend.
func existingEmails(ctx context.Context, c *client.Client, dryRun bool) (map[string]bool, error) {
	seen := make(map[string]bool)
	if dryRun {
		return seen, nil
	}

	contacts, err := c.ListContacts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list existing contacts: %w", err)
	}
	for _, contact := range contacts {
		seen[normalizeEmail(contact.Email)] = true
	}
	return seen, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
