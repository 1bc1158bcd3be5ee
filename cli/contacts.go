// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for listing, adding, and deleting contacts
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/models"
)

// ListContactsCommand lists contacts, optionally filtered by --query.
func ListContactsCommand(ctx context.Context, c *client.Client, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	query := fs.String("query", "", "Search name, company, role, or tags")
	_ = fs.Parse(args)

	contacts, err := c.ListContacts(ctx, *query)
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}

	if len(contacts) == 0 {
		if strings.TrimSpace(*query) != "" {
			_, _ = fmt.Fprintf(out, "No contacts match %q\n", *query)
		} else {
			_, _ = fmt.Fprintln(out, "No contacts yet. Add one with: connecthub crm add-contact --name NAME --email EMAIL")
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCOMPANY\tROLE\tTAGS")
	_, _ = fmt.Fprintln(w, "--\t----\t-----\t-------\t----\t----")
	for _, contact := range contacts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			contact.ID, contact.Name, contact.Email, contact.Company, contact.Role,
			strings.Join(contact.Tags, ", "))
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(out, "\n%d contact(s)\n", len(contacts))
	return nil
}

// AddContactCommand adds a new contact.
func AddContactCommand(ctx context.Context, c *client.Client, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	name := fs.String("name", "", "Contact name (required)")
	email := fs.String("email", "", "Email address (required)")
	company := fs.String("company", "", "Company name")
	role := fs.String("role", "", "Job title or role")
	tags := fs.String("tags", "", "Comma separated tags")
	_ = fs.Parse(args)

	contact, err := c.CreateContact(ctx, models.ContactInput{
		Name:    *name,
		Email:   *email,
		Company: *company,
		Role:    *role,
		Tags:    *tags,
	})
	if err != nil {
		return commandError("create contact", err)
	}

	_, _ = fmt.Fprintf(out, "✓ Contact created: %s (ID: %s)\n", contact.Name, contact.ID)
	return nil
}

// DeleteContactCommand deletes a contact and its interactions after
// confirmation. --yes skips the prompt.
func DeleteContactCommand(ctx context.Context, c *client.Client, out io.Writer, confirmer client.Confirmer, args []string) error {
	fs := flag.NewFlagSet("delete-contact", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Delete without asking")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("contact ID is required")
	}
	id := fs.Arg(0)

	if err := c.DeleteContact(ctx, id, withYes(*yes, confirmer)); err != nil {
		if errors.Is(err, client.ErrDeclined) {
			_, _ = fmt.Fprintln(out, "Deletion cancelled")
			return nil
		}
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	_, _ = fmt.Fprintf(out, "✓ Contact deleted: %s\n", id)
	return nil
}

func withYes(yes bool, confirmer client.Confirmer) client.Confirmer {
	if yes {
		return client.Confirmed
	}
	return confirmer
}

// commandError names the offending flag for validation failures and wraps
// everything else.
func commandError(action string, err error) error {
	var verr *client.ValidationError
	if errors.As(err, &verr) {
		if verr.Field == "" {
			return verr
		}
		return fmt.Errorf("--%s %s", verr.Field, verr.Message)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
