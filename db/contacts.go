// ABOUTME: Contact database operations
// ABOUTME: Create, search, lookup, and cascading delete over the contacts table
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/connecthub/models"
)

const contactColumns = `id, name, email, company, role, tags`

func CreateContact(db *sql.DB, contact *models.Contact) error {
	contact.ID = newID()
	if contact.Tags == nil {
		contact.Tags = []string{}
	}

	tags, err := json.Marshal(contact.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO contacts (id, name, email, company, role, tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, contact.ID, contact.Name, contact.Email, contact.Company, contact.Role, string(tags), time.Now().UTC())

	return err
}

// GetContact returns nil, nil when no contact has the given ID.
func GetContact(db *sql.DB, id string) (*models.Contact, error) {
	row := db.QueryRow(`SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id)

	contact, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// FindContacts lists contacts in creation order. A non-blank query keeps those
// whose name, company, role, or any tag contains it, ignoring case.
func FindContacts(db *sql.DB, query string) ([]models.Contact, error) {
	query = strings.TrimSpace(query)

	var rows *sql.Rows
	var err error
	if query == "" {
		rows, err = db.Query(`SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at, id`)
	} else {
		pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
		rows, err = db.Query(`
			SELECT `+contactColumns+`
			FROM contacts
			WHERE LOWER(name) LIKE ? ESCAPE '\'
				OR LOWER(company) LIKE ? ESCAPE '\'
				OR LOWER(role) LIKE ? ESCAPE '\'
				OR EXISTS (
					SELECT 1 FROM json_each(contacts.tags)
					WHERE LOWER(json_each.value) LIKE ? ESCAPE '\'
				)
			ORDER BY created_at, id
		`, pattern, pattern, pattern, pattern)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	contacts := []models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}

	return contacts, rows.Err()
}

// DeleteContact removes a contact and every interaction logged for it.
func DeleteContact(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM interactions WHERE contact_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete interactions: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(s scanner) (*models.Contact, error) {
	var c models.Contact
	var tags string
	if err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Company, &c.Role, &tags); err != nil {
		return nil, err
	}

	c.Tags = []string{}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags for contact %s: %w", c.ID, err)
		}
	}
	return &c, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
