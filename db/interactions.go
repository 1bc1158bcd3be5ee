// ABOUTME: Interaction database operations
// ABOUTME: Logs, lists, and deletes interactions attached to contacts
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/connecthub/models"
)

const interactionColumns = `id, contact_id, interaction_type, date, notes, duration`

// CreateInteraction stores an interaction. It returns ErrNotFound when the
// contact does not exist.
func CreateInteraction(db *sql.DB, interaction *models.Interaction) error {
	contact, err := GetContact(db, interaction.ContactID)
	if err != nil {
		return fmt.Errorf("failed to look up contact: %w", err)
	}
	if contact == nil {
		return ErrNotFound
	}

	interaction.ID = newID()
	interaction.Type = interaction.Type.Normalize()

	_, err = db.Exec(`
		INSERT INTO interactions (id, contact_id, interaction_type, date, notes, duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, interaction.ID, interaction.ContactID, string(interaction.Type), interaction.Date.String(),
		interaction.Notes, interaction.Duration, time.Now().UTC())

	return err
}

// ListInteractions returns every interaction, most recent first.
func ListInteractions(db *sql.DB) ([]models.Interaction, error) {
	rows, err := db.Query(`
		SELECT ` + interactionColumns + `
		FROM interactions
		ORDER BY date DESC, created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return collectInteractions(rows)
}

// ListContactInteractions returns one contact's interactions, most recent first.
func ListContactInteractions(db *sql.DB, contactID string) ([]models.Interaction, error) {
	rows, err := db.Query(`
		SELECT `+interactionColumns+`
		FROM interactions
		WHERE contact_id = ?
		ORDER BY date DESC, created_at DESC
	`, contactID)
	if err != nil {
		return nil, err
	}
	return collectInteractions(rows)
}

func DeleteInteraction(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM interactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func collectInteractions(rows *sql.Rows) ([]models.Interaction, error) {
	defer func() { _ = rows.Close() }()

	interactions := []models.Interaction{}
	for rows.Next() {
		var i models.Interaction
		var kind, date string
		if err := rows.Scan(&i.ID, &i.ContactID, &kind, &date, &i.Notes, &i.Duration); err != nil {
			return nil, err
		}
		i.Type = models.InteractionType(kind)

		parsed, err := models.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("interaction %s: %w", i.ID, err)
		}
		i.Date = parsed

		interactions = append(interactions, i)
	}

	return interactions, rows.Err()
}
