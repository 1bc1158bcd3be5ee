// ABOUTME: Interaction handlers for the development backend
// ABOUTME: List all or per contact, log against an existing contact, delete
package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/harperreed/connecthub/db"
	"github.com/harperreed/connecthub/models"
)

type createInteractionRequest struct {
	Type      string      `json:"type" validate:"omitempty,oneof=meeting call email message"`
	Date      models.Date `json:"date"`
	Notes     string      `json:"notes" validate:"required"`
	Duration  string      `json:"duration"`
	ContactID string      `json:"contactId" validate:"required"`
}

// GET /api/interactions
func (s *Server) handleListInteractions(w http.ResponseWriter, r *http.Request) {
	interactions, err := db.ListInteractions(s.db)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.ok(w, interactions)
}

// GET /api/interactions/contact/{contactID}
func (s *Server) handleContactInteractions(w http.ResponseWriter, r *http.Request) {
	interactions, err := db.ListContactInteractions(s.db, chi.URLParam(r, "contactID"))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.ok(w, interactions)
}

// POST /api/interactions
func (s *Server) handleCreateInteraction(w http.ResponseWriter, r *http.Request) {
	var req createInteractionRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.Notes = strings.TrimSpace(req.Notes)

	if err := s.validate.Struct(req); err != nil {
		s.fail(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if req.Date.IsZero() {
		s.fail(w, http.StatusBadRequest, "date is required")
		return
	}

	kind := models.InteractionType(req.Type)
	if kind == "" {
		kind = models.InteractionMeeting
	}

	interaction := &models.Interaction{
		ContactID: req.ContactID,
		Type:      kind,
		Date:      models.NewDate(req.Date.Time),
		Notes:     req.Notes,
		Duration:  strings.TrimSpace(req.Duration),
	}
	if err := db.CreateInteraction(s.db, interaction); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.fail(w, http.StatusNotFound, "contact not found")
			return
		}
		s.internalError(w, r, err)
		return
	}

	s.created(w, interaction)
}

// DELETE /api/interactions/{interactionID}
func (s *Server) handleDeleteInteraction(w http.ResponseWriter, r *http.Request) {
	if err := db.DeleteInteraction(s.db, chi.URLParam(r, "interactionID")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.fail(w, http.StatusNotFound, "interaction not found")
			return
		}
		s.internalError(w, r, err)
		return
	}
	s.noContent(w)
}

// validationMessage turns the first field error into "<field> is required" style text.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return field + " is invalid"
	}
}
