// ABOUTME: Contact handlers for the development backend
// ABOUTME: List with search, create with validation, and cascading delete
package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/harperreed/connecthub/db"
	"github.com/harperreed/connecthub/models"
)

type createContactRequest struct {
	Name    string   `json:"name" validate:"required"`
	Email   string   `json:"email" validate:"required"`
	Company string   `json:"company"`
	Role    string   `json:"role"`
	Tags    []string `json:"tags"`
}

// GET /api/contacts?search=<q>
func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := db.FindContacts(s.db, r.URL.Query().Get("search"))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.ok(w, contacts)
}

// POST /api/contacts
func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := s.validate.Struct(req); err != nil {
		s.fail(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	contact := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Company: strings.TrimSpace(req.Company),
		Role:    strings.TrimSpace(req.Role),
		Tags:    cleanTags(req.Tags),
	}
	if err := db.CreateContact(s.db, contact); err != nil {
		s.internalError(w, r, err)
		return
	}

	s.log.Debug().Str("contact_id", contact.ID).Msg("contact created")
	s.created(w, contact)
}

// DELETE /api/contacts/{contactID}
func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "contactID")
	if err := db.DeleteContact(s.db, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.fail(w, http.StatusNotFound, "contact not found")
			return
		}
		s.internalError(w, r, err)
		return
	}
	s.noContent(w)
}

func cleanTags(tags []string) []string {
	out := []string{}
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}
