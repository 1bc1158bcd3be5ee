// ABOUTME: JSON response helpers for the development backend
// ABOUTME: Uniform error envelope, status helpers, and strict body decoding
package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// ErrorResponse is the error envelope for every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) ok(w http.ResponseWriter, data any) {
	writeJSON(w, s.log, http.StatusOK, data)
}

func (s *Server) created(w http.ResponseWriter, data any) {
	writeJSON(w, s.log, http.StatusCreated, data)
}

func (s *Server) noContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, s.log, status, ErrorResponse{Error: message})
}

// internalError logs the cause and returns a generic message.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error().Err(err).Str("path", r.URL.Path).Msg("internal error")
	s.fail(w, http.StatusInternalServerError, "internal server error")
}

// decode reads a JSON body into dst, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}
