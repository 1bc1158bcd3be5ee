// ABOUTME: Development backend implementing the contact and interaction REST contract
// ABOUTME: chi router under /api with CORS, request logging, and SQLite storage
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Server serves the REST contract over a SQLite database.
type Server struct {
	db             *sql.DB
	log            zerolog.Logger
	allowedOrigins []string
	validate       *validator.Validate
}

// New creates a server. allowedOrigins feeds CORS; an empty list allows any origin.
func New(db *sql.DB, log zerolog.Logger, allowedOrigins []string) *Server {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &Server{
		db:             db,
		log:            log,
		allowedOrigins: allowedOrigins,
		validate:       validator.New(),
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", s.handleListContacts)
			r.Post("/", s.handleCreateContact)
			r.Delete("/{contactID}", s.handleDeleteContact)
		})

		r.Route("/interactions", func(r chi.Router) {
			r.Get("/", s.handleListInteractions)
			r.Post("/", s.handleCreateInteraction)
			r.Get("/contact/{contactID}", s.handleContactInteractions)
			r.Delete("/{interactionID}", s.handleDeleteInteraction)
		})
	})

	return r
}

// requestLogger logs one line per request with the chi request ID.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.fail(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	s.ok(w, map[string]string{"status": "ok"})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("dev backend listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info().Msg("shutting down dev backend")
		return srv.Shutdown(shutdownCtx)
	}
}
