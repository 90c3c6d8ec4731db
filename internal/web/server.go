// Package web exposes the store as a JSON HTTP API.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/conorfennell/flashflow/internal/domain"
	"github.com/conorfennell/flashflow/internal/store"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	// mu serializes access to store, which expects a single caller.
	mu       sync.Mutex
	store    *store.Store
	router   chi.Router
	validate *validator.Validate
	log      *slog.Logger
}

// NewServer creates and configures a new server.
func NewServer(st *store.Store, log *slog.Logger) *Server {
	s := &Server{
		store:    st,
		router:   chi.NewRouter(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)

	s.router.Get("/due", s.handleGetDue())

	s.router.Route("/decks", func(r chi.Router) {
		r.Get("/", s.handleListDecks())
		r.Post("/", s.handleAddDeck())

		r.Route("/{deckID}", func(r chi.Router) {
			r.Get("/", s.handleGetDeck())
			r.Patch("/", s.handleUpdateDeck())
			r.Delete("/", s.handleDeleteDeck())
			r.Get("/stats", s.handleDeckStats())
			r.Get("/due", s.handleGetDeckDue())
			r.Post("/reset", s.handleResetDeck())

			r.Post("/cards", s.handleAddCard())
			r.Patch("/cards/{cardID}", s.handleUpdateCard())
			r.Delete("/cards/{cardID}", s.handleDeleteCard())
			r.Post("/cards/{cardID}/reset", s.handleResetCard())
		})
	})

	s.router.Route("/session", func(r chi.Router) {
		r.Get("/", s.handleGetSession())
		r.Post("/", s.handleStartSession())
		r.Post("/ratings", s.handleRateCard())
		r.Post("/end", s.handleEndSession())
		r.Get("/stats", s.handleSessionStats())
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("Request handled", "method", r.Method, "path", r.URL.Path, "status", ww.Status())
	})
}

// decode reads a JSON body into dst and validates it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			s.writeError(w, http.StatusBadRequest, "invalid field "+verrs[0].Field()+": failed "+verrs[0].Tag())
			return false
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("Failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// withStore runs fn while holding the store lock.
func (s *Server) withStore(fn func(st *store.Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.store)
}

func deckStatsOrNil(st *store.Store, deckID string) *domain.DeckStats {
	stats, ok := st.DeckStats(deckID)
	if !ok {
		return nil
	}
	return &stats
}
