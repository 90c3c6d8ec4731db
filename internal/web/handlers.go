package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/conorfennell/flashflow/internal/domain"
	"github.com/conorfennell/flashflow/internal/store"
)

type addDeckRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type updateDeckRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=1"`
	Description *string `json:"description"`
}

type addCardRequest struct {
	Front string   `json:"front" validate:"required"`
	Back  string   `json:"back" validate:"required"`
	Tags  []string `json:"tags" validate:"dive,required"`
}

type updateCardRequest struct {
	Front *string  `json:"front" validate:"omitnil,min=1"`
	Back  *string  `json:"back" validate:"omitnil,min=1"`
	Tags  []string `json:"tags" validate:"omitnil,dive,required"`
}

type startSessionRequest struct {
	DeckID string `json:"deckId" validate:"required"`
}

type rateCardRequest struct {
	CardID string `json:"cardId" validate:"required"`
	Rating string `json:"rating" validate:"required,oneof=again hard good easy"`
}

type idResponse struct {
	ID string `json:"id"`
}

// handleListDecks returns every deck with its cards.
func (s *Server) handleListDecks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var decks []domain.Deck
		s.withStore(func(st *store.Store) { decks = st.State().Decks })
		if decks == nil {
			decks = []domain.Deck{}
		}
		s.writeJSON(w, http.StatusOK, decks)
	}
}

func (s *Server) handleAddDeck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addDeckRequest
		if !s.decode(w, r, &req) {
			return
		}
		var id string
		s.withStore(func(st *store.Store) { id = st.AddDeck(req.Title, req.Description) })
		s.writeJSON(w, http.StatusCreated, idResponse{ID: id})
	}
}

func (s *Server) handleGetDeck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			deck domain.Deck
			ok   bool
		)
		s.withStore(func(st *store.Store) { deck, ok = st.DeckByID(chi.URLParam(r, "deckID")) })
		if !ok {
			s.writeError(w, http.StatusNotFound, "deck not found")
			return
		}
		s.writeJSON(w, http.StatusOK, deck)
	}
}

func (s *Server) handleUpdateDeck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateDeckRequest
		if !s.decode(w, r, &req) {
			return
		}
		s.withStore(func(st *store.Store) {
			st.UpdateDeck(chi.URLParam(r, "deckID"), domain.DeckPatch{Title: req.Title, Description: req.Description})
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleDeleteDeck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.withStore(func(st *store.Store) { st.DeleteDeck(chi.URLParam(r, "deckID")) })
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleDeckStats returns card counts per status for a deck.
func (s *Server) handleDeckStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var stats *domain.DeckStats
		s.withStore(func(st *store.Store) { stats = deckStatsOrNil(st, chi.URLParam(r, "deckID")) })
		if stats == nil {
			s.writeError(w, http.StatusNotFound, "deck not found")
			return
		}
		s.writeJSON(w, http.StatusOK, stats)
	}
}

// handleGetDue returns the due cards of all decks.
func (s *Server) handleGetDue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cards []domain.Card
		s.withStore(func(st *store.Store) { cards = st.CardsDueToday() })
		s.writeCards(w, cards)
	}
}

func (s *Server) handleGetDeckDue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cards []domain.Card
		s.withStore(func(st *store.Store) { cards = st.DeckCardsDueToday(chi.URLParam(r, "deckID")) })
		s.writeCards(w, cards)
	}
}

func (s *Server) writeCards(w http.ResponseWriter, cards []domain.Card) {
	if cards == nil {
		cards = []domain.Card{}
	}
	s.writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleResetDeck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.withStore(func(st *store.Store) { st.ResetDeck(chi.URLParam(r, "deckID")) })
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleAddCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addCardRequest
		if !s.decode(w, r, &req) {
			return
		}
		var (
			id string
			ok bool
		)
		s.withStore(func(st *store.Store) {
			id, ok = st.AddCard(chi.URLParam(r, "deckID"), req.Front, req.Back, req.Tags)
		})
		if !ok {
			s.writeError(w, http.StatusNotFound, "deck not found")
			return
		}
		s.writeJSON(w, http.StatusCreated, idResponse{ID: id})
	}
}

func (s *Server) handleUpdateCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateCardRequest
		if !s.decode(w, r, &req) {
			return
		}
		patch := domain.CardPatch{Front: req.Front, Back: req.Back, Tags: req.Tags}
		s.withStore(func(st *store.Store) {
			st.UpdateCard(chi.URLParam(r, "deckID"), chi.URLParam(r, "cardID"), patch)
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleDeleteCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.withStore(func(st *store.Store) {
			st.DeleteCard(chi.URLParam(r, "deckID"), chi.URLParam(r, "cardID"))
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleResetCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.withStore(func(st *store.Store) {
			st.ResetCard(chi.URLParam(r, "deckID"), chi.URLParam(r, "cardID"))
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleGetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var session *domain.StudySession
		s.withStore(func(st *store.Store) { session = st.State().ActiveSession })
		if session == nil {
			s.writeError(w, http.StatusNotFound, "no active session")
			return
		}
		s.writeJSON(w, http.StatusOK, session)
	}
}

func (s *Server) handleStartSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startSessionRequest
		if !s.decode(w, r, &req) {
			return
		}
		s.withStore(func(st *store.Store) { st.StartSession(req.DeckID) })
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleRateCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rateCardRequest
		if !s.decode(w, r, &req) {
			return
		}
		rating, err := domain.ParseRating(req.Rating)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.withStore(func(st *store.Store) { st.RateCard(req.CardID, rating) })
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleEndSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.withStore(func(st *store.Store) { st.EndSession() })
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleSessionStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			stats domain.SessionStats
			ok    bool
		)
		s.withStore(func(st *store.Store) { stats, ok = st.SessionStats() })
		if !ok {
			s.writeError(w, http.StatusNotFound, "no active session")
			return
		}
		s.writeJSON(w, http.StatusOK, stats)
	}
}
