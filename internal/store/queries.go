package store

import (
	"time"

	"github.com/conorfennell/flashflow/internal/domain"
	"github.com/conorfennell/flashflow/internal/srs"
)

// DeckByID returns a copy of the deck with the given id.
func (s *Store) DeckByID(deckID string) (domain.Deck, bool) {
	i := s.state.DeckIndex(deckID)
	if i < 0 {
		return domain.Deck{}, false
	}
	return s.state.Decks[i].Clone(), true
}

// CardsDueToday returns the due cards of every deck, in deck then card order.
func (s *Store) CardsDueToday() []domain.Card {
	now := s.now()
	var due []domain.Card
	for _, d := range s.state.Decks {
		due = appendDue(due, d, now)
	}
	return due
}

// DeckCardsDueToday returns the due cards of one deck, in card order.
func (s *Store) DeckCardsDueToday(deckID string) []domain.Card {
	i := s.state.DeckIndex(deckID)
	if i < 0 {
		return nil
	}
	return appendDue(nil, s.state.Decks[i], s.now())
}

// SessionStats summarizes the active session. ok is false when there is none.
func (s *Store) SessionStats() (stats domain.SessionStats, ok bool) {
	if s.state.ActiveSession == nil {
		return domain.SessionStats{}, false
	}
	return s.state.ActiveSession.Stats(), true
}

// DeckStats counts a deck's cards by status.
func (s *Store) DeckStats(deckID string) (domain.DeckStats, bool) {
	i := s.state.DeckIndex(deckID)
	if i < 0 {
		return domain.DeckStats{}, false
	}
	cards := s.state.Decks[i].Cards
	stats := domain.DeckStats{Total: len(cards)}
	for _, c := range cards {
		switch c.Status {
		case domain.StatusNew:
			stats.NewCards++
		case domain.StatusLearning:
			stats.Learning++
		case domain.StatusMastered:
			stats.Mastered++
		}
	}
	return stats, true
}

func appendDue(dst []domain.Card, d domain.Deck, now time.Time) []domain.Card {
	for _, c := range d.Cards {
		if srs.IsDue(c, now) {
			dst = append(dst, c.Clone())
		}
	}
	return dst
}
