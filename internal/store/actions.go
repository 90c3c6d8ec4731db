package store

import (
	"slices"
	"time"

	"github.com/conorfennell/flashflow/internal/domain"
	"github.com/conorfennell/flashflow/internal/srs"
)

// Action is a state transition. Actions carry everything they need, including
// generated ids and the time they happen at, so applying one is deterministic.
type Action interface {
	apply(s domain.AppState) (domain.AppState, bool)
}

// Apply returns the state that results from a on s, and whether anything changed.
// s is never modified; when nothing changed the returned state is s itself.
func Apply(s domain.AppState, a Action) (domain.AppState, bool) {
	next, changed := a.apply(s)
	if !changed {
		return s, false
	}
	return next, true
}

type AddDeck struct {
	ID          string
	Title       string
	Description string
	At          time.Time
}

func (a AddDeck) apply(s domain.AppState) (domain.AppState, bool) {
	deck := domain.Deck{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		CreatedAt:   a.At,
		Cards:       []domain.Card{},
	}
	decks := make([]domain.Deck, 0, len(s.Decks)+1)
	decks = append(decks, s.Decks...)
	s.Decks = append(decks, deck)
	return s, true
}

type DeleteDeck struct {
	DeckID string
}

func (a DeleteDeck) apply(s domain.AppState) (domain.AppState, bool) {
	i := s.DeckIndex(a.DeckID)
	if i < 0 {
		return s, false
	}
	s.Decks = slices.Delete(slices.Clone(s.Decks), i, i+1)
	if s.ActiveSession != nil && s.ActiveSession.DeckID == a.DeckID {
		s.ActiveSession = nil
	}
	return s, true
}

type UpdateDeck struct {
	DeckID string
	Patch  domain.DeckPatch
}

func (a UpdateDeck) apply(s domain.AppState) (domain.AppState, bool) {
	return withDeck(s, a.DeckID, func(d domain.Deck) (domain.Deck, bool) {
		if a.Patch.Title != nil {
			d.Title = *a.Patch.Title
		}
		if a.Patch.Description != nil {
			d.Description = *a.Patch.Description
		}
		return d, true
	})
}

type AddCard struct {
	ID     string
	DeckID string
	Front  string
	Back   string
	Tags   []string
	At     time.Time
}

func (a AddCard) apply(s domain.AppState) (domain.AppState, bool) {
	return withDeck(s, a.DeckID, func(d domain.Deck) (domain.Deck, bool) {
		tags := []string{}
		if a.Tags != nil {
			tags = slices.Clone(a.Tags)
		}
		card := domain.Card{
			ID:        a.ID,
			DeckID:    a.DeckID,
			Front:     a.Front,
			Back:      a.Back,
			Tags:      tags,
			CreatedAt: a.At,
		}.Reset(a.At)
		cards := make([]domain.Card, 0, len(d.Cards)+1)
		cards = append(cards, d.Cards...)
		d.Cards = append(cards, card)
		return d, true
	})
}

type DeleteCard struct {
	DeckID string
	CardID string
}

func (a DeleteCard) apply(s domain.AppState) (domain.AppState, bool) {
	return withDeck(s, a.DeckID, func(d domain.Deck) (domain.Deck, bool) {
		i := d.CardIndex(a.CardID)
		if i < 0 {
			return d, false
		}
		d.Cards = slices.Delete(slices.Clone(d.Cards), i, i+1)
		return d, true
	})
}

type UpdateCard struct {
	DeckID string
	CardID string
	Patch  domain.CardPatch
}

func (a UpdateCard) apply(s domain.AppState) (domain.AppState, bool) {
	return withCard(s, a.DeckID, a.CardID, func(c domain.Card) domain.Card {
		if a.Patch.Front != nil {
			c.Front = *a.Patch.Front
		}
		if a.Patch.Back != nil {
			c.Back = *a.Patch.Back
		}
		if a.Patch.Tags != nil {
			c.Tags = slices.Clone(a.Patch.Tags)
		}
		return c
	})
}

type ResetCard struct {
	DeckID string
	CardID string
	At     time.Time
}

func (a ResetCard) apply(s domain.AppState) (domain.AppState, bool) {
	return withCard(s, a.DeckID, a.CardID, func(c domain.Card) domain.Card {
		return c.Reset(a.At)
	})
}

type ResetDeck struct {
	DeckID string
	At     time.Time
}

func (a ResetDeck) apply(s domain.AppState) (domain.AppState, bool) {
	return withDeck(s, a.DeckID, func(d domain.Deck) (domain.Deck, bool) {
		cards := make([]domain.Card, len(d.Cards))
		for i, c := range d.Cards {
			cards[i] = c.Reset(a.At)
		}
		d.Cards = cards
		return d, true
	})
}

type StartSession struct {
	DeckID string
	At     time.Time
}

func (a StartSession) apply(s domain.AppState) (domain.AppState, bool) {
	s.ActiveSession = &domain.StudySession{
		DeckID:        a.DeckID,
		StartedAt:     a.At,
		CardsReviewed: []domain.ReviewEntry{},
	}
	return s, true
}

// RateCard reviews a card of the active session's deck. It is ignored when no
// session is active or the card is not in that deck.
type RateCard struct {
	CardID string
	Rating domain.Rating
	At     time.Time
	Params *srs.Params
}

func (a RateCard) apply(s domain.AppState) (domain.AppState, bool) {
	if s.ActiveSession == nil || !a.Rating.IsValid() {
		return s, false
	}
	params := a.Params
	if params == nil {
		params = srs.DefaultParams()
	}

	next, changed := withCard(s, s.ActiveSession.DeckID, a.CardID, func(c domain.Card) domain.Card {
		return params.NextReview(c, a.Rating, a.At).Apply(c, a.At)
	})
	if !changed {
		return s, false
	}

	session := *s.ActiveSession
	reviewed := make([]domain.ReviewEntry, 0, len(session.CardsReviewed)+1)
	reviewed = append(reviewed, session.CardsReviewed...)
	session.CardsReviewed = append(reviewed, domain.ReviewEntry{CardID: a.CardID, Rating: a.Rating})
	next.ActiveSession = &session
	return next, true
}

type EndSession struct{}

func (EndSession) apply(s domain.AppState) (domain.AppState, bool) {
	if s.ActiveSession == nil {
		return s, false
	}
	session := *s.ActiveSession
	session.IsComplete = true
	s.ActiveSession = &session
	return s, true
}

// withDeck replaces the deck with the given id by the result of fn. The deck
// slice is copied so s is left as it was.
func withDeck(s domain.AppState, deckID string, fn func(domain.Deck) (domain.Deck, bool)) (domain.AppState, bool) {
	i := s.DeckIndex(deckID)
	if i < 0 {
		return s, false
	}
	deck, changed := fn(s.Decks[i])
	if !changed {
		return s, false
	}
	s.Decks = slices.Clone(s.Decks)
	s.Decks[i] = deck
	return s, true
}

func withCard(s domain.AppState, deckID, cardID string, fn func(domain.Card) domain.Card) (domain.AppState, bool) {
	return withDeck(s, deckID, func(d domain.Deck) (domain.Deck, bool) {
		j := d.CardIndex(cardID)
		if j < 0 {
			return d, false
		}
		d.Cards = slices.Clone(d.Cards)
		d.Cards[j] = fn(d.Cards[j])
		return d, true
	})
}
