// Package store owns the application state: decks, their cards and the active
// study session. Every mutation replaces the whole state with a new snapshot
// and hands that snapshot to the persister. Lookups of unknown decks, cards or
// sessions are silent no-ops.
//
// A Store is meant for a single caller and is not safe for concurrent use.
package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/conorfennell/flashflow/internal/domain"
	"github.com/conorfennell/flashflow/internal/srs"
)

// Persister receives every new state. Implementations must not fail loudly:
// errors are theirs to report.
type Persister interface {
	Save(ctx context.Context, state domain.AppState)
}

// Store holds the current state and applies actions to it.
type Store struct {
	state     domain.AppState
	now       func() time.Time
	newID     func() string
	params    *srs.Params
	persister Persister
	log       *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for timestamps and due dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the generator for new deck and card ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithPersister sets where new states are saved.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithInitialState seeds the store, typically with a previously saved state.
func WithInitialState(state domain.AppState) Option {
	return func(s *Store) { s.state = state.Clone() }
}

// WithParams overrides the review policy.
func WithParams(p *srs.Params) Option {
	return func(s *Store) { s.params = p }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// wallClock is the default time source. Times are in UTC without a monotonic
// reading so a state survives a save and load unchanged.
func wallClock() time.Time {
	return time.Now().UTC()
}

// New creates a Store. Without options it starts empty, uses the wall clock,
// random UUIDs and does not persist anything.
func New(opts ...Option) *Store {
	s := &Store{
		state:  domain.EmptyState(),
		now:    wallClock,
		newID:  uuid.NewString,
		params: srs.DefaultParams(),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the current state.
func (s *Store) State() domain.AppState {
	return s.state.Clone()
}

// Dispatch applies a to the current state. If the state changed it becomes
// the current state and is persisted.
func (s *Store) Dispatch(a Action) bool {
	next, changed := Apply(s.state, a)
	if !changed {
		s.log.Debug("Action had no effect", "action", actionName(a))
		return false
	}
	s.state = next
	if s.persister != nil {
		s.persister.Save(context.Background(), next)
	}
	return true
}

// AddDeck creates an empty deck at the end of the deck list and returns its id.
func (s *Store) AddDeck(title, description string) string {
	id := s.newID()
	s.Dispatch(AddDeck{ID: id, Title: title, Description: description, At: s.now()})
	return id
}

// DeleteDeck removes a deck with all its cards. An active session on that deck is dropped.
func (s *Store) DeleteDeck(deckID string) {
	s.Dispatch(DeleteDeck{DeckID: deckID})
}

func (s *Store) UpdateDeck(deckID string, patch domain.DeckPatch) {
	s.Dispatch(UpdateDeck{DeckID: deckID, Patch: patch})
}

// AddCard appends a new card to a deck. ok is false and nothing changes when
// the deck does not exist.
func (s *Store) AddCard(deckID, front, back string, tags []string) (cardID string, ok bool) {
	id := s.newID()
	if !s.Dispatch(AddCard{ID: id, DeckID: deckID, Front: front, Back: back, Tags: tags, At: s.now()}) {
		return "", false
	}
	return id, true
}

func (s *Store) DeleteCard(deckID, cardID string) {
	s.Dispatch(DeleteCard{DeckID: deckID, CardID: cardID})
}

// UpdateCard edits a card's content. Scheduling fields are never touched.
func (s *Store) UpdateCard(deckID, cardID string, patch domain.CardPatch) {
	s.Dispatch(UpdateCard{DeckID: deckID, CardID: cardID, Patch: patch})
}

// ResetCard puts a card back in the new bucket, due now.
func (s *Store) ResetCard(deckID, cardID string) {
	s.Dispatch(ResetCard{DeckID: deckID, CardID: cardID, At: s.now()})
}

// ResetDeck resets every card of a deck.
func (s *Store) ResetDeck(deckID string) {
	s.Dispatch(ResetDeck{DeckID: deckID, At: s.now()})
}

// StartSession begins a study session on a deck, discarding any previous session.
func (s *Store) StartSession(deckID string) {
	s.Dispatch(StartSession{DeckID: deckID, At: s.now()})
}

// RateCard schedules a card of the active session's deck and logs the rating.
func (s *Store) RateCard(cardID string, rating domain.Rating) {
	s.Dispatch(RateCard{CardID: cardID, Rating: rating, At: s.now(), Params: s.params})
}

// EndSession marks the active session complete.
func (s *Store) EndSession() {
	s.Dispatch(EndSession{})
}

func actionName(a Action) string {
	switch a.(type) {
	case AddDeck:
		return "add_deck"
	case DeleteDeck:
		return "delete_deck"
	case UpdateDeck:
		return "update_deck"
	case AddCard:
		return "add_card"
	case DeleteCard:
		return "delete_card"
	case UpdateCard:
		return "update_card"
	case ResetCard:
		return "reset_card"
	case ResetDeck:
		return "reset_deck"
	case StartSession:
		return "start_session"
	case RateCard:
		return "rate_card"
	case EndSession:
		return "end_session"
	default:
		return "unknown"
	}
}
