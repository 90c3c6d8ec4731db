package domain

import "time"

// Deck is an ordered collection of cards. Cards belong to exactly one deck.
type Deck struct {
	ID          string    `json:"id" validate:"required"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Cards       []Card    `json:"cards" validate:"required,dive"`
}

// Clone returns a deep copy of d.
func (d Deck) Clone() Deck {
	if d.Cards != nil {
		cards := make([]Card, len(d.Cards))
		for i, c := range d.Cards {
			cards[i] = c.Clone()
		}
		d.Cards = cards
	}
	return d
}

// CardIndex returns the position of the card with the given id, or -1.
func (d Deck) CardIndex(cardID string) int {
	for i, c := range d.Cards {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

// DeckPatch carries the mutable metadata of a deck. Nil fields are left unchanged.
type DeckPatch struct {
	Title       *string
	Description *string
}

// DeckStats counts a deck's cards by status. Cards in the review bucket are
// included in Total but have no field of their own.
type DeckStats struct {
	Total    int `json:"total"`
	NewCards int `json:"newCards"`
	Learning int `json:"learning"`
	Mastered int `json:"mastered"`
}
