package domain

import "time"

// Default scheduling values for a card that has never been reviewed.
const (
	InitialInterval   = 1
	InitialEaseFactor = 2.5
)

// Status is the learning bucket a card currently sits in.
type Status string

const (
	StatusNew      Status = "new"
	StatusLearning Status = "learning"
	StatusReview   Status = "review"
	StatusMastered Status = "mastered"
)

// Card represents a single front/back flashcard owned by a deck.
type Card struct {
	ID             string     `json:"id" validate:"required"`
	DeckID         string     `json:"deckId" validate:"required"`
	Front          string     `json:"front"`
	Back           string     `json:"back"`
	Tags           []string   `json:"tags"`
	Status         Status     `json:"status" validate:"oneof=new learning review mastered"`
	Interval       int        `json:"interval" validate:"min=1"`
	EaseFactor     float64    `json:"easeFactor" validate:"gte=1.3"`
	DueDate        time.Time  `json:"dueDate"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastReviewedAt *time.Time `json:"lastReviewedAt"` // nil until first rated, and after a reset
}

// Reset returns a copy of c with its scheduling state back to that of a fresh card.
// Content fields are left untouched.
func (c Card) Reset(now time.Time) Card {
	c.Status = StatusNew
	c.Interval = InitialInterval
	c.EaseFactor = InitialEaseFactor
	c.DueDate = now
	c.LastReviewedAt = nil
	return c
}

// Clone returns a copy of c that shares no slices or pointers with it.
func (c Card) Clone() Card {
	if c.Tags != nil {
		c.Tags = append([]string{}, c.Tags...)
	}
	if c.LastReviewedAt != nil {
		t := *c.LastReviewedAt
		c.LastReviewedAt = &t
	}
	return c
}

// CardPatch carries the mutable content fields of a card. Nil fields are left unchanged;
// a non-nil empty Tags slice clears the tags.
type CardPatch struct {
	Front *string
	Back  *string
	Tags  []string
}
