package domain

import (
	"math"
	"time"
)

// ReviewEntry records a single rating given during a study session.
type ReviewEntry struct {
	CardID string `json:"cardId" validate:"required"`
	Rating Rating `json:"rating" validate:"min=1,max=4"`
}

// StudySession tracks the review pass over one deck. At most one is active at a time.
type StudySession struct {
	DeckID        string        `json:"deckId" validate:"required"`
	StartedAt     time.Time     `json:"startedAt"`
	CardsReviewed []ReviewEntry `json:"cardsReviewed" validate:"required,dive"`
	IsComplete    bool          `json:"isComplete"`
}

// Clone returns a deep copy of s.
func (s StudySession) Clone() StudySession {
	if s.CardsReviewed != nil {
		s.CardsReviewed = append([]ReviewEntry{}, s.CardsReviewed...)
	}
	return s
}

// Stats summarizes the ratings logged so far.
func (s StudySession) Stats() SessionStats {
	var st SessionStats
	st.Total = len(s.CardsReviewed)
	for _, e := range s.CardsReviewed {
		if e.Rating.IsCorrect() {
			st.Correct++
		}
	}
	st.Incorrect = st.Total - st.Correct
	if st.Total > 0 {
		st.Accuracy = int(math.Round(100 * float64(st.Correct) / float64(st.Total)))
	}
	return st
}

// SessionStats is the outcome summary of a study session.
type SessionStats struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Accuracy  int `json:"accuracy"` // percentage, 0 when nothing was reviewed
	Total     int `json:"total"`
}
