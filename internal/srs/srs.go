package srs

import (
	"math"
	"time"

	"github.com/conorfennell/flashflow/internal/domain"
)

// Params holds the constants of the review policy.
type Params struct {
	MinEaseFactor      float64 // ease never drops below this
	AgainEasePenalty   float64 // subtracted from ease on Again
	HardEasePenalty    float64 // subtracted from ease on Hard
	EasyEaseBonus      float64 // added to ease on Easy
	HardIntervalFactor float64 // interval multiplier on Hard
	EasyIntervalBonus  float64 // extra interval multiplier on Easy, on top of ease
}

// DefaultParams returns the policy used throughout the application.
func DefaultParams() *Params {
	return &Params{
		MinEaseFactor:      1.3,
		AgainEasePenalty:   0.2,
		HardEasePenalty:    0.15,
		EasyEaseBonus:      0.15,
		HardIntervalFactor: 1.2,
		EasyIntervalBonus:  1.3,
	}
}

// Review is the scheduling outcome of rating a card.
type Review struct {
	Interval   int
	EaseFactor float64
	DueDate    time.Time
	Status     domain.Status
}

// NextReview computes the next interval, ease factor, due date and status for
// a card given a rating. It does not modify the card. An invalid rating leaves
// the card's schedule as it is.
func (p *Params) NextReview(card domain.Card, rating domain.Rating, now time.Time) Review {
	interval := card.Interval
	ease := card.EaseFactor
	status := card.Status

	switch rating {
	case domain.Again:
		interval = 1
		ease = math.Max(p.MinEaseFactor, card.EaseFactor-p.AgainEasePenalty)
		status = domain.StatusLearning
	case domain.Hard:
		interval = roundInterval(float64(card.Interval) * p.HardIntervalFactor)
		ease = math.Max(p.MinEaseFactor, card.EaseFactor-p.HardEasePenalty)
		status = domain.StatusLearning
	case domain.Good:
		interval = roundInterval(float64(card.Interval) * card.EaseFactor)
		status = domain.StatusReview
	case domain.Easy:
		interval = roundInterval(float64(card.Interval) * card.EaseFactor * p.EasyIntervalBonus)
		ease = card.EaseFactor + p.EasyEaseBonus
		status = domain.StatusMastered
	}

	return Review{
		Interval:   interval,
		EaseFactor: ease,
		DueDate:    NextDueDate(interval, now),
		Status:     status,
	}
}

// Apply merges a review into a copy of the card and stamps the review time.
func (r Review) Apply(card domain.Card, now time.Time) domain.Card {
	card.Interval = r.Interval
	card.EaseFactor = r.EaseFactor
	card.DueDate = r.DueDate
	card.Status = r.Status
	reviewed := now
	card.LastReviewedAt = &reviewed
	return card
}

// NextDueDate schedules the review interval calendar days after now.
func NextDueDate(interval int, now time.Time) time.Time {
	return now.AddDate(0, 0, interval)
}

// IsDue reports whether the card should be reviewed at the given time.
func IsDue(card domain.Card, now time.Time) bool {
	return !card.DueDate.After(now)
}

// roundInterval rounds half away from zero and keeps the interval at least one day.
func roundInterval(days float64) int {
	return max(1, int(math.Round(days)))
}
