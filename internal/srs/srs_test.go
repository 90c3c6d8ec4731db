package srs

import (
	"math"
	"testing"
	"time"

	"github.com/conorfennell/flashflow/internal/domain"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 5, 10, 8, 30, 0, 0, time.UTC)

func newCard() domain.Card {
	return domain.Card{
		ID:         "c1",
		DeckID:     "d1",
		Status:     domain.StatusNew,
		Interval:   domain.InitialInterval,
		EaseFactor: domain.InitialEaseFactor,
		DueDate:    now,
	}
}

func TestNextReview(t *testing.T) {
	params := DefaultParams()

	testCases := []struct {
		name         string
		interval     int
		ease         float64
		rating       domain.Rating
		wantInterval int
		wantEase     float64
		wantStatus   domain.Status
	}{
		{"Again on a new card", 1, 2.5, domain.Again, 1, 2.3, domain.StatusLearning},
		{"Good on a new card", 1, 2.5, domain.Good, 3, 2.5, domain.StatusReview},
		{"Easy on a new card", 1, 2.5, domain.Easy, 3, 2.65, domain.StatusMastered},
		{"Hard on a new card", 1, 2.5, domain.Hard, 1, 2.35, domain.StatusLearning},
		{"Hard grows a long interval", 10, 2.5, domain.Hard, 12, 2.35, domain.StatusLearning},
		{"Good multiplies by ease", 10, 2.5, domain.Good, 25, 2.5, domain.StatusReview},
		{"Easy multiplies by ease and bonus", 10, 2.5, domain.Easy, 33, 2.65, domain.StatusMastered},
		{"Again resets a long interval", 40, 2.0, domain.Again, 1, 1.8, domain.StatusLearning},
		{"Again clamps ease", 5, 1.4, domain.Again, 1, 1.3, domain.StatusLearning},
		{"Hard clamps ease", 5, 1.3, domain.Hard, 6, 1.3, domain.StatusLearning},
		{"Easy has no upper ease clamp", 2, 3.9, domain.Easy, 10, 4.05, domain.StatusMastered},
		{"half rounds away from zero", 5, 1.3, domain.Good, 7, 1.3, domain.StatusReview}, // 6.5
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			card := newCard()
			card.Interval = tc.interval
			card.EaseFactor = tc.ease

			r := params.NextReview(card, tc.rating, now)

			assert.Equal(t, tc.wantInterval, r.Interval)
			assert.InDelta(t, tc.wantEase, r.EaseFactor, 1e-9)
			assert.Equal(t, tc.wantStatus, r.Status)
			assert.Equal(t, now.AddDate(0, 0, tc.wantInterval), r.DueDate)
		})
	}
}

func TestNextReviewKeepsInvariants(t *testing.T) {
	params := DefaultParams()
	ratings := []domain.Rating{domain.Again, domain.Hard, domain.Good, domain.Easy}

	card := newCard()
	for i := 0; i < 200; i++ {
		rating := ratings[(i*7+i/3)%len(ratings)]
		card = params.NextReview(card, rating, now).Apply(card, now)
		if card.Interval < 1 {
			t.Fatalf("Expected interval >= 1 after %v, but got %d", rating, card.Interval)
		}
		if card.EaseFactor < 1.3 {
			t.Fatalf("Expected ease factor >= 1.3 after %v, but got %.2f", rating, card.EaseFactor)
		}
		if math.IsInf(card.EaseFactor, 0) {
			t.Fatalf("ease factor overflowed")
		}
		// keep intervals from growing without bound
		if card.Interval > 3650 {
			card.Interval = 1
		}
	}
}

func TestNextReviewDoesNotTouchCard(t *testing.T) {
	card := newCard()
	_ = DefaultParams().NextReview(card, domain.Easy, now)
	assert.Equal(t, newCard(), card)
}

func TestInvalidRatingKeepsSchedule(t *testing.T) {
	card := newCard()
	card.Interval = 4
	card.EaseFactor = 2.1
	card.Status = domain.StatusReview

	r := DefaultParams().NextReview(card, domain.Rating(9), now)
	assert.Equal(t, 4, r.Interval)
	assert.Equal(t, 2.1, r.EaseFactor)
	assert.Equal(t, domain.StatusReview, r.Status)
}

func TestApply(t *testing.T) {
	card := newCard()
	card.Front = "Q"
	card.Tags = []string{"t"}
	reviewedAt := now.Add(time.Minute)

	r := Review{Interval: 3, EaseFactor: 2.5, DueDate: now.AddDate(0, 0, 3), Status: domain.StatusReview}
	got := r.Apply(card, reviewedAt)

	assert.Equal(t, 3, got.Interval)
	assert.Equal(t, domain.StatusReview, got.Status)
	assert.Equal(t, "Q", got.Front)
	assert.Equal(t, []string{"t"}, got.Tags)
	if assert.NotNil(t, got.LastReviewedAt) {
		assert.Equal(t, reviewedAt, *got.LastReviewedAt)
	}
	assert.Nil(t, card.LastReviewedAt)
}

func TestIsDue(t *testing.T) {
	card := newCard()

	card.DueDate = now
	assert.True(t, IsDue(card, now), "a card due exactly now is due")

	card.DueDate = now.Add(-24 * time.Hour)
	assert.True(t, IsDue(card, now))

	card.DueDate = now.Add(time.Second)
	assert.False(t, IsDue(card, now))
	assert.True(t, IsDue(card, now.Add(time.Second)), "due status changes as time advances")
}
