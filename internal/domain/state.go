package domain

// AppState is the root aggregate: every deck plus the active study session, if any.
// It is the only value that gets persisted.
type AppState struct {
	Decks         []Deck        `json:"decks" validate:"required,dive"`
	ActiveSession *StudySession `json:"activeSession"`
}

// EmptyState returns the state used when nothing has been persisted yet.
func EmptyState() AppState {
	return AppState{Decks: []Deck{}}
}

// Clone returns a deep copy of s.
func (s AppState) Clone() AppState {
	out := AppState{}
	if s.Decks != nil {
		out.Decks = make([]Deck, len(s.Decks))
		for i, d := range s.Decks {
			out.Decks[i] = d.Clone()
		}
	}
	if s.ActiveSession != nil {
		sess := s.ActiveSession.Clone()
		out.ActiveSession = &sess
	}
	return out
}

// DeckIndex returns the position of the deck with the given id, or -1.
func (s AppState) DeckIndex(deckID string) int {
	for i, d := range s.Decks {
		if d.ID == deckID {
			return i
		}
	}
	return -1
}
