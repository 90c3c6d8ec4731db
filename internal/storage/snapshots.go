package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/conorfennell/flashflow/internal/domain"
)

// DefaultKey is the key the application state is stored under.
const DefaultKey = "flashflow_state"

// Snapshots loads and saves the whole application state as one JSON document
// on a Backend. None of its methods report failures to the caller; problems are
// logged and loading degrades to "no saved state".
type Snapshots struct {
	backend  Backend
	key      string
	timeout  time.Duration
	log      *slog.Logger
	validate *validator.Validate
}

// Option configures Snapshots.
type Option func(*Snapshots)

// WithKey overrides the key the document is stored under.
func WithKey(key string) Option {
	return func(s *Snapshots) { s.key = key }
}

// WithTimeout bounds each backend call.
func WithTimeout(d time.Duration) Option {
	return func(s *Snapshots) { s.timeout = d }
}

// WithLogger sets the logger failures are reported to.
func WithLogger(log *slog.Logger) Option {
	return func(s *Snapshots) { s.log = log }
}

func NewSnapshots(backend Backend, opts ...Option) *Snapshots {
	s := &Snapshots{
		backend:  backend,
		key:      DefaultKey,
		timeout:  5 * time.Second,
		log:      slog.Default(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the stored state. ok is false when nothing is stored or the
// stored document cannot be decoded into a valid state.
func (s *Snapshots) Load(ctx context.Context) (state domain.AppState, ok bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("Failed to read saved state", "key", s.key, "error", err)
		}
		return domain.AppState{}, false
	}

	state, err = s.decode(raw)
	if err != nil {
		s.log.Warn("Discarding unreadable saved state", "key", s.key, "error", err)
		return domain.AppState{}, false
	}
	return state, true
}

// Save writes state, replacing the stored document.
func (s *Snapshots) Save(ctx context.Context, state domain.AppState) {
	raw, err := json.Marshal(state)
	if err != nil {
		s.log.Error("Failed to encode state", "key", s.key, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.backend.Set(ctx, s.key, raw); err != nil {
		s.log.Error("Failed to save state", "key", s.key, "error", err)
	}
}

// Clear removes the stored document.
func (s *Snapshots) Clear(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.backend.Remove(ctx, s.key); err != nil {
		s.log.Error("Failed to clear saved state", "key", s.key, "error", err)
	}
}

func (s *Snapshots) decode(raw []byte) (domain.AppState, error) {
	var state domain.AppState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.AppState{}, err
	}
	if err := s.validate.Struct(state); err != nil {
		return domain.AppState{}, err
	}
	return state, nil
}
