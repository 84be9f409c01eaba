package location

import (
	"context"
	"errors"
	"fmt"
)

// Backend is a minimal string key-value store.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Logger receives warnings about discarded values.
type Logger interface {
	Warn(format string, args ...any)
}

// Store reads the address once at startup and writes it on every change.
type Store struct {
	backend Backend
	key     string
	logger  Logger
}

// StoreOption customizes a Store during construction.
type StoreOption func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets where parse and backend warnings go.
func WithLogger(l Logger) StoreOption {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore wraps a backend.
func NewStore(backend Backend, opts ...StoreOption) *Store {
	s := &Store{backend: backend, key: DefaultKey}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string {
	return s.key
}

// Load returns the stored location. Missing, unreadable and malformed values
// all report ok=false; the latter two are logged and never returned as errors.
func (s *Store) Load(ctx context.Context) (Location, bool) {
	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.warn("stored location unavailable: %v", err)
		}
		return Location{}, false
	}
	if raw == "" {
		return Location{}, false
	}
	loc, err := Decode(raw)
	if err != nil {
		s.warn("discarding stored location %q: %v", raw, err)
		return Location{}, false
	}
	return loc, true
}

// Save persists loc.
func (s *Store) Save(ctx context.Context, loc Location) error {
	value, err := Encode(loc)
	if err != nil {
		return err
	}
	if err := s.backend.Set(ctx, s.key, value); err != nil {
		return fmt.Errorf("location: save: %w", err)
	}
	return nil
}

// Clear removes the stored value.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("location: clear: %w", err)
	}
	return nil
}

func (s *Store) warn(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Warn(format, args...)
}
