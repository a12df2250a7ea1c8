package navstate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/goliatone/go-hardship/pkg/model"
)

const (
	// DefaultTTL bounds how long a snapshot survives between screens.
	DefaultTTL = 30 * time.Minute
	// DefaultPrefix namespaces snapshot keys inside a shared backend.
	DefaultPrefix = "hardship:nav:"
)

// ErrInvalidToken is returned for tokens that are not UUIDs.
var ErrInvalidToken = errors.New("navstate: invalid token")

// Store exchanges record snapshots for opaque tokens.
type Store struct {
	backend Backend
	ttl     time.Duration
	prefix  string
	tokens  func() string
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			s.prefix = prefix
		}
	}
}

// New wraps backend. A nil backend falls back to an unpruned MemoryBackend.
func New(backend Backend, options ...Option) *Store {
	if backend == nil {
		backend = NewMemoryBackend(0)
	}
	s := &Store{
		backend: backend,
		ttl:     DefaultTTL,
		prefix:  DefaultPrefix,
		tokens:  func() string { return uuid.NewString() },
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// TTL reports the configured snapshot lifetime.
func (s *Store) TTL() time.Duration { return s.ttl }

// Put stores record and returns the token that retrieves it.
func (s *Store) Put(ctx context.Context, record model.Record) (string, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("navstate: encode snapshot: %w", err)
	}
	token := s.tokens()
	if err := s.backend.Set(ctx, s.prefix+token, raw, s.ttl); err != nil {
		return "", fmt.Errorf("navstate: put: %w", err)
	}
	return token, nil
}

// Get resolves token without consuming it.
func (s *Store) Get(ctx context.Context, token string) (model.Record, error) {
	key, err := s.key(token)
	if err != nil {
		return model.Record{}, err
	}
	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Record{}, ErrNotFound
		}
		return model.Record{}, fmt.Errorf("navstate: get: %w", err)
	}
	var record model.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return model.Record{}, fmt.Errorf("navstate: decode snapshot: %w", err)
	}
	return record, nil
}

// Replace overwrites the snapshot behind an existing token and restarts its
// TTL. Unknown or expired tokens yield ErrNotFound.
func (s *Store) Replace(ctx context.Context, token string, record model.Record) error {
	key, err := s.key(token)
	if err != nil {
		return err
	}
	if _, err := s.backend.Get(ctx, key); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("navstate: replace: %w", err)
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("navstate: encode snapshot: %w", err)
	}
	if err := s.backend.Set(ctx, key, raw, s.ttl); err != nil {
		return fmt.Errorf("navstate: replace: %w", err)
	}
	return nil
}

// Delete discards the snapshot behind token.
func (s *Store) Delete(ctx context.Context, token string) error {
	key, err := s.key(token)
	if err != nil {
		return err
	}
	if err := s.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("navstate: delete: %w", err)
	}
	return nil
}

func (s *Store) key(token string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(token))
	if err != nil {
		return "", ErrInvalidToken
	}
	return s.prefix + parsed.String(), nil
}
