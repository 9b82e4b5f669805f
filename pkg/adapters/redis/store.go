package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every list key.
const DefaultPrefix = "espalier:list:"

// Store implements ports.EntryStore over Redis lists.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration refreshed on every Append.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for lists.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

// Entries reads the whole list under key. A missing key is an empty list.
func (s *Store) Entries(ctx context.Context, key string) ([]string, error) {
	entries, err := s.client.LRange(ctx, s.key(key), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read entries %q: %w", key, err)
	}
	return entries, nil
}

// Append pushes entries to the tail of the list under key.
func (s *Store) Append(ctx context.Context, key string, entries ...string) error {
	if len(entries) == 0 {
		return nil
	}

	args := make([]any, len(entries))
	for i, e := range entries {
		args[i] = e
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.key(key), args...)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key(key), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append entries %q: %w", key, err)
	}
	return nil
}

// Clear deletes the list under key.
func (s *Store) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to clear entries %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
