// Package cache is an optional Redis-backed cache for the textual results
// of remote data lookups (weather, country facts). A nil *Store is a valid
// disabled cache, so handlers never need to branch on configuration.
package cache

import (
	"context"
	"log/slog"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Store caches rendered result texts under a key prefix with a fixed TTL.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

// New connects to Redis at the given address.
func New(addr, password string, db int, ttl time.Duration, log *slog.Logger) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, ttl, log)
}

// NewFromClient wraps an existing client, mainly for tests.
func NewFromClient(client *backend.Client, ttl time.Duration, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{client: client, prefix: "almanac:result:", ttl: ttl, log: log}
}

// Get returns the cached text for key. Any Redis error counts as a miss;
// the cache must never fail an invocation.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	if s == nil {
		return "", false
	}
	text, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if err != backend.Nil {
			s.log.Warn("cache get failed", "key", key, "err", err)
		}
		return "", false
	}
	return text, true
}

// Set stores the text for key, best effort.
func (s *Store) Set(ctx context.Context, key, text string) {
	if s == nil {
		return
	}
	if err := s.client.Set(ctx, s.prefix+key, text, s.ttl).Err(); err != nil {
		s.log.Warn("cache set failed", "key", key, "err", err)
	}
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}
