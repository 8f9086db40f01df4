// Package redis implements the CredentialStore port on a Redis server, for
// deployments where several relay instances share one key.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ericfisherdev/professionalaize/internal/domain/port/driven"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "professionalaize"

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*Store)(nil)

// Store keeps each value as a plain Redis string at "<prefix>:<key>".
type Store struct {
	client *goredis.Client
	prefix string
}

// NewStore connects to the Redis server at addr. An empty prefix falls back
// to DefaultPrefix.
func NewStore(addr, password, prefix string) *Store {
	return NewStoreWithClient(goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
	}), prefix)
}

// NewStoreWithClient wraps an existing client.
func NewStoreWithClient(client *goredis.Client, prefix string) *Store {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Ping checks the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Get returns ("", nil) when nothing is stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.redisKey(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return val, nil
}

// Set stores value under key with no expiry.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) redisKey(key string) string {
	return s.prefix + ":" + key
}
