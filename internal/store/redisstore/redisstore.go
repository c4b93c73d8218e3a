// Package redisstore keeps key/value pairs as plain Redis strings.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const DefaultPrefix = "shelf:"

type Store struct {
	rc     *redis.Client
	prefix string
}

// newStore wraps an existing client. Keys are namespaced with prefix.
func newStore(rc *redis.Client, prefix string) *Store {
	return &Store{rc: rc, prefix: prefix}
}

// Open parses a redis:// URL, applies password when the URL has none, and
// pings the server.
func Open(ctx context.Context, url, password string) (*Store, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	if opt.Password == "" {
		opt.Password = password
	}
	rc := redis.NewClient(opt)
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newStore(rc, DefaultPrefix), nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rc.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.rc.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error { return s.rc.Close() }
