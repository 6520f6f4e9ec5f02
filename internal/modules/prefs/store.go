package prefs

import (
	"context"

	"fieldops/internal/pkg/cache"
)

type redisStore struct {
	c *cache.Client
}

// NewRedisStore adapts the Redis cache client to the preference Store.
func NewRedisStore(c *cache.Client) Store {
	return &redisStore{c: c}
}

func (s *redisStore) Get(ctx context.Context, clientID, userID int64, key string) (string, bool, error) {
	return s.c.GetPref(ctx, clientID, userID, key)
}

func (s *redisStore) Set(ctx context.Context, clientID, userID int64, key, value string) error {
	return s.c.SetPref(ctx, clientID, userID, key, value)
}

func (s *redisStore) Clear(ctx context.Context, clientID, userID int64) error {
	return s.c.ClearPrefs(ctx, clientID, userID)
}
