package prefs

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

var ErrUnknownKey = errors.New("unknown preference key")

// allowedKeys lists the preference names clients may store. An allow list
// keeps the key space from becoming an unbounded dumping ground.
var allowedKeys = map[string]bool{
	"language":      true,
	"theme":         true,
	"saved_filters": true,
	"page_size":     true,
}

const maxValueLen = 16 * 1024

// Store is satisfied by both the Redis client and the database fallback.
type Store interface {
	Get(ctx context.Context, clientID, userID int64, key string) (string, bool, error)
	Set(ctx context.Context, clientID, userID int64, key, value string) error
	Clear(ctx context.Context, clientID, userID int64) error
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Get returns the stored value and whether it was ever set. Store failures
// degrade to "not set" so a flaky backend never breaks page load.
func (s *Service) Get(ctx context.Context, clientID, userID int64, key string) (string, bool, error) {
	if !allowedKeys[key] {
		return "", false, ErrUnknownKey
	}
	value, ok, err := s.store.Get(ctx, clientID, userID, key)
	if err != nil {
		s.logger.Error("pref get failed", zap.String("key", key), zap.Error(err))
		return "", false, nil
	}
	return value, ok, nil
}

func (s *Service) Set(ctx context.Context, clientID, userID int64, key, value string) error {
	if !allowedKeys[key] {
		return ErrUnknownKey
	}
	if len(value) > maxValueLen {
		value = value[:maxValueLen]
	}
	return s.store.Set(ctx, clientID, userID, key, value)
}

// Clear drops every preference for the caller.
func (s *Service) Clear(ctx context.Context, clientID, userID int64) error {
	return s.store.Clear(ctx, clientID, userID)
}
