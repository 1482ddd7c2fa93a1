package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/studyportal/internal/pkg/logger"
)

const guestWatchlistKeyPrefix = "studyportal:guest-watchlist:"

// GuestWatchlistStore keeps a guest's saved resource ids as a single JSON array in
// Redis. The array is always read and written as a whole.
type GuestWatchlistStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewGuestWatchlistStore creates a store whose arrays expire after ttl without writes.
// A zero ttl keeps them forever.
func NewGuestWatchlistStore(rdb *redis.Client, ttl time.Duration) *GuestWatchlistStore {
	return &GuestWatchlistStore{rdb: rdb, ttl: ttl}
}

func guestKey(guestID string) string {
	return guestWatchlistKeyPrefix + guestID
}

// Load returns the stored array in insertion order. A missing key is an empty list.
func (s *GuestWatchlistStore) Load(ctx context.Context, guestID string) ([]string, error) {
	raw, err := s.rdb.Get(ctx, guestKey(guestID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []string{}, nil
	}
	if err != nil {
		logger.Error().Err(err).Str("guestID", guestID).Msg("Error reading guest watchlist")
		return nil, fmt.Errorf("error reading guest watchlist: %w", err)
	}

	ids := []string{}
	if err := json.Unmarshal(raw, &ids); err != nil {
		logger.Warn().Err(err).Str("guestID", guestID).Msg("Discarding corrupt guest watchlist")
		return []string{}, nil
	}
	return ids, nil
}

// Save replaces the stored array.
func (s *GuestWatchlistStore) Save(ctx context.Context, guestID string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("error encoding guest watchlist: %w", err)
	}
	if err := s.rdb.Set(ctx, guestKey(guestID), raw, s.ttl).Err(); err != nil {
		logger.Error().Err(err).Str("guestID", guestID).Msg("Error writing guest watchlist")
		return fmt.Errorf("error writing guest watchlist: %w", err)
	}
	return nil
}

// Clear drops the guest's array.
func (s *GuestWatchlistStore) Clear(ctx context.Context, guestID string) error {
	if err := s.rdb.Del(ctx, guestKey(guestID)).Err(); err != nil {
		logger.Error().Err(err).Str("guestID", guestID).Msg("Error clearing guest watchlist")
		return fmt.Errorf("error clearing guest watchlist: %w", err)
	}
	return nil
}
