package state

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/port"
)

// UnreadCounterStore is the typed wrapper over the shared key-value store for
// per-(user, channel) unread counters.
type UnreadCounterStore struct {
	store port.Store
}

func NewUnreadCounterStore(store port.Store) *UnreadCounterStore {
	return &UnreadCounterStore{store: store}
}

func unreadKey(userID string, channelID string) string {
	return "unread:" + userID + ":" + channelID
}

// Get returns the cached counter. ok is false on a cold cache.
func (s *UnreadCounterStore) Get(ctx context.Context, userID string, channelID string) (value int64, ok bool, err error) {
	raw, err := s.store.Get(ctx, unreadKey(userID, channelID))
	if errors.Is(err, port.ErrMiss) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("unread state: corrupt counter for %s/%s: %w", userID, channelID, err)
	}
	return n, true, nil
}

// Set writes the counter, used for cold-cache rehydration write-back.
func (s *UnreadCounterStore) Set(ctx context.Context, userID string, channelID string, value int64) error {
	return s.store.Set(ctx, unreadKey(userID, channelID), strconv.FormatInt(value, 10), 0)
}

// Incr bumps the counter by one. A cold entry becomes 1; Get's rehydration
// reconciles with the authoritative count on the next cold read.
func (s *UnreadCounterStore) Incr(ctx context.Context, userID string, channelID string) (int64, error) {
	return s.store.Incr(ctx, unreadKey(userID, channelID))
}

// Reset pins the counter to zero on acknowledgement.
func (s *UnreadCounterStore) Reset(ctx context.Context, userID string, channelID string) error {
	return s.Set(ctx, userID, channelID, 0)
}
