package inmem

import (
	"context"
	"sync"
)

// InMemReadStateRepository keeps last-read pointers in a map. Test double
// for the postgres adapter.
type InMemReadStateRepository struct {
	mu    sync.RWMutex
	reads map[string]string
}

func NewInMemReadStateRepository() *InMemReadStateRepository {
	return &InMemReadStateRepository{reads: make(map[string]string)}
}

func (r *InMemReadStateRepository) GetLastRead(_ context.Context, userID string, channelID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reads[userID+"/"+channelID], nil
}

func (r *InMemReadStateRepository) SetLastRead(_ context.Context, userID string, channelID string, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads[userID+"/"+channelID] = messageID
	return nil
}

// InMemMessageCounter returns canned counts keyed by channel id. The
// LastReadCounts map overrides the per-channel total when the lookup
// carries a last-read message id.
type InMemMessageCounter struct {
	mu             sync.RWMutex
	Totals         map[string]int64
	LastReadCounts map[string]int64
}

func NewInMemMessageCounter() *InMemMessageCounter {
	return &InMemMessageCounter{
		Totals:         make(map[string]int64),
		LastReadCounts: make(map[string]int64),
	}
}

func (c *InMemMessageCounter) CountSince(_ context.Context, channelID string, messageID string) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if messageID != "" {
		if n, ok := c.LastReadCounts[channelID+"/"+messageID]; ok {
			return n, nil
		}
	}
	return c.Totals[channelID], nil
}
