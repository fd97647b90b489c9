package inmem

import (
	"context"
	"strconv"
	"sync"

	message "github.com/Laevateinn17/viscord-sub000/internal/pkg/message/application/domain"
)

// InMemMessageRepository keeps messages per channel in insertion order. Test
// double for the postgres adapter.
type InMemMessageRepository struct {
	mu       sync.RWMutex
	byChan   map[string][]message.Message
	sequence int
}

func NewInMemMessageRepository() *InMemMessageRepository {
	return &InMemMessageRepository{byChan: make(map[string][]message.Message)}
}

func (r *InMemMessageRepository) SaveMessage(_ context.Context, m message.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sequence++
	m.ID = "msg-" + strconv.Itoa(r.sequence)
	r.byChan[m.ChannelID] = append(r.byChan[m.ChannelID], m)
	return m.ID, nil
}

func (r *InMemMessageRepository) GetMessagesByChannel(_ context.Context, channelID string, limit int, before string) ([]message.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 {
		limit = 50
	}

	msgs := r.byChan[channelID]
	end := len(msgs)
	if before != "" {
		for i, m := range msgs {
			if m.ID == before {
				end = i
				break
			}
		}
	}

	var out []message.Message
	for i := end - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, msgs[i])
	}
	return out, nil
}
