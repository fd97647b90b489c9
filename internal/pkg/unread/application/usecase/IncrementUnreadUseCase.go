package usecase

import (
	"context"
	"fmt"

	"github.com/Laevateinn17/viscord-sub000/internal/pkg/unread/persistence/state"
)

// IncrementUnreadUseCase bumps a recipient's counter by one. Called once per
// eligible recipient each time a message is created in the channel.
type IncrementUnreadUseCase struct {
	Counters *state.UnreadCounterStore
}

func NewIncrementUnreadUseCase(counters *state.UnreadCounterStore) *IncrementUnreadUseCase {
	return &IncrementUnreadUseCase{Counters: counters}
}

func (uc *IncrementUnreadUseCase) Execute(ctx context.Context, userID string, channelID string) (int64, error) {
	if userID == "" || channelID == "" {
		return 0, fmt.Errorf("user_id and channel_id are required")
	}
	value, err := uc.Counters.Incr(ctx, userID, channelID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStateStore, err)
	}
	return value, nil
}

// Increment satisfies the message context's UnreadIncrementer dependency.
func (uc *IncrementUnreadUseCase) Increment(ctx context.Context, userID string, channelID string) error {
	_, err := uc.Execute(ctx, userID, channelID)
	return err
}
