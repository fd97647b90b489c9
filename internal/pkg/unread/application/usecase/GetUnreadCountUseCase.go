package usecase

import (
	"context"
	"fmt"

	"github.com/Laevateinn17/viscord-sub000/internal/pkg/unread/persistence/repository/port"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/unread/persistence/state"
)

// GetUnreadCountInput identifies whose counter for which channel.
type GetUnreadCountInput struct {
	UserID    string
	ChannelID string
}

// GetUnreadCountUseCase reads the cached counter, rehydrating a cold cache
// from the authoritative message count: last-acknowledged message id from
// durable storage, then "messages created after it". No last-read record
// means a brand new membership, which counts as zero.
type GetUnreadCountUseCase struct {
	Counters *state.UnreadCounterStore
	Reads    repository.ReadStateRepository
	Messages repository.MessageCounter
}

func NewGetUnreadCountUseCase(counters *state.UnreadCounterStore, reads repository.ReadStateRepository, messages repository.MessageCounter) *GetUnreadCountUseCase {
	return &GetUnreadCountUseCase{Counters: counters, Reads: reads, Messages: messages}
}

func (uc *GetUnreadCountUseCase) Execute(ctx context.Context, in GetUnreadCountInput) (int64, error) {
	if in.UserID == "" || in.ChannelID == "" {
		return 0, fmt.Errorf("user_id and channel_id are required")
	}

	value, ok, err := uc.Counters.Get(ctx, in.UserID, in.ChannelID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStateStore, err)
	}
	if ok {
		return value, nil
	}

	lastRead, err := uc.Reads.GetLastRead(ctx, in.UserID, in.ChannelID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var count int64
	if lastRead != "" {
		count, err = uc.Messages.CountSince(ctx, in.ChannelID, lastRead)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	if err := uc.Counters.Set(ctx, in.UserID, in.ChannelID, count); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStateStore, err)
	}
	return count, nil
}
