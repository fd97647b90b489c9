package usecase

import (
	"context"
	"fmt"

	"github.com/Laevateinn17/viscord-sub000/internal/pkg/unread/persistence/repository/port"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/unread/persistence/state"
)

// AcknowledgeChannelInput marks everything up to MessageID as read.
type AcknowledgeChannelInput struct {
	UserID    string
	ChannelID string
	MessageID string
}

// AcknowledgeChannelUseCase resets the cached counter to zero, then persists
// the new last-read pointer. The two writes are not transactional: a crash
// in between leaves the zeroed cache authoritative until the next cold read
// recomputes from the stale durable pointer. That window is accepted; the
// cache reset comes first so the user-visible badge clears immediately.
type AcknowledgeChannelUseCase struct {
	Counters *state.UnreadCounterStore
	Reads    repository.ReadStateRepository
}

func NewAcknowledgeChannelUseCase(counters *state.UnreadCounterStore, reads repository.ReadStateRepository) *AcknowledgeChannelUseCase {
	return &AcknowledgeChannelUseCase{Counters: counters, Reads: reads}
}

func (uc *AcknowledgeChannelUseCase) Execute(ctx context.Context, in AcknowledgeChannelInput) error {
	if in.UserID == "" || in.ChannelID == "" || in.MessageID == "" {
		return fmt.Errorf("user_id, channel_id and message_id are required")
	}

	if err := uc.Counters.Reset(ctx, in.UserID, in.ChannelID); err != nil {
		return fmt.Errorf("%w: %v", ErrStateStore, err)
	}
	if err := uc.Reads.SetLastRead(ctx, in.UserID, in.ChannelID, in.MessageID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
