package usecase

import (
	"context"
	"fmt"

	message "github.com/Laevateinn17/viscord-sub000/internal/pkg/message/application/domain"
	repository "github.com/Laevateinn17/viscord-sub000/internal/pkg/message/persistence/repository/port"
)

// ListMessagesInput pages backwards through channel history. Before, when
// set, returns only messages older than that message id.
type ListMessagesInput struct {
	ChannelID string
	Limit     int
	Before    string
}

// ListMessagesUseCase fetches channel history, newest first.
type ListMessagesUseCase struct {
	Repo repository.MessageRepository
}

func NewListMessagesUseCase(repo repository.MessageRepository) *ListMessagesUseCase {
	return &ListMessagesUseCase{Repo: repo}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, in ListMessagesInput) ([]message.Message, error) {
	if in.ChannelID == "" {
		return nil, fmt.Errorf("channel_id is required")
	}
	msgs, err := uc.Repo.GetMessagesByChannel(ctx, in.ChannelID, in.Limit, in.Before)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
