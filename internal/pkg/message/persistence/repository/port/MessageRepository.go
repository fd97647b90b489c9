package repository

import (
	"context"

	message "github.com/Laevateinn17/viscord-sub000/internal/pkg/message/application/domain"
)

// MessageRepository defines persistence operations for channel messages.
type MessageRepository interface {
	SaveMessage(ctx context.Context, m message.Message) (string, error)
	GetMessagesByChannel(ctx context.Context, channelID string, limit int, before string) ([]message.Message, error)
}
