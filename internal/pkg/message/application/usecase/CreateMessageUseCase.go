package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	fanout "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/fanout/port"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/event"
	message "github.com/Laevateinn17/viscord-sub000/internal/pkg/message/application/domain"
	repository "github.com/Laevateinn17/viscord-sub000/internal/pkg/message/persistence/repository/port"
)

// CreateMessageInput carries the data needed to create a new message.
// Authorization happens one level up, before the creation is enqueued.
type CreateMessageInput struct {
	ChannelID string
	AuthorID  string
	Body      *string
	DedupeKey *string
}

// CreateMessageUseCase persists a message, bumps every recipient's unread
// counter, and fans MESSAGE_CREATE out to them. Counter bumps and fanout are
// best-effort: the persisted message is the source of truth, and a missed
// bump reconciles on the recipient's next cold counter read.
type CreateMessageUseCase struct {
	Repo   repository.MessageRepository
	Unread UnreadIncrementer
	Lister RecipientLister
	Fanout fanout.Gateway
}

func NewCreateMessageUseCase(repo repository.MessageRepository, unread UnreadIncrementer, lister RecipientLister, gw fanout.Gateway) *CreateMessageUseCase {
	return &CreateMessageUseCase{Repo: repo, Unread: unread, Lister: lister, Fanout: gw}
}

func (uc *CreateMessageUseCase) Execute(ctx context.Context, in CreateMessageInput) (*message.Message, error) {
	if in.ChannelID == "" || in.AuthorID == "" {
		return nil, fmt.Errorf("channel_id and author_id are required")
	}

	msg, err := message.NewMessage(message.Message{
		ChannelID: in.ChannelID,
		AuthorID:  in.AuthorID,
		Body:      in.Body,
		DedupeKey: in.DedupeKey,
	})
	if err != nil {
		return nil, err
	}

	id, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	msg.ID = id

	recipients, err := uc.Lister.ListRecipients(ctx, in.ChannelID, in.AuthorID)
	if err != nil {
		log.Printf("message: list recipients for channel %s: %v", in.ChannelID, err)
		return msg, nil
	}

	for _, userID := range recipients {
		if err := uc.Unread.Increment(ctx, userID, in.ChannelID); err != nil {
			log.Printf("message: bump unread for user %s channel %s: %v", userID, in.ChannelID, err)
		}
	}

	uc.publishCreated(ctx, recipients, msg)
	return msg, nil
}

func (uc *CreateMessageUseCase) publishCreated(ctx context.Context, recipients []string, msg *message.Message) {
	if len(recipients) == 0 {
		return
	}
	ev, err := event.New(event.MessageCreatePayload{
		MessageID: msg.ID,
		ChannelID: msg.ChannelID,
		AuthorID:  msg.AuthorID,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		log.Printf("message: encode create event: %v", err)
		return
	}
	if err := uc.Fanout.Publish(ctx, recipients, ev); err != nil {
		log.Printf("message: publish create for channel %s: %v", msg.ChannelID, err)
	}
}
