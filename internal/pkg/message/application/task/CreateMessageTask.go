package task

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	qport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/queue/port"
	message "github.com/Laevateinn17/viscord-sub000/internal/pkg/message/application/domain"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/message/application/usecase"
)

// CreateMessageTaskType is the broker task name for asynchronous message
// creation. The HTTP layer authorizes and enqueues; the worker persists and
// fans out.
const CreateMessageTaskType = "message:create"

// CreateMessagePayload is the JSON payload transported via the queue.
type CreateMessagePayload struct {
	ChannelID string  `json:"channel_id"`
	AuthorID  string  `json:"author_id"`
	Body      *string `json:"body"`
	DedupeKey *string `json:"dedupe_key"`
}

// RegisterCreateMessageTask binds the creation handler to the worker server.
func RegisterCreateMessageTask(srv qport.Server, create *usecase.CreateMessageUseCase) {
	srv.Register(CreateMessageTaskType, func(ctx context.Context, t qport.Task) error {
		var p CreateMessagePayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		_, err := create.Execute(ctx, usecase.CreateMessageInput{
			ChannelID: p.ChannelID,
			AuthorID:  p.AuthorID,
			Body:      p.Body,
			DedupeKey: p.DedupeKey,
		})
		if errors.Is(err, message.ErrEmptyMessage) || errors.Is(err, message.ErrMessageTooLong) {
			// validation failures never succeed on retry
			return nil
		}
		return err
	})
}
