package adapter

import (
	"context"
	"fmt"

	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/fanout/port"
	qport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/queue/port"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/event"
)

// QueueGateway publishes fanout envelopes through the message broker so that
// every instance in the fleet gets a chance to deliver to the websocket
// sessions it holds.
type QueueGateway struct {
	client qport.Client
}

func NewQueueGateway(client qport.Client) *QueueGateway {
	return &QueueGateway{client: client}
}

var _ port.Gateway = (*QueueGateway)(nil)

func (g *QueueGateway) Publish(ctx context.Context, recipientIDs []string, ev event.Event) error {
	if len(recipientIDs) == 0 {
		return nil
	}
	payload, err := port.EncodeEnvelope(recipientIDs, ev)
	if err != nil {
		return fmt.Errorf("fanout: encode envelope: %w", err)
	}
	_, err = g.client.Enqueue(ctx,
		qport.Task{Type: port.DeliverEventTaskType, Payload: payload},
		qport.EnqueueOption{Queue: "events", MaxRetry: 3},
	)
	return err
}
