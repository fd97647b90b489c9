package port

import (
	"context"
	"encoding/json"

	"github.com/Laevateinn17/viscord-sub000/internal/pkg/event"
)

// DeliverEventTaskType is the broker task name that carries a fanout envelope
// to whichever instance holds the recipients' gateway connections.
const DeliverEventTaskType = "event:deliver"

// Envelope is the broker payload for one fanout: a computed recipient set and
// the tagged event to deliver.
type Envelope struct {
	RecipientIDs []string    `json:"recipient_ids"`
	Event        event.Event `json:"event"`
}

// EncodeEnvelope marshals an envelope for the broker.
func EncodeEnvelope(recipientIDs []string, ev event.Event) ([]byte, error) {
	return json.Marshal(Envelope{RecipientIDs: recipientIDs, Event: ev})
}

// Gateway accepts "publish to recipient set" calls. Delivery is fire and
// forget: the store is the source of truth, events are best-effort.
type Gateway interface {
	Publish(ctx context.Context, recipientIDs []string, ev event.Event) error
}
