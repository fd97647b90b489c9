package task

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	fanoutport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/fanout/port"
	qport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/queue/port"
	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/realtime"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/event"
)

// RegisterDeliverEventTask binds the fanout delivery handler to the worker
// server. Each instance delivers to whichever recipients hold a websocket
// session with it; recipients connected elsewhere are simply not found here.
func RegisterDeliverEventTask(srv qport.Server, router *realtime.Router) {
	srv.Register(fanoutport.DeliverEventTaskType, func(ctx context.Context, t qport.Task) error {
		var env fanoutport.Envelope
		if err := json.Unmarshal(t.Payload, &env); err != nil {
			// malformed envelope: do not retry indefinitely
			return err
		}

		// Reject events this build does not know rather than forwarding
		// opaque bytes to clients.
		if _, err := env.Event.Decode(); err != nil {
			if errors.Is(err, event.ErrUnknownType) {
				log.Printf("gateway: dropping event with unknown type %q", env.Event.Type)
				return nil
			}
			return err
		}

		payload, err := json.Marshal(env.Event)
		if err != nil {
			return err
		}

		for _, userID := range env.RecipientIDs {
			router.NotifyUser(userID, payload)
		}
		return nil
	})
}
