package task

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	fanoutport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/fanout/port"
	qport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/queue/port"
	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/usecase"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/event"
)

// RegisterRingExpireTask binds the ring expiry handler to the worker server.
// The handler dismisses the invitation if it is still pending and fans the
// DISMISS out to both parties. A ring that was already answered, declined,
// or cleared makes the dismiss a no-op, so a late or duplicate firing is
// harmless.
func RegisterRingExpireTask(srv qport.Server, dismiss *usecase.DismissRingUseCase, gw fanoutport.Gateway) {
	srv.Register(usecase.RingExpireTaskType, func(ctx context.Context, t qport.Task) error {
		var p usecase.RingExpirePayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		inv, err := dismiss.Execute(ctx, usecase.DismissRingInput{
			ChannelID: p.ChannelID,
			UserID:    p.RecipientID,
		})
		if errors.Is(err, call.ErrRingNotFound) {
			return nil
		}
		if err != nil {
			// store failure: let the broker retry
			return err
		}

		ev, err := event.New(event.CallDismissPayload{
			ChannelID:   inv.ChannelID,
			InitiatorID: inv.InitiatorID,
			RecipientID: inv.RecipientID,
		})
		if err != nil {
			return err
		}
		// Best-effort: the record is already gone, delivery is advisory.
		_ = gw.Publish(ctx, []string{inv.InitiatorID, inv.RecipientID}, ev)
		return nil
	})
}
