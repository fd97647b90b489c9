package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	qport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/queue/port"
	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/persistence/state"
)

// RingExpireTaskType is the broker task name for the one-shot ring expiry
// timer. The broker is Redis-backed, so a scheduled expiry survives a crash
// of the instance that created the ring.
const RingExpireTaskType = "call:ring_expire"

// RingExpirePayload is the JSON payload of a scheduled expiry.
type RingExpirePayload struct {
	ChannelID   string `json:"channel_id"`
	RecipientID string `json:"recipient_id"`
}

// RingChannelInput identifies the channel to ring and who is calling.
type RingChannelInput struct {
	ChannelID   string
	InitiatorID string
}

// RingChannelUseCase starts a call: one invitation per channel recipient,
// written in a single atomic batch, each with a scheduled one-shot expiry.
// Ringing a channel that already has voice participants is rejected with
// call.ErrCallActive.
type RingChannelUseCase struct {
	Voice  *state.VoiceStateStore
	Rings  *state.RingStateStore
	Lister RecipientLister
	Queue  qport.Client
}

func NewRingChannelUseCase(voice *state.VoiceStateStore, rings *state.RingStateStore, lister RecipientLister, queue qport.Client) *RingChannelUseCase {
	return &RingChannelUseCase{Voice: voice, Rings: rings, Lister: lister, Queue: queue}
}

func (uc *RingChannelUseCase) Execute(ctx context.Context, in RingChannelInput) ([]call.RingInvitation, error) {
	if in.ChannelID == "" || in.InitiatorID == "" {
		return nil, fmt.Errorf("channel_id and initiator_id are required")
	}

	active, err := uc.Voice.Count(ctx, in.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateStore, err)
	}
	if active > 0 {
		return nil, call.ErrCallActive
	}

	recipients, err := uc.Lister.ListRecipients(ctx, in.ChannelID, in.InitiatorID)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	invitations := make([]call.RingInvitation, 0, len(recipients))
	for _, recipientID := range recipients {
		invitations = append(invitations, call.RingInvitation{
			ChannelID:   in.ChannelID,
			RecipientID: recipientID,
			InitiatorID: in.InitiatorID,
			CreatedAt:   now,
		})
	}

	// All records or none: a half-written ring must not be reported created.
	if err := uc.Rings.CreateAll(ctx, invitations); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateStore, err)
	}

	for _, inv := range invitations {
		uc.scheduleExpiry(ctx, inv)
	}

	return invitations, nil
}

// scheduleExpiry enqueues the one-shot timer for a single invitation. A
// failed enqueue is logged and swallowed: the expiry lease on every read
// guarantees the ring still dies on time, just without its dismissal fanout.
func (uc *RingChannelUseCase) scheduleExpiry(ctx context.Context, inv call.RingInvitation) {
	payload, err := json.Marshal(RingExpirePayload{
		ChannelID:   inv.ChannelID,
		RecipientID: inv.RecipientID,
	})
	if err != nil {
		log.Printf("call: encode ring expiry for channel %s recipient %s: %v", inv.ChannelID, inv.RecipientID, err)
		return
	}
	_, err = uc.Queue.Enqueue(ctx,
		qport.Task{Type: RingExpireTaskType, Payload: payload},
		qport.EnqueueOption{Queue: "calls", ProcessIn: uc.Rings.Timeout(), MaxRetry: 3},
	)
	if err != nil {
		log.Printf("call: schedule ring expiry for channel %s recipient %s: %v", inv.ChannelID, inv.RecipientID, err)
	}
}
