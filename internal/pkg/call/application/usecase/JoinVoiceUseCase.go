package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	fanout "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/fanout/port"
	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/persistence/state"
)

// JoinVoiceInput carries the data needed to enter a voice channel.
// Authorization against the channel happens one level up; this component
// trusts its caller.
type JoinVoiceInput struct {
	ChannelID  string
	UserID     string
	IsMuted    bool
	IsDeafened bool
}

// JoinVoiceResult is the new participant plus the other channel recipients
// the caller must fan a JOIN event out to.
type JoinVoiceResult struct {
	Participant call.VoiceParticipant
	Recipients  []string
}

// JoinVoiceUseCase moves a (channel, user) pair from Absent to Present. As a
// side effect it cancels any pending ring for the joining user: joining is
// how a ring is accepted.
type JoinVoiceUseCase struct {
	Voice  *state.VoiceStateStore
	Rings  *state.RingStateStore
	Lister RecipientLister
	Fanout fanout.Gateway
}

func NewJoinVoiceUseCase(voice *state.VoiceStateStore, rings *state.RingStateStore, lister RecipientLister, gw fanout.Gateway) *JoinVoiceUseCase {
	return &JoinVoiceUseCase{Voice: voice, Rings: rings, Lister: lister, Fanout: gw}
}

func (uc *JoinVoiceUseCase) Execute(ctx context.Context, in JoinVoiceInput) (*JoinVoiceResult, error) {
	if in.ChannelID == "" || in.UserID == "" {
		return nil, fmt.Errorf("channel_id and user_id are required")
	}

	recipients, err := uc.Lister.ListRecipients(ctx, in.ChannelID, in.UserID)
	if err != nil {
		return nil, err
	}

	p := call.VoiceParticipant{
		ChannelID:  in.ChannelID,
		UserID:     in.UserID,
		IsMuted:    in.IsMuted,
		IsDeafened: in.IsDeafened,
	}
	if err := uc.Voice.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateStore, err)
	}

	// Accept path: a pending ring for this user is resolved by the join.
	inv, err := uc.Rings.Remove(ctx, in.ChannelID, in.UserID)
	switch {
	case err == nil:
		publishDismiss(ctx, uc.Fanout, *inv)
	case errors.Is(err, call.ErrRingNotFound):
		// nothing pending
	default:
		// The join itself succeeded; a failed ring cleanup self-heals via the
		// expiry lease.
		log.Printf("call: cancel ring on join for channel %s user %s: %v", in.ChannelID, in.UserID, err)
	}

	return &JoinVoiceResult{Participant: p, Recipients: recipients}, nil
}
