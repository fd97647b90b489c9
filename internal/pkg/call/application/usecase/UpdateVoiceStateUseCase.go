package usecase

import (
	"context"
	"errors"
	"fmt"

	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/persistence/state"
)

// UpdateVoiceStateInput is a partial mute/deafen change for a participant.
type UpdateVoiceStateInput struct {
	ChannelID  string
	UserID     string
	IsMuted    *bool
	IsDeafened *bool
}

// UpdateVoiceStateResult carries the merged state and fanout recipients.
// Applied is false when the participant was already gone: a stale client
// message after a leave must not resurrect a ghost participant, and is not
// an error.
type UpdateVoiceStateResult struct {
	Applied     bool
	Participant call.VoiceParticipant
	Recipients  []string
}

// UpdateVoiceStateUseCase merges mute/deafen fields into an existing
// participant record.
type UpdateVoiceStateUseCase struct {
	Voice  *state.VoiceStateStore
	Lister RecipientLister
}

func NewUpdateVoiceStateUseCase(voice *state.VoiceStateStore, lister RecipientLister) *UpdateVoiceStateUseCase {
	return &UpdateVoiceStateUseCase{Voice: voice, Lister: lister}
}

func (uc *UpdateVoiceStateUseCase) Execute(ctx context.Context, in UpdateVoiceStateInput) (*UpdateVoiceStateResult, error) {
	if in.ChannelID == "" || in.UserID == "" {
		return nil, fmt.Errorf("channel_id and user_id are required")
	}

	current, err := uc.Voice.Get(ctx, in.ChannelID, in.UserID)
	if errors.Is(err, call.ErrParticipantNotFound) {
		return &UpdateVoiceStateResult{Applied: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateStore, err)
	}

	merged := current.Merge(call.VoiceStateUpdate{IsMuted: in.IsMuted, IsDeafened: in.IsDeafened})
	if err := uc.Voice.Save(ctx, merged); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateStore, err)
	}

	recipients, err := uc.Lister.ListRecipients(ctx, in.ChannelID, in.UserID)
	if err != nil {
		return nil, err
	}

	return &UpdateVoiceStateResult{Applied: true, Participant: merged, Recipients: recipients}, nil
}
