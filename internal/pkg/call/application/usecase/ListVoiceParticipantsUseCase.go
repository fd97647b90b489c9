package usecase

import (
	"context"
	"fmt"

	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/persistence/state"
)

// ListVoiceParticipantsInput wraps the channel identifier.
type ListVoiceParticipantsInput struct {
	ChannelID string
}

// ListVoiceParticipantsUseCase answers "who is in this call", used by queries
// and to reconstruct state for a freshly connected client.
type ListVoiceParticipantsUseCase struct {
	Voice *state.VoiceStateStore
}

func NewListVoiceParticipantsUseCase(voice *state.VoiceStateStore) *ListVoiceParticipantsUseCase {
	return &ListVoiceParticipantsUseCase{Voice: voice}
}

func (uc *ListVoiceParticipantsUseCase) Execute(ctx context.Context, in ListVoiceParticipantsInput) ([]call.VoiceParticipant, error) {
	if in.ChannelID == "" {
		return nil, fmt.Errorf("channel_id is required")
	}
	participants, err := uc.Voice.Participants(ctx, in.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateStore, err)
	}
	return participants, nil
}
