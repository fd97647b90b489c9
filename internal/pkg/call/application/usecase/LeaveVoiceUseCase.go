package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/persistence/state"
)

// LeaveVoiceInput identifies the participant to remove.
type LeaveVoiceInput struct {
	ChannelID string
	UserID    string
}

// LeaveVoiceResult is the recipient list for the caller's LEAVE fanout.
// Applied is false when the user had no participant record: a stale or
// spurious leave changes nothing, and in particular must not clear rings
// on a channel whose call never had this user in it.
type LeaveVoiceResult struct {
	Applied    bool
	Recipients []string
}

// LeaveVoiceUseCase moves a (channel, user) pair from Present to Absent.
// When the last participant leaves, every pending ring for the channel is
// cleared: a ring with no remaining possibility of being answered must not
// linger.
type LeaveVoiceUseCase struct {
	Voice      *state.VoiceStateStore
	ClearRings *ClearChannelRingsUseCase
	Lister     RecipientLister
}

func NewLeaveVoiceUseCase(voice *state.VoiceStateStore, clearRings *ClearChannelRingsUseCase, lister RecipientLister) *LeaveVoiceUseCase {
	return &LeaveVoiceUseCase{Voice: voice, ClearRings: clearRings, Lister: lister}
}

func (uc *LeaveVoiceUseCase) Execute(ctx context.Context, in LeaveVoiceInput) (*LeaveVoiceResult, error) {
	if in.ChannelID == "" || in.UserID == "" {
		return nil, fmt.Errorf("channel_id and user_id are required")
	}

	recipients, err := uc.Lister.ListRecipients(ctx, in.ChannelID, in.UserID)
	if err != nil {
		return nil, err
	}

	remaining, removed, err := uc.Voice.Remove(ctx, in.ChannelID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateStore, err)
	}
	if !removed {
		return &LeaveVoiceResult{Applied: false}, nil
	}

	if remaining == 0 {
		if _, err := uc.ClearRings.Execute(ctx, in.ChannelID); err != nil {
			// Leftover rings self-heal via the expiry lease.
			log.Printf("call: clear rings for emptied channel %s: %v", in.ChannelID, err)
		}
	}

	return &LeaveVoiceResult{Applied: true, Recipients: recipients}, nil
}
