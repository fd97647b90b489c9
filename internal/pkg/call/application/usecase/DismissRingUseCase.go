package usecase

import (
	"context"
	"errors"
	"fmt"

	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/persistence/state"
)

// DismissRingInput identifies the pending invitation to remove.
type DismissRingInput struct {
	ChannelID string
	UserID    string
}

// DismissRingUseCase deletes a pending invitation and returns the deleted
// record so the caller can fan a DISMISS event out to both parties.
// Idempotent: dismissing an already-gone ring yields call.ErrRingNotFound
// and no other effect, which makes the timer-driven expiry safe to race
// against manual declines and accepts.
type DismissRingUseCase struct {
	Rings *state.RingStateStore
}

func NewDismissRingUseCase(rings *state.RingStateStore) *DismissRingUseCase {
	return &DismissRingUseCase{Rings: rings}
}

func (uc *DismissRingUseCase) Execute(ctx context.Context, in DismissRingInput) (*call.RingInvitation, error) {
	if in.ChannelID == "" || in.UserID == "" {
		return nil, fmt.Errorf("channel_id and user_id are required")
	}
	inv, err := uc.Rings.Remove(ctx, in.ChannelID, in.UserID)
	if err != nil {
		if errors.Is(err, call.ErrRingNotFound) {
			return nil, call.ErrRingNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStateStore, err)
	}
	return inv, nil
}
