package usecase

import (
	"context"
	"fmt"

	fanout "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/fanout/port"
	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/persistence/state"
)

// ClearChannelRingsUseCase dismisses every pending invitation for a channel
// and fans one DISMISS event out per entry. Invoked when the channel's voice
// participant set empties: no one is left to answer.
type ClearChannelRingsUseCase struct {
	Rings  *state.RingStateStore
	Fanout fanout.Gateway
}

func NewClearChannelRingsUseCase(rings *state.RingStateStore, gw fanout.Gateway) *ClearChannelRingsUseCase {
	return &ClearChannelRingsUseCase{Rings: rings, Fanout: gw}
}

func (uc *ClearChannelRingsUseCase) Execute(ctx context.Context, channelID string) ([]call.RingInvitation, error) {
	if channelID == "" {
		return nil, fmt.Errorf("channel_id is required")
	}
	removed, err := uc.Rings.RemoveAll(ctx, channelID)
	for _, inv := range removed {
		publishDismiss(ctx, uc.Fanout, inv)
	}
	if err != nil {
		return removed, fmt.Errorf("%w: %v", ErrStateStore, err)
	}
	return removed, nil
}
