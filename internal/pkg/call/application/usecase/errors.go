package usecase

import (
	"context"
	"fmt"
	"log"

	fanout "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/fanout/port"
	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/event"
)

// ErrStateStore indicates a shared key-value store failure inside a use case
var ErrStateStore = fmt.Errorf("call use case state store error")

// RecipientLister yields the users who must be notified about channel
// activity. The guild context implements it via permission resolution; for
// direct channels it is the recipient list.
type RecipientLister interface {
	ListRecipients(ctx context.Context, channelID string, excludeUserID string) ([]string, error)
}

// publishDismiss notifies both parties of a ring that it ended. Fanout is
// best-effort: failures are logged and swallowed, the store stays the source
// of truth.
func publishDismiss(ctx context.Context, gw fanout.Gateway, inv call.RingInvitation) {
	ev, err := event.New(event.CallDismissPayload{
		ChannelID:   inv.ChannelID,
		InitiatorID: inv.InitiatorID,
		RecipientID: inv.RecipientID,
	})
	if err != nil {
		log.Printf("call: encode dismiss event: %v", err)
		return
	}
	if err := gw.Publish(ctx, []string{inv.InitiatorID, inv.RecipientID}, ev); err != nil {
		log.Printf("call: publish dismiss for channel %s recipient %s: %v", inv.ChannelID, inv.RecipientID, err)
	}
}
