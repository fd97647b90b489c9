package controller

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	fanout "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/fanout/port"
	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/event"
	guild "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/domain"
)

// respondError maps domain errors onto HTTP statuses shared by every call
// endpoint.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, guild.ErrChannelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "channel not found"})
	case errors.Is(err, guild.ErrMissingPermission):
		c.JSON(http.StatusForbidden, gin.H{"error": "missing permission"})
	case errors.Is(err, call.ErrCallActive):
		c.JSON(http.StatusConflict, gin.H{"error": "a call is already active in this channel"})
	case errors.Is(err, call.ErrRingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no pending ring"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// publish fans an event out, logging failures. Delivery is advisory; the
// HTTP response reflects the state change, not the fanout.
func publish(ctx context.Context, gw fanout.Gateway, recipients []string, payload any) {
	if len(recipients) == 0 {
		return
	}
	ev, err := event.New(payload)
	if err != nil {
		log.Printf("call: encode event: %v", err)
		return
	}
	if err := gw.Publish(ctx, recipients, ev); err != nil {
		log.Printf("call: publish %s: %v", ev.Type, err)
	}
}

func participantJSON(p call.VoiceParticipant) gin.H {
	return gin.H{
		"channel_id":  p.ChannelID,
		"user_id":     p.UserID,
		"is_muted":    p.IsMuted,
		"is_deafened": p.IsDeafened,
	}
}
