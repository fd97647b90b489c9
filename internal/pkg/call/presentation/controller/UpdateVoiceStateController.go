package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/port"
	fanout "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/fanout/port"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/usecase"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/persistence/state"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/event"
	guildusecase "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/usecase"
	guildadapter "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/persistence/repository/adapter"
)

// UpdateVoiceStateController handles mute/deafen changes for a participant.
type UpdateVoiceStateController struct {
	update *usecase.UpdateVoiceStateUseCase
	gw     fanout.Gateway
}

func NewUpdateVoiceStateController(pool *pgxpool.Pool, store cacheport.Store, gw fanout.Gateway) *UpdateVoiceStateController {
	repo := guildadapter.NewPgGuildRepository(pool)
	lister := guildusecase.NewListRecipientsUseCase(repo)
	return &UpdateVoiceStateController{
		update: usecase.NewUpdateVoiceStateUseCase(state.NewVoiceStateStore(store), lister),
		gw:     gw,
	}
}

type updateVoiceStateRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	IsMuted    *bool  `json:"is_muted"`
	IsDeafened *bool  `json:"is_deafened"`
}

func (h *UpdateVoiceStateController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		channelID := c.Param("channelId")
		if channelID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "channelId is required"})
			return
		}

		var req updateVoiceStateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.IsMuted == nil && req.IsDeafened == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := h.update.Execute(ctx, usecase.UpdateVoiceStateInput{
			ChannelID:  channelID,
			UserID:     req.UserID,
			IsMuted:    req.IsMuted,
			IsDeafened: req.IsDeafened,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		// A stale update after a leave changes nothing and rings no bells.
		if !res.Applied {
			c.Status(http.StatusNoContent)
			return
		}

		publish(ctx, h.gw, res.Recipients, event.VoiceStateUpdatePayload{
			ChannelID:  channelID,
			UserID:     req.UserID,
			IsMuted:    res.Participant.IsMuted,
			IsDeafened: res.Participant.IsDeafened,
		})

		c.JSON(http.StatusOK, gin.H{"participant": participantJSON(res.Participant)})
	}
}
