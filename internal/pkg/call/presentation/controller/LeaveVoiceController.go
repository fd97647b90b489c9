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

// LeaveVoiceController handles the leave-voice endpoint. Leaving needs no
// permission check beyond identity: a participant may always disconnect, even
// after losing channel access.
type LeaveVoiceController struct {
	leave *usecase.LeaveVoiceUseCase
	gw    fanout.Gateway
}

func NewLeaveVoiceController(pool *pgxpool.Pool, store cacheport.Store, ringTimeout time.Duration, gw fanout.Gateway) *LeaveVoiceController {
	repo := guildadapter.NewPgGuildRepository(pool)
	lister := guildusecase.NewListRecipientsUseCase(repo)
	clearRings := usecase.NewClearChannelRingsUseCase(state.NewRingStateStore(store, ringTimeout), gw)
	return &LeaveVoiceController{
		leave: usecase.NewLeaveVoiceUseCase(state.NewVoiceStateStore(store), clearRings, lister),
		gw:    gw,
	}
}

func (h *LeaveVoiceController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		channelID := c.Param("channelId")
		userID := c.Query("user_id")
		if channelID == "" || userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "channelId and user_id are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := h.leave.Execute(ctx, usecase.LeaveVoiceInput{ChannelID: channelID, UserID: userID})
		if err != nil {
			respondError(c, err)
			return
		}

		// Leaving a channel one was never in is a no-op, not an error.
		if !res.Applied {
			c.Status(http.StatusNoContent)
			return
		}

		publish(ctx, h.gw, res.Recipients, event.VoiceLeavePayload{
			ChannelID: channelID,
			UserID:    userID,
		})

		c.Status(http.StatusNoContent)
	}
}
