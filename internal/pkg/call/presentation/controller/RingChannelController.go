package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/port"
	fanout "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/fanout/port"
	qport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/queue/port"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/usecase"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/persistence/state"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/event"
	guild "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/domain"
	guildusecase "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/usecase"
	guildadapter "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/persistence/repository/adapter"
)

// RingChannelController starts a call in a direct or group channel.
type RingChannelController struct {
	authorize *guildusecase.AuthorizeChannelUseCase
	ring      *usecase.RingChannelUseCase
	gw        fanout.Gateway
}

func NewRingChannelController(pool *pgxpool.Pool, store cacheport.Store, ringTimeout time.Duration, client qport.Client, gw fanout.Gateway) *RingChannelController {
	repo := guildadapter.NewPgGuildRepository(pool)
	lister := guildusecase.NewListRecipientsUseCase(repo)
	return &RingChannelController{
		authorize: guildusecase.NewAuthorizeChannelUseCase(repo),
		ring: usecase.NewRingChannelUseCase(
			state.NewVoiceStateStore(store),
			state.NewRingStateStore(store, ringTimeout),
			lister,
			client,
		),
		gw: gw,
	}
}

type ringChannelRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *RingChannelController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		channelID := c.Param("channelId")
		if channelID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "channelId is required"})
			return
		}

		var req ringChannelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := h.authorize.Authorize(ctx, req.UserID, channelID, guild.PermissionViewChannels|guild.PermissionConnect); err != nil {
			respondError(c, err)
			return
		}

		invitations, err := h.ring.Execute(ctx, usecase.RingChannelInput{ChannelID: channelID, InitiatorID: req.UserID})
		if err != nil {
			respondError(c, err)
			return
		}

		for _, inv := range invitations {
			publish(ctx, h.gw, []string{inv.RecipientID}, event.CallRingPayload{
				ChannelID:   inv.ChannelID,
				InitiatorID: inv.InitiatorID,
				RecipientID: inv.RecipientID,
			})
		}

		recipients := make([]string, 0, len(invitations))
		for _, inv := range invitations {
			recipients = append(recipients, inv.RecipientID)
		}
		c.JSON(http.StatusOK, gin.H{"channel_id": channelID, "ringing": recipients})
	}
}
