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
	guild "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/domain"
	guildusecase "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/usecase"
	guildadapter "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/persistence/repository/adapter"
)

// JoinVoiceController handles the join-voice endpoint (one controller per
// endpoint).
type JoinVoiceController struct {
	authorize *guildusecase.AuthorizeChannelUseCase
	join      *usecase.JoinVoiceUseCase
	gw        fanout.Gateway
}

func NewJoinVoiceController(pool *pgxpool.Pool, store cacheport.Store, ringTimeout time.Duration, gw fanout.Gateway) *JoinVoiceController {
	repo := guildadapter.NewPgGuildRepository(pool)
	lister := guildusecase.NewListRecipientsUseCase(repo)
	return &JoinVoiceController{
		authorize: guildusecase.NewAuthorizeChannelUseCase(repo),
		join: usecase.NewJoinVoiceUseCase(
			state.NewVoiceStateStore(store),
			state.NewRingStateStore(store, ringTimeout),
			lister,
			gw,
		),
		gw: gw,
	}
}

type joinVoiceRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	IsMuted    bool   `json:"is_muted"`
	IsDeafened bool   `json:"is_deafened"`
}

func (h *JoinVoiceController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		channelID := c.Param("channelId")
		if channelID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "channelId is required"})
			return
		}

		var req joinVoiceRequest
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

		res, err := h.join.Execute(ctx, usecase.JoinVoiceInput{
			ChannelID:  channelID,
			UserID:     req.UserID,
			IsMuted:    req.IsMuted,
			IsDeafened: req.IsDeafened,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		publish(ctx, h.gw, res.Recipients, event.VoiceJoinPayload{
			ChannelID:  channelID,
			UserID:     req.UserID,
			IsMuted:    res.Participant.IsMuted,
			IsDeafened: res.Participant.IsDeafened,
		})

		c.JSON(http.StatusOK, gin.H{"participant": participantJSON(res.Participant)})
	}
}
