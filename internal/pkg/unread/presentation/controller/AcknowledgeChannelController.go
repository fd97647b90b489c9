package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/port"
	guild "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/domain"
	guildusecase "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/usecase"
	guildadapter "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/persistence/repository/adapter"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/unread/application/usecase"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/unread/persistence/repository/adapter"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/unread/persistence/state"
)

// AcknowledgeChannelController marks a channel as read up to a message.
type AcknowledgeChannelController struct {
	authorize *guildusecase.AuthorizeChannelUseCase
	ack       *usecase.AcknowledgeChannelUseCase
}

func NewAcknowledgeChannelController(pool *pgxpool.Pool, store cacheport.Store) *AcknowledgeChannelController {
	return &AcknowledgeChannelController{
		authorize: guildusecase.NewAuthorizeChannelUseCase(guildadapter.NewPgGuildRepository(pool)),
		ack: usecase.NewAcknowledgeChannelUseCase(
			state.NewUnreadCounterStore(store),
			adapter.NewPgReadStateRepository(pool),
		),
	}
}

type acknowledgeRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	MessageID string `json:"message_id" binding:"required"`
}

func (h *AcknowledgeChannelController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		channelID := c.Param("channelId")
		if channelID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "channelId is required"})
			return
		}

		var req acknowledgeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := h.authorize.Authorize(ctx, req.UserID, channelID, guild.PermissionViewChannels); err != nil {
			respondError(c, err)
			return
		}

		if err := h.ack.Execute(ctx, usecase.AcknowledgeChannelInput{
			UserID:    req.UserID,
			ChannelID: channelID,
			MessageID: req.MessageID,
		}); err != nil {
			respondError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
