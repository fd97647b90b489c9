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

// GetUnreadCountController handles the unread badge query.
type GetUnreadCountController struct {
	authorize *guildusecase.AuthorizeChannelUseCase
	get       *usecase.GetUnreadCountUseCase
}

func NewGetUnreadCountController(pool *pgxpool.Pool, store cacheport.Store) *GetUnreadCountController {
	return &GetUnreadCountController{
		authorize: guildusecase.NewAuthorizeChannelUseCase(guildadapter.NewPgGuildRepository(pool)),
		get: usecase.NewGetUnreadCountUseCase(
			state.NewUnreadCounterStore(store),
			adapter.NewPgReadStateRepository(pool),
			adapter.NewPgMessageCounter(pool),
		),
	}
}

func (h *GetUnreadCountController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		channelID := c.Param("channelId")
		userID := c.Query("user_id")
		if channelID == "" || userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "channelId and user_id are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := h.authorize.Authorize(ctx, userID, channelID, guild.PermissionViewChannels); err != nil {
			respondError(c, err)
			return
		}

		count, err := h.get.Execute(ctx, usecase.GetUnreadCountInput{UserID: userID, ChannelID: channelID})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"channel_id": channelID, "user_id": userID, "unread": count})
	}
}
