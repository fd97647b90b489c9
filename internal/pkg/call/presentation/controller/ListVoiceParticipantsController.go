package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/port"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/usecase"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/persistence/state"
	guild "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/domain"
	guildusecase "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/usecase"
	guildadapter "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/persistence/repository/adapter"
)

// ListVoiceParticipantsController handles the voice roster query.
type ListVoiceParticipantsController struct {
	authorize *guildusecase.AuthorizeChannelUseCase
	list      *usecase.ListVoiceParticipantsUseCase
}

func NewListVoiceParticipantsController(pool *pgxpool.Pool, store cacheport.Store) *ListVoiceParticipantsController {
	return &ListVoiceParticipantsController{
		authorize: guildusecase.NewAuthorizeChannelUseCase(guildadapter.NewPgGuildRepository(pool)),
		list:      usecase.NewListVoiceParticipantsUseCase(state.NewVoiceStateStore(store)),
	}
}

func (h *ListVoiceParticipantsController) Handle() gin.HandlerFunc {
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

		participants, err := h.list.Execute(ctx, usecase.ListVoiceParticipantsInput{ChannelID: channelID})
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(participants))
		for _, p := range participants {
			out = append(out, participantJSON(p))
		}
		c.JSON(http.StatusOK, gin.H{"participants": out, "count": len(out)})
	}
}
