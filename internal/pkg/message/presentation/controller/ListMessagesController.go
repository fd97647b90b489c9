package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	guild "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/domain"
	guildusecase "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/usecase"
	guildadapter "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/persistence/repository/adapter"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/message/application/usecase"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/message/persistence/repository/adapter"
)

// ListMessagesController handles fetching channel history.
type ListMessagesController struct {
	authorize *guildusecase.AuthorizeChannelUseCase
	list      *usecase.ListMessagesUseCase
}

func NewListMessagesController(pool *pgxpool.Pool) *ListMessagesController {
	return &ListMessagesController{
		authorize: guildusecase.NewAuthorizeChannelUseCase(guildadapter.NewPgGuildRepository(pool)),
		list:      usecase.NewListMessagesUseCase(adapter.NewPgMessageRepository(pool)),
	}
}

func (h *ListMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		channelID := c.Param("channelId")
		userID := c.Query("user_id")
		if channelID == "" || userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "channelId and user_id are required"})
			return
		}

		limit := 50
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.authorize.Authorize(ctx, userID, channelID, guild.PermissionViewChannels); err != nil {
			respondError(c, err)
			return
		}

		msgs, err := h.list.Execute(ctx, usecase.ListMessagesInput{
			ChannelID: channelID,
			Limit:     limit,
			Before:    c.Query("before"),
		})
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, gin.H{
				"id":         m.ID,
				"channel_id": m.ChannelID,
				"author_id":  m.AuthorID,
				"body":       m.Body,
				"created_at": m.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{"messages": out, "limit": limit, "count": len(out)})
	}
}
