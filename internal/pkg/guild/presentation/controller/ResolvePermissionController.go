package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/usecase"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/persistence/repository/adapter"
)

// ResolvePermissionController exposes the effective permission bitmask for a
// (user, channel) pair. Clients use it to grey out actions; servers still
// re-check on every mutating request.
type ResolvePermissionController struct {
	resolve *usecase.ResolvePermissionUseCase
}

func NewResolvePermissionController(pool *pgxpool.Pool) *ResolvePermissionController {
	return &ResolvePermissionController{
		resolve: usecase.NewResolvePermissionUseCase(adapter.NewPgGuildRepository(pool)),
	}
}

func (h *ResolvePermissionController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		guildID := c.Param("guildId")
		channelID := c.Param("channelId")
		userID := c.Query("user_id")
		if guildID == "" || channelID == "" || userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "guildId, channelId and user_id are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		perms, err := h.resolve.Execute(ctx, usecase.ResolvePermissionInput{
			UserID:    userID,
			GuildID:   guildID,
			ChannelID: channelID,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// The bitmask is serialized as a string: JavaScript numbers lose
		// precision past 53 bits.
		c.JSON(http.StatusOK, gin.H{
			"guild_id":    guildID,
			"channel_id":  channelID,
			"user_id":     userID,
			"permissions": strconv.FormatUint(uint64(perms), 10),
		})
	}
}
