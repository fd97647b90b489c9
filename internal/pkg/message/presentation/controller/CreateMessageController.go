package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/queue/port"
	guild "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/domain"
	guildusecase "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/usecase"
	guildadapter "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/persistence/repository/adapter"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/message/application/task"
)

// CreateMessageController authorizes and enqueues message creation. The
// worker persists, bumps unread counters, and fans the event out.
type CreateMessageController struct {
	authorize *guildusecase.AuthorizeChannelUseCase
	queue     qport.Client
}

func NewCreateMessageController(pool *pgxpool.Pool, client qport.Client) *CreateMessageController {
	return &CreateMessageController{
		authorize: guildusecase.NewAuthorizeChannelUseCase(guildadapter.NewPgGuildRepository(pool)),
		queue:     client,
	}
}

type createMessageRequest struct {
	AuthorID  string  `json:"author_id" binding:"required"`
	Body      *string `json:"body"`
	DedupeKey *string `json:"dedupe_key"`
}

func (h *CreateMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		channelID := c.Param("channelId")
		if channelID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "channelId is required"})
			return
		}

		var req createMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.authorize.Authorize(ctx, req.AuthorID, channelID, guild.PermissionViewChannels|guild.PermissionSendMessages); err != nil {
			respondError(c, err)
			return
		}

		payload, err := json.Marshal(task.CreateMessagePayload{
			ChannelID: channelID,
			AuthorID:  req.AuthorID,
			Body:      req.Body,
			DedupeKey: req.DedupeKey,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode task payload"})
			return
		}

		opts := qport.EnqueueOption{Queue: "default", MaxRetry: 20}
		id, err := h.queue.Enqueue(ctx, qport.Task{Type: task.CreateMessageTaskType, Payload: payload}, opts)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue message"})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":     "queued",
			"task_id":    id,
			"channel_id": channelID,
			"author_id":  req.AuthorID,
		})
	}
}
