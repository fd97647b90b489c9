package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/queue/port"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/message/presentation/controller"
)

// RegisterRoutes registers message endpoints under the given router group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, client qport.Client) {
	createCtl := controller.NewCreateMessageController(pool, client)
	listCtl := controller.NewListMessagesController(pool)

	// POST /api/v1/channels/:channelId/messages -> enqueue message creation
	g.POST("/channels/:channelId/messages", createCtl.Handle())

	// GET /api/v1/channels/:channelId/messages -> fetch channel history
	g.GET("/channels/:channelId/messages", listCtl.Handle())
}
