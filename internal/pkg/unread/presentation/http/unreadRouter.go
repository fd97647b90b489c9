package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/port"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/unread/presentation/controller"
)

// RegisterRoutes registers unread-counter endpoints under the given router
// group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, store cacheport.Store) {
	getCtl := controller.NewGetUnreadCountController(pool, store)
	ackCtl := controller.NewAcknowledgeChannelController(pool, store)

	// GET /api/v1/channels/:channelId/unread -> current unread count
	g.GET("/channels/:channelId/unread", getCtl.Handle())

	// POST /api/v1/channels/:channelId/ack -> mark read up to a message
	g.POST("/channels/:channelId/ack", ackCtl.Handle())
}
