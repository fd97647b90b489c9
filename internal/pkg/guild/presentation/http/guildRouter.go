package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/presentation/controller"
)

// RegisterRoutes registers guild endpoints under the given router group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool) {
	resolveCtl := controller.NewResolvePermissionController(pool)

	// GET /api/v1/guilds/:guildId/channels/:channelId/permissions
	g.GET("/guilds/:guildId/channels/:channelId/permissions", resolveCtl.Handle())
}
