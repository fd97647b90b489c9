package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/port"
	fanout "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/fanout/port"
	qport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/queue/port"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/presentation/controller"
)

// RegisterRoutes registers voice and ring endpoints under the given router
// group. It constructs per-endpoint controllers and binds them directly to
// routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, store cacheport.Store, ringTimeout time.Duration, client qport.Client, gw fanout.Gateway) {
	joinCtl := controller.NewJoinVoiceController(pool, store, ringTimeout, gw)
	leaveCtl := controller.NewLeaveVoiceController(pool, store, ringTimeout, gw)
	updateCtl := controller.NewUpdateVoiceStateController(pool, store, gw)
	listCtl := controller.NewListVoiceParticipantsController(pool, store)
	ringCtl := controller.NewRingChannelController(pool, store, ringTimeout, client, gw)
	dismissCtl := controller.NewDismissRingController(store, ringTimeout, gw)

	// POST /api/v1/channels/:channelId/voice -> join the voice channel
	g.POST("/channels/:channelId/voice", joinCtl.Handle())

	// DELETE /api/v1/channels/:channelId/voice -> leave the voice channel
	g.DELETE("/channels/:channelId/voice", leaveCtl.Handle())

	// PATCH /api/v1/channels/:channelId/voice -> mute/deafen change
	g.PATCH("/channels/:channelId/voice", updateCtl.Handle())

	// GET /api/v1/channels/:channelId/voice -> current participants
	g.GET("/channels/:channelId/voice", listCtl.Handle())

	// POST /api/v1/channels/:channelId/ring -> start ringing the channel
	g.POST("/channels/:channelId/ring", ringCtl.Handle())

	// DELETE /api/v1/channels/:channelId/ring -> decline a pending ring
	g.DELETE("/channels/:channelId/ring", dismissCtl.Handle())
}
