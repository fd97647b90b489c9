package http

import (
	"github.com/gin-gonic/gin"

	cacheport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/port"
	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/realtime"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/gateway/presentation/controller"
)

// RegisterRoutes registers the gateway websocket endpoint under the given
// router group.
func RegisterRoutes(g *gin.RouterGroup, store cacheport.Store, router *realtime.Router) {
	socketCtl := controller.NewGatewaySocketController(store, router)

	// GET /api/v1/gateway/ws -> websocket endpoint for event delivery
	g.GET("/gateway/ws", socketCtl.Handle())
}
