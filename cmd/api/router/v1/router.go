package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/port"
	fanout "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/fanout/port"
	qport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/queue/port"
	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/realtime"
	callhttp "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/presentation/http"
	gatewayhttp "github.com/Laevateinn17/viscord-sub000/internal/pkg/gateway/presentation/http"
	guildhttp "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/presentation/http"
	messagehttp "github.com/Laevateinn17/viscord-sub000/internal/pkg/message/presentation/http"
	unreadhttp "github.com/Laevateinn17/viscord-sub000/internal/pkg/unread/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, store cacheport.Store, ringTimeout time.Duration, client qport.Client, gw fanout.Gateway, rt *realtime.Router) {
	v1 := r.Group("/api/v1")

	guildhttp.RegisterRoutes(v1, pool)
	callhttp.RegisterRoutes(v1, pool, store, ringTimeout, client, gw)
	unreadhttp.RegisterRoutes(v1, pool, store)
	messagehttp.RegisterRoutes(v1, pool, client)
	gatewayhttp.RegisterRoutes(v1, store, rt)
}
