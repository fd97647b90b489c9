package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "github.com/Laevateinn17/viscord-sub000/cmd/api/router/v1"
	cacheadapter "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/adapter"
	fanoutadapter "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/fanout/adapter"
	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/database"
	queueadapter "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/queue/adapter"
	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/realtime"
	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
	calltask "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/task"
	callusecase "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/usecase"
	callstate "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/persistence/state"
	gatewaytask "github.com/Laevateinn17/viscord-sub000/internal/pkg/gateway/application/task"
	guildusecase "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/usecase"
	guildadapter "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/persistence/repository/adapter"
	messagetask "github.com/Laevateinn17/viscord-sub000/internal/pkg/message/application/task"
	messageusecase "github.com/Laevateinn17/viscord-sub000/internal/pkg/message/application/usecase"
	messageadapter "github.com/Laevateinn17/viscord-sub000/internal/pkg/message/persistence/repository/adapter"
	unreadusecase "github.com/Laevateinn17/viscord-sub000/internal/pkg/unread/application/usecase"
	unreadstate "github.com/Laevateinn17/viscord-sub000/internal/pkg/unread/persistence/state"
)

func ringTimeoutFromEnv() time.Duration {
	if v := os.Getenv("RING_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		log.Printf("Warning: invalid RING_TIMEOUT_SECONDS %q, using default", v)
	}
	return call.DefaultRingTimeout
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	pool, err := database.NewPoolFromEnv(ctx)
	cancel()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	store, err := cacheadapter.NewRedisAdapter()
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer store.Close()

	qclient, err := queueadapter.NewAsynqClientFromEnv()
	if err != nil {
		log.Fatalf("failed to create queue client: %v", err)
	}
	defer qclient.Close()

	qserver, err := queueadapter.NewAsynqServer()
	if err != nil {
		log.Fatalf("failed to create queue server: %v", err)
	}

	rt := realtime.NewRouter()
	defer rt.Close()

	gw := fanoutadapter.NewQueueGateway(qclient)
	ringTimeout := ringTimeoutFromEnv()

	// Worker-side wiring: task handlers run on every instance so each one
	// can deliver to the websocket sessions it holds.
	guildRepo := guildadapter.NewPgGuildRepository(pool)
	lister := guildusecase.NewListRecipientsUseCase(guildRepo)
	dismiss := callusecase.NewDismissRingUseCase(callstate.NewRingStateStore(store, ringTimeout))
	createMessage := messageusecase.NewCreateMessageUseCase(
		messageadapter.NewPgMessageRepository(pool),
		unreadusecase.NewIncrementUnreadUseCase(unreadstate.NewUnreadCounterStore(store)),
		lister,
		gw,
	)

	calltask.RegisterRingExpireTask(qserver, dismiss, gw)
	messagetask.RegisterCreateMessageTask(qserver, createMessage)
	gatewaytask.RegisterDeliverEventTask(qserver, rt)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	go func() {
		if err := qserver.Run(workerCtx); err != nil {
			log.Fatalf("queue server stopped: %v", err)
		}
	}()

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	v1.RegisterRoutes(r, pool, store, ringTimeout, qclient, gw, rt)

	srv := &http.Server{Addr: listenAddr(), Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server stopped: %v", err)
		}
	}()
	log.Printf("listening on %s", srv.Addr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	stopWorker()
}

func listenAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}
