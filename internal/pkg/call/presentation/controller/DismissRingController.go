package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	cacheport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/port"
	fanout "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/fanout/port"
	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/usecase"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/persistence/state"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/event"
)

// DismissRingController declines a pending call invitation. Dismissing twice
// is a no-op, so racing the expiry timer is harmless.
type DismissRingController struct {
	dismiss *usecase.DismissRingUseCase
	gw      fanout.Gateway
}

func NewDismissRingController(store cacheport.Store, ringTimeout time.Duration, gw fanout.Gateway) *DismissRingController {
	return &DismissRingController{
		dismiss: usecase.NewDismissRingUseCase(state.NewRingStateStore(store, ringTimeout)),
		gw:      gw,
	}
}

func (h *DismissRingController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		channelID := c.Param("channelId")
		userID := c.Query("user_id")
		if channelID == "" || userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "channelId and user_id are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		inv, err := h.dismiss.Execute(ctx, usecase.DismissRingInput{ChannelID: channelID, UserID: userID})
		if errors.Is(err, call.ErrRingNotFound) {
			c.Status(http.StatusNoContent)
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}

		publish(ctx, h.gw, []string{inv.InitiatorID, inv.RecipientID}, event.CallDismissPayload{
			ChannelID:   inv.ChannelID,
			InitiatorID: inv.InitiatorID,
			RecipientID: inv.RecipientID,
		})

		c.Status(http.StatusNoContent)
	}
}
