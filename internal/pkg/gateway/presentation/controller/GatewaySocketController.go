package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	cacheport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/port"
	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/realtime"
	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/usecase"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/persistence/state"
)

// GatewaySocketController handles the websocket endpoint clients hold open
// for event delivery. The socket is mostly one-way; the only inbound frame is
// the voice participant snapshot request a client sends after reconnecting.
type GatewaySocketController struct {
	router          *realtime.Router
	listVoiceUC     *usecase.ListVoiceParticipantsUseCase
	inflightTimeout time.Duration
}

func NewGatewaySocketController(store cacheport.Store, router *realtime.Router) *GatewaySocketController {
	return &GatewaySocketController{
		router:          router,
		listVoiceUC:     usecase.NewListVoiceParticipantsUseCase(state.NewVoiceStateStore(store)),
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when auth is added.
		return true
	},
}

type inboundFrame struct {
	Type      string `json:"type"`
	ChannelID string `json:"channel_id,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type string `json:"type"`
}

type voiceParticipantsFrame struct {
	Type         string                  `json:"type"`
	ChannelID    string                  `json:"channel_id"`
	Participants []call.VoiceParticipant `json:"participants"`
}

// Handle upgrades HTTP connections to websocket and processes frames until
// the client disconnects.
func (ctl *GatewaySocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just log and return.
			return
		}

		ws.SetReadLimit(1 << 16)

		conn := realtime.NewConnection(userID, ws)
		ctl.router.Attach(conn)
		defer func() {
			ctl.router.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		if payload, err := json.Marshal(ackFrame{Type: "connected"}); err == nil {
			_ = conn.Send(payload)
		}

		for {
			data, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "voice_participants":
				ctl.handleVoiceParticipants(c, conn, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *GatewaySocketController) handleVoiceParticipants(c *gin.Context, conn *realtime.Connection, frame inboundFrame) {
	if frame.ChannelID == "" {
		ctl.replyError(conn, "bad_request", "channel_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	participants, err := ctl.listVoiceUC.Execute(ctx, usecase.ListVoiceParticipantsInput{ChannelID: frame.ChannelID})
	if err != nil {
		ctl.replyError(conn, "internal_error", "could not load voice participants")
		return
	}

	out := voiceParticipantsFrame{
		Type:         "voice_participants",
		ChannelID:    frame.ChannelID,
		Participants: participants,
	}
	if payload, err := json.Marshal(out); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *GatewaySocketController) replyError(conn *realtime.Connection, code string, msg string) {
	payload, err := json.Marshal(errorFrame{Type: "error", Code: code, Error: msg})
	if err != nil {
		return
	}
	_ = conn.Send(payload)
}
