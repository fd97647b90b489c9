package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialTestConnection spins up a websocket server that discards inbound frames
// and returns a started Connection dialed against it.
func dialTestConnection(t *testing.T, userID string) *Connection {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				_ = ws.Close()
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	return NewConnection(userID, ws)
}

func TestSendRacingCloseDoesNotPanic(t *testing.T) {
	for i := 0; i < 20; i++ {
		conn := dialTestConnection(t, "alice")
		conn.Start()

		var wg sync.WaitGroup
		for s := 0; s < 64; s++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = conn.Send([]byte(`{"type":"VOICE_JOIN"}`))
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn.Close(websocket.CloseNormalClosure, "bye")
		}()
		wg.Wait()
	}
}

func TestSendAfterCloseReturnsError(t *testing.T) {
	conn := dialTestConnection(t, "alice")
	conn.Start()
	conn.Close(websocket.CloseGoingAway, "done")

	// The close signal wins over a ready buffer slot often but not always;
	// fill the buffer so the error path is deterministic.
	var errSeen bool
	for i := 0; i < cap(conn.send)+1; i++ {
		if err := conn.Send([]byte("x")); err != nil {
			errSeen = true
			break
		}
	}
	require.True(t, errSeen)
}

func TestRouterReplacesPreviousSession(t *testing.T) {
	r := NewRouter()
	first := dialTestConnection(t, "alice")
	second := dialTestConnection(t, "alice")

	r.Attach(first)
	r.Attach(second)

	// The first session is closed and untracked; delivery goes to the second.
	require.True(t, r.NotifyUser("alice", []byte("hello")))
	require.Error(t, first.Send([]byte("stale")))

	r.Detach(second)
	require.False(t, r.NotifyUser("alice", []byte("gone")))
}
