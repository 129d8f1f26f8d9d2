package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"github.com/taskhive/taskhive/internal/realtime"
)

// TestWSClient_ConcurrentBroadcasts delivers events to one live connection
// from many goroutines at once, the way simultaneous task mutations do.
// Every frame must arrive intact; with the race detector on, this also fails
// if two hub deliveries ever write the connection concurrently.
func TestWSClient_ConcurrentBroadcasts(t *testing.T) {
	hub := realtime.NewHub()
	registered := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error("upgrade failed:", err)
			return
		}
		hub.Register("user-1", &wsClient{conn: conn})
		close(registered)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	<-registered

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				hub.BroadcastAll("task:updated", map[string]string{"id": "task-1"})
			}
		}()
	}

	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	for received := 0; received < writers*perWriter; received++ {
		_, message, err := conn.ReadMessage()
		require.NoError(t, err)
		require.Contains(t, string(message), "task:updated")
	}

	wg.Wait()
}
