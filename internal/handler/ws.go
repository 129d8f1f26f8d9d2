package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/realtime"
)

const (
	writeTimeout = 5 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
	readLimit    = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin policy is enforced at the proxy layer.
		return true
	},
}

// wsClient implements realtime.Client by wrapping a websocket connection.
// The hub delivers events from many goroutines, but gorilla allows at most
// one concurrent writer per connection, so every outbound frame goes through
// the mutex.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

var _ realtime.Client = (*wsClient)(nil)

func (c *wsClient) Send(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, message) == nil
}

func (c *wsClient) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

func (c *wsClient) Close() {
	_ = c.conn.Close()
}

// clientMessage is the shape of messages a connection may send upstream.
type clientMessage struct {
	Event    string `json:"event"`
	TaskID   string `json:"taskId"`
	IsTyping bool   `json:"isTyping"`
}

// handleWebSocket upgrades the connection and wires it into the hub. The auth
// middleware has already rejected unauthenticated handshakes, so the
// connection joins its user room immediately; task rooms are joined only on
// explicit subscribe and left on unsubscribe or disconnect.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &wsClient{conn: conn}
	h.hub.Register(userID, client)
	slog.Info("websocket connected", "user_id", userID)

	pingTicker := time.NewTicker(pingInterval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-pingTicker.C:
				if err := client.ping(); err != nil {
					return
				}
			}
		}
	}()
	defer func() {
		close(done)
		pingTicker.Stop()
		h.hub.Unregister(userID, client)
		client.Close()
		slog.Info("websocket disconnected", "user_id", userID)
	}()

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Event {
		case "task:subscribe":
			if msg.TaskID != "" {
				h.hub.Subscribe(msg.TaskID, client)
			}
		case "task:unsubscribe":
			if msg.TaskID != "" {
				h.hub.Unsubscribe(msg.TaskID, client)
			}
		case domain.EventTaskTyping:
			if msg.TaskID != "" {
				h.hub.SendToTaskSubscribers(msg.TaskID, domain.EventTaskTyping, domain.TypingPayload{
					UserID:   userID,
					IsTyping: msg.IsTyping,
				}, client)
			}
		}
	}
}
