// Package realtime routes lifecycle events to live connections. Events are
// never persisted: a disconnected client misses them with no replay.
package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Client represents a single live connection. The network conn itself is
// managed by the transport handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// envelope is the wire shape of every event.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub maintains connection membership for two kinds of rooms: per-user rooms,
// which every connection for a user joins on connect, and per-task rooms,
// which a connection joins only after explicitly subscribing. Membership
// tables are append/remove-only sets keyed by identity.
type Hub struct {
	mu          sync.RWMutex
	userClients map[string]map[Client]struct{}
	taskClients map[string]map[Client]struct{}
	clientTasks map[Client]map[string]struct{}
}

// NewHub creates an empty Hub. It is injected wherever events are emitted,
// never held as a package singleton.
func NewHub() *Hub {
	return &Hub{
		userClients: make(map[string]map[Client]struct{}),
		taskClients: make(map[string]map[Client]struct{}),
		clientTasks: make(map[Client]map[string]struct{}),
	}
}

// Register adds a client to its user's room.
func (h *Hub) Register(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userClients[userID]; !ok {
		h.userClients[userID] = make(map[Client]struct{})
	}
	h.userClients[userID][client] = struct{}{}
}

// Unregister removes a client from its user's room and from every task room
// it subscribed to.
func (h *Hub) Unregister(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.userClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userClients, userID)
		}
	}

	for taskID := range h.clientTasks[client] {
		h.removeFromTask(taskID, client)
	}
	delete(h.clientTasks, client)
}

// Subscribe adds a client to a task's room.
func (h *Hub) Subscribe(taskID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.taskClients[taskID]; !ok {
		h.taskClients[taskID] = make(map[Client]struct{})
	}
	h.taskClients[taskID][client] = struct{}{}
	if _, ok := h.clientTasks[client]; !ok {
		h.clientTasks[client] = make(map[string]struct{})
	}
	h.clientTasks[client][taskID] = struct{}{}
}

// Unsubscribe removes a client from a task's room.
func (h *Hub) Unsubscribe(taskID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromTask(taskID, client)
	if tasks, ok := h.clientTasks[client]; ok {
		delete(tasks, taskID)
		if len(tasks) == 0 {
			delete(h.clientTasks, client)
		}
	}
}

// removeFromTask must be called with the lock held.
func (h *Hub) removeFromTask(taskID string, client Client) {
	if clients, ok := h.taskClients[taskID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.taskClients, taskID)
		}
	}
}

// BroadcastAll sends an event to every live connection regardless of
// relevance; clients filter on their side.
func (h *Hub) BroadcastAll(event string, payload any) {
	message, ok := encode(event, payload)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.userClients {
		for c := range clients {
			c.Send(message)
		}
	}
}

// SendToUser sends an event to every connection in one user's room.
func (h *Hub) SendToUser(userID string, event string, payload any) {
	message, ok := encode(event, payload)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.userClients[userID] {
		c.Send(message)
	}
}

// SendToTaskSubscribers sends an event to every subscriber of a task's room,
// optionally excluding one connection (the sender of a relayed signal).
func (h *Hub) SendToTaskSubscribers(taskID string, event string, payload any, exclude Client) {
	message, ok := encode(event, payload)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.taskClients[taskID] {
		if c == exclude {
			continue
		}
		c.Send(message)
	}
}

// encode marshals the event envelope. A payload that cannot be marshalled is
// dropped; delivery is best effort and must not fail the caller.
func encode(event string, payload any) ([]byte, bool) {
	message, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		slog.Warn("dropping undeliverable event", "event", event, "error", err)
		return nil, false
	}
	return message, true
}
