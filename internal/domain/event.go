package domain

// Realtime event names. Broadcast events go to every live connection; the
// clients filter by relevance themselves. notification:new is targeted at a
// single user's channel. None of these are persisted; a disconnected client
// misses them with no replay.
const (
	EventTaskCreated     = "task:created"
	EventTaskUpdated     = "task:updated"
	EventTaskDeleted     = "task:deleted"
	EventTaskTyping      = "task:typing"
	EventNotificationNew = "notification:new"
)

// NotificationPayload is the payload of a notification:new event.
type NotificationPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	TaskID  string `json:"taskId"`
}

// TypingPayload is the payload of a task:typing relay.
type TypingPayload struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// DeletedPayload is the payload of a task:deleted broadcast.
type DeletedPayload struct {
	ID string `json:"id"`
}
