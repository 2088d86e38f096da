package notify

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the unit of delivery. Type, title, message, and recipient
// are immutable after creation; only the read state changes later.
type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"` // business event tag, e.g. "SYSTEM", "PROPERTY_APPROVED"
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"` // opaque to the dispatch engine
	Read      bool           `json:"read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewNotification builds a notification with a fresh id and creation time.
func NewNotification(userID, eventType, title, message string, metadata map[string]any) Notification {
	return Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      eventType,
		Title:     title,
		Message:   message,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
}

// MarkAsRead marks the notification as read with the current timestamp.
func (n *Notification) MarkAsRead() {
	if n.Read {
		return
	}
	n.Read = true
	now := time.Now()
	n.ReadAt = &now
}
