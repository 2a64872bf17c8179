package model

import (
	"time"
)

type Notification struct {
	ID        string               `json:"id"`
	Type      NotificationType     `json:"type"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Timestamp time.Time            `json:"timestamp"`
	Read      bool                 `json:"read"`
	Priority  NotificationPriority `json:"priority,omitempty"`
	ActionURL string               `json:"actionUrl,omitempty"`
	Metadata  map[string]any       `json:"metadata,omitempty"`
}

// DedupKey identifies a notification across poll cycles. Synthesized
// notifications have no stable server-side identity, so type+message is the
// best available stopgap until the backend emits stable IDs.
func (n Notification) DedupKey() string {
	return string(n.Type) + ":" + n.Message
}
