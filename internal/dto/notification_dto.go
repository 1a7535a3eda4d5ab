package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"kanban-board-api/internal/domain"
)

// NotificationResponse is the API representation of a notification
type NotificationResponse struct {
	ID        uuid.UUID               `json:"id"`
	Type      domain.NotificationType `json:"type"`
	Payload   json.RawMessage         `json:"payload"`
	ReadAt    *time.Time              `json:"readAt,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
}

// NotificationListResponse carries one page of notifications plus the
// cursor for the next page.
type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	UnreadCount   int64                   `json:"unreadCount"`
	NextBefore    *time.Time              `json:"nextBefore,omitempty"`
}

// ToNotificationResponse converts a domain notification to its API representation
func ToNotificationResponse(n *domain.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Payload:   json.RawMessage(n.Payload),
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
