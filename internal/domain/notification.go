package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationType identifies what happened
type NotificationType string

const (
	NotificationCardAssigned  NotificationType = "CARD_ASSIGNED"
	NotificationMemberAdded   NotificationType = "MEMBER_ADDED"
	NotificationMemberRemoved NotificationType = "MEMBER_REMOVED"
)

// Notification is delivered to a single recipient. Its lifecycle is
// independent of the board/column/card hierarchy: it is created by the
// services on interesting events, read-marked by the recipient, and
// eventually pruned by the retention job.
type Notification struct {
	BaseModel
	RecipientID uuid.UUID        `gorm:"type:uuid;not null;index:idx_notifications_recipient_id" json:"recipient_id"`
	Type        NotificationType `gorm:"type:varchar(50);not null" json:"type"`
	Payload     datatypes.JSON   `gorm:"type:jsonb" json:"payload"`
	ReadAt      *time.Time       `gorm:"type:timestamp;index:idx_notifications_read_at" json:"read_at,omitempty"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
