package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel contains common fields for all domain entities.
// DeletedAt is a plain nullable timestamp rather than gorm.DeletedAt:
// archive and restore set and clear it explicitly, and repository queries
// filter live rows themselves so cascade operations can bypass the filter.
type BaseModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"not null" json:"updatedAt"`
	DeletedAt *time.Time `gorm:"index" json:"deletedAt,omitempty"`
}

// BeforeCreate assigns an ID when the database default cannot, which is the
// case for the sqlite databases used in tests.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsArchived reports whether the entity is soft-deleted.
func (m *BaseModel) IsArchived() bool {
	return m.DeletedAt != nil
}
