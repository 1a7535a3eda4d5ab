package domain

import "github.com/google/uuid"

// Tag is a project-scoped label attached to cards through the card_tags
// join table. The join rows carry no lifecycle of their own: deleting a
// tag removes its assignments in the same transaction.
type Tag struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:idx_tags_project_id" json:"project_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Color     string    `gorm:"type:varchar(20);not null" json:"color"`
	Project   Project   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Cards     []Card    `gorm:"many2many:card_tags" json:"cards,omitempty"`
}

// TableName specifies the table name for Tag
func (Tag) TableName() string {
	return "tags"
}
