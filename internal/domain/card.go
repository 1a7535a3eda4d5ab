package domain

import "github.com/google/uuid"

// Card represents an ordered card within a column.
// Version increments by exactly one on every successful content update and
// backs the optimistic-concurrency check; Position works like Column.Position.
type Card struct {
	BaseModel
	ColumnID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_cards_column_id" json:"column_id"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	AssigneeID  *uuid.UUID `gorm:"type:uuid;index:idx_cards_assignee_id" json:"assignee_id,omitempty"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Duration    *int       `gorm:"type:integer" json:"duration,omitempty"`
	Position    int        `gorm:"not null;index:idx_cards_column_position,priority:2" json:"position"`
	Version     int        `gorm:"not null;default:1" json:"version"`
	Column      Column     `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE" json:"column,omitempty"`
	Tags        []Tag      `gorm:"many2many:card_tags" json:"tags,omitempty"`
}

// TableName specifies the table name for Card
func (Card) TableName() string {
	return "cards"
}
