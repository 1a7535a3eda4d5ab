package domain

import "github.com/google/uuid"

// Column represents an ordered column within a board.
// Position is gap-spaced: live columns of one board carry unique,
// strictly increasing positions.
type Column struct {
	BaseModel
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index:idx_columns_board_id" json:"board_id"`
	Name     string    `gorm:"type:varchar(255);not null" json:"name"`
	Position int       `gorm:"not null;index:idx_columns_board_position,priority:2" json:"position"`
	Board    Board     `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"board,omitempty"`
	Cards    []Card    `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
}

// TableName specifies the table name for Column
func (Column) TableName() string {
	return "columns"
}
