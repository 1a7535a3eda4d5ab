package dto

import (
	"time"

	"github.com/google/uuid"

	"kanban-board-api/internal/domain"
)

// CreateColumnRequest is the request body for column creation
type CreateColumnRequest struct {
	BoardID uuid.UUID `json:"boardId" binding:"required"`
	Name    string    `json:"name" binding:"required,max=255"`
}

// UpdateColumnRequest is the request body for column attribute updates
type UpdateColumnRequest struct {
	Name *string `json:"name,omitempty"`
}

// ReorderRequest names the anchors for a structural move. At least one of
// beforeId/afterId is required: the resource lands immediately after
// beforeId, immediately before afterId, or between both.
type ReorderRequest struct {
	BeforeID *uuid.UUID `json:"beforeId,omitempty"`
	AfterID  *uuid.UUID `json:"afterId,omitempty"`
}

// ColumnResponse is the API representation of a column
type ColumnResponse struct {
	ID        uuid.UUID  `json:"id"`
	BoardID   uuid.UUID  `json:"boardId"`
	Name      string     `json:"name"`
	Position  int        `json:"position"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// ToColumnResponse converts a domain column to its API representation
func ToColumnResponse(c *domain.Column) *ColumnResponse {
	return &ColumnResponse{
		ID:        c.ID,
		BoardID:   c.BoardID,
		Name:      c.Name,
		Position:  c.Position,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		DeletedAt: c.DeletedAt,
	}
}
