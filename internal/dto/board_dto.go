package dto

import (
	"time"

	"github.com/google/uuid"

	"kanban-board-api/internal/domain"
)

// CreateBoardRequest is the request body for board creation
type CreateBoardRequest struct {
	ProjectID   uuid.UUID `json:"projectId" binding:"required"`
	Name        string    `json:"name" binding:"required,max=255"`
	Description string    `json:"description"`
}

// UpdateBoardRequest is the request body for board attribute updates
type UpdateBoardRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// BoardResponse is the API representation of a board
type BoardResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"projectId"`
	CreatedBy   uuid.UUID  `json:"createdBy"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// ToBoardResponse converts a domain board to its API representation
func ToBoardResponse(b *domain.Board) *BoardResponse {
	return &BoardResponse{
		ID:          b.ID,
		ProjectID:   b.ProjectID,
		CreatedBy:   b.CreatedBy,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		DeletedAt:   b.DeletedAt,
	}
}
