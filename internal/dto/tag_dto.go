package dto

import (
	"github.com/google/uuid"

	"kanban-board-api/internal/domain"
)

// CreateTagRequest is the request body for tag creation
type CreateTagRequest struct {
	ProjectID uuid.UUID `json:"projectId" binding:"required"`
	Name      string    `json:"name" binding:"required,max=100"`
	Color     string    `json:"color" binding:"required,max=20"`
}

// UpdateTagRequest is the request body for tag attribute updates
type UpdateTagRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// TagResponse is the API representation of a tag
type TagResponse struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"projectId"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
}

// ToTagResponse converts a domain tag to its API representation
func ToTagResponse(t *domain.Tag) *TagResponse {
	return &TagResponse{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Name:      t.Name,
		Color:     t.Color,
	}
}
