package dto

import (
	"time"

	"github.com/google/uuid"

	"kanban-board-api/internal/domain"
)

// CreateCardRequest is the request body for card creation
type CreateCardRequest struct {
	ColumnID    uuid.UUID  `json:"columnId" binding:"required"`
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description"`
	Duration    *int       `json:"duration,omitempty"`
	AssigneeID  *uuid.UUID `json:"assigneeId,omitempty"`
}

// UpdateCardRequest is the request body for guarded content updates.
// ExpectedVersion must match the stored version or the update is rejected
// with a conflict.
type UpdateCardRequest struct {
	Title           string     `json:"title" binding:"required,max=255"`
	Description     string     `json:"description"`
	Duration        *int       `json:"duration,omitempty"`
	AssigneeID      *uuid.UUID `json:"assigneeId,omitempty"`
	ExpectedVersion int        `json:"expectedVersion" binding:"required,min=1"`
}

// MoveCardRequest reparents a card into another column, optionally with
// anchors inside the target column.
type MoveCardRequest struct {
	TargetColumnID uuid.UUID  `json:"targetColumnId" binding:"required"`
	BeforeID       *uuid.UUID `json:"beforeId,omitempty"`
	AfterID        *uuid.UUID `json:"afterId,omitempty"`
}

// CardTagRequest assigns or unassigns a tag
type CardTagRequest struct {
	TagID uuid.UUID `json:"tagId" binding:"required"`
}

// CardResponse is the API representation of a card
type CardResponse struct {
	ID          uuid.UUID      `json:"id"`
	ColumnID    uuid.UUID      `json:"columnId"`
	CreatedBy   uuid.UUID      `json:"createdBy"`
	AssigneeID  *uuid.UUID     `json:"assigneeId,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Duration    *int           `json:"duration,omitempty"`
	Position    int            `json:"position"`
	Version     int            `json:"version"`
	Tags        []*TagResponse `json:"tags,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   *time.Time     `json:"deletedAt,omitempty"`
}

// ToCardResponse converts a domain card to its API representation
func ToCardResponse(c *domain.Card) *CardResponse {
	resp := &CardResponse{
		ID:          c.ID,
		ColumnID:    c.ColumnID,
		CreatedBy:   c.CreatedBy,
		AssigneeID:  c.AssigneeID,
		Title:       c.Title,
		Description: c.Description,
		Duration:    c.Duration,
		Position:    c.Position,
		Version:     c.Version,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		DeletedAt:   c.DeletedAt,
	}
	for i := range c.Tags {
		resp.Tags = append(resp.Tags, ToTagResponse(&c.Tags[i]))
	}
	return resp
}
