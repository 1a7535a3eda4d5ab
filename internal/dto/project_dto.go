package dto

import (
	"time"

	"github.com/google/uuid"

	"kanban-board-api/internal/domain"
)

// CreateProjectRequest is the request body for project creation
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

// UpdateProjectRequest is the request body for project attribute updates
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// AddMemberRequest enrolls a user into a project with a role
type AddMemberRequest struct {
	UserID uuid.UUID          `json:"userId" binding:"required"`
	Role   domain.ProjectRole `json:"role" binding:"required"`
}

// ProjectResponse is the API representation of a project
type ProjectResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MemberResponse is the API representation of a project member
type MemberResponse struct {
	UserID   uuid.UUID          `json:"userId"`
	Role     domain.ProjectRole `json:"role"`
	JoinedAt time.Time          `json:"joinedAt"`
}

// ToProjectResponse converts a domain project to its API representation
func ToProjectResponse(p *domain.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToMemberResponse converts a domain membership row to its API representation
func ToMemberResponse(m *domain.ProjectMember) *MemberResponse {
	return &MemberResponse{
		UserID:   m.UserID,
		Role:     m.RoleName,
		JoinedAt: m.JoinedAt,
	}
}
