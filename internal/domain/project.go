package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is the identity root for a collaboration space
type Project struct {
	BaseModel
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_projects_owner_id" json:"owner_id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Boards      []Board         `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"boards,omitempty"`
	Members     []ProjectMember `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Tags        []Tag           `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
}

// ProjectRole represents the role of a project member.
// Roles form a total order: a lower ordinal carries more privilege.
type ProjectRole string

const (
	ProjectRoleOwner  ProjectRole = "OWNER"
	ProjectRoleMember ProjectRole = "MEMBER"
	ProjectRoleViewer ProjectRole = "VIEWER"
)

// roleOrdinals assigns each role its position in the privilege order.
var roleOrdinals = map[ProjectRole]int{
	ProjectRoleOwner:  0,
	ProjectRoleMember: 1,
	ProjectRoleViewer: 2,
}

// Valid reports whether the role is a known role name.
func (r ProjectRole) Valid() bool {
	_, ok := roleOrdinals[r]
	return ok
}

// Ordinal returns the role's position in the privilege order
// (Owner 0 < Member 1 < Viewer 2). Unknown roles sort last.
func (r ProjectRole) Ordinal() int {
	if ord, ok := roleOrdinals[r]; ok {
		return ord
	}
	return len(roleOrdinals)
}

// AtLeast reports whether the role carries at least the privilege of required.
func (r ProjectRole) AtLeast(required ProjectRole) bool {
	return r.Ordinal() <= required.Ordinal()
}

// ProjectMember represents a member of a project
type ProjectMember struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProjectID uuid.UUID   `gorm:"type:uuid;not null;index:idx_project_members_project_id;uniqueIndex:uq_project_members_project_user" json:"project_id"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index:idx_project_members_user_id;uniqueIndex:uq_project_members_project_user" json:"user_id"`
	RoleName  ProjectRole `gorm:"type:varchar(50);not null;index:idx_project_members_role" json:"role_name"`
	JoinedAt  time.Time   `gorm:"type:timestamp;not null;default:now()" json:"joined_at"`
	Project   Project     `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
}

// BeforeCreate assigns an ID and join timestamp when the database defaults
// cannot, as with the sqlite databases used in tests.
func (m *ProjectMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	return nil
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// TableName specifies the table name for ProjectMember
func (ProjectMember) TableName() string {
	return "project_members"
}
