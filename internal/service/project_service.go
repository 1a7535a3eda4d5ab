package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/access"
	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// ProjectService defines the interface for project business logic
type ProjectService interface {
	CreateProject(ctx context.Context, actorID uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetProject(ctx context.Context, projectID, actorID uuid.UUID) (*dto.ProjectResponse, error)
	ListProjects(ctx context.Context, actorID uuid.UUID) ([]*dto.ProjectResponse, error)
	UpdateProject(ctx context.Context, projectID, actorID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	AddMember(ctx context.Context, projectID, actorID uuid.UUID, req *dto.AddMemberRequest) (*dto.MemberResponse, error)
	RemoveMember(ctx context.Context, projectID, actorID, userID uuid.UUID) error
	ListMembers(ctx context.Context, projectID, actorID uuid.UUID) ([]*dto.MemberResponse, error)
}

// projectServiceImpl is the implementation of ProjectService
type projectServiceImpl struct {
	projectRepo  repository.ProjectRepository
	gate         *access.Gate
	notifier     Notifier
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	gate *access.Gate,
	notifier Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) ProjectService {
	return &projectServiceImpl{
		projectRepo: projectRepo,
		gate:        gate,
		notifier:    notifier,
		metrics:     m,
		logger:      logger,
	}
}

// CreateProject creates a project with the actor enrolled as its owner
func (s *projectServiceImpl) CreateProject(ctx context.Context, actorID uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	project := &domain.Project{
		OwnerID:     actorID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create project", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementProjectCreated()
	}
	s.logger.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("owner_id", actorID.String()),
	)
	return dto.ToProjectResponse(project), nil
}

// GetProject returns a project visible to any member
func (s *projectServiceImpl) GetProject(ctx context.Context, projectID, actorID uuid.UUID) (*dto.ProjectResponse, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, projectID, actorID, domain.ProjectRoleViewer); err != nil {
		return nil, err
	}
	return dto.ToProjectResponse(project), nil
}

// ListProjects lists the projects the actor belongs to
func (s *projectServiceImpl) ListProjects(ctx context.Context, actorID uuid.UUID) ([]*dto.ProjectResponse, error) {
	projects, err := s.projectRepo.FindByUserID(ctx, actorID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list projects", err.Error())
	}
	responses := make([]*dto.ProjectResponse, len(projects))
	for i, p := range projects {
		responses[i] = dto.ToProjectResponse(p)
	}
	return responses, nil
}

// UpdateProject updates name/description; owners only
func (s *projectServiceImpl) UpdateProject(ctx context.Context, projectID, actorID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, projectID, actorID, domain.ProjectRoleOwner); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, response.NewValidationError("Project name must not be empty", "")
		}
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update project", err.Error())
	}
	return dto.ToProjectResponse(project), nil
}

// AddMember enrolls a user; owners only. The new member is notified.
func (s *projectServiceImpl) AddMember(ctx context.Context, projectID, actorID uuid.UUID, req *dto.AddMemberRequest) (*dto.MemberResponse, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, projectID, actorID, domain.ProjectRoleOwner); err != nil {
		return nil, err
	}
	if !req.Role.Valid() {
		return nil, response.NewValidationError("Unknown role", string(req.Role))
	}

	member := &domain.ProjectMember{
		ProjectID: projectID,
		UserID:    req.UserID,
		RoleName:  req.Role,
	}
	if err := s.projectRepo.AddMember(ctx, member); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists, "User is already a member", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add member", err.Error())
	}

	// A cached miss sentinel from an earlier probe must not outlive the
	// membership write.
	s.gate.InvalidateRole(ctx, projectID, req.UserID)
	s.notifier.MemberAdded(ctx, req.UserID, project, req.Role)
	return dto.ToMemberResponse(member), nil
}

// RemoveMember removes a membership row; owners only. Owners cannot remove
// themselves, which keeps every project with at least one owner.
func (s *projectServiceImpl) RemoveMember(ctx context.Context, projectID, actorID, userID uuid.UUID) error {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return err
	}
	if err := s.gate.Authorize(ctx, projectID, actorID, domain.ProjectRoleOwner); err != nil {
		return err
	}
	if actorID == userID {
		return response.NewValidationError("Owners cannot remove themselves", "")
	}

	if err := s.projectRepo.RemoveMember(ctx, projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Membership not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to remove member", err.Error())
	}

	s.gate.InvalidateRole(ctx, projectID, userID)
	s.notifier.MemberRemoved(ctx, userID, project)
	return nil
}

// ListMembers lists project members; any member may look
func (s *projectServiceImpl) ListMembers(ctx context.Context, projectID, actorID uuid.UUID) ([]*dto.MemberResponse, error) {
	if _, err := s.findProject(ctx, projectID); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, projectID, actorID, domain.ProjectRoleViewer); err != nil {
		return nil, err
	}

	members, err := s.projectRepo.FindMembersByProjectID(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list members", err.Error())
	}
	responses := make([]*dto.MemberResponse, len(members))
	for i, m := range members {
		responses[i] = dto.ToMemberResponse(m)
	}
	return responses, nil
}

// findProject resolves a project or reports NOT_FOUND. Existence is checked
// before authorization so the precedence policy lives in one place.
func (s *projectServiceImpl) findProject(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}
	return project, nil
}
