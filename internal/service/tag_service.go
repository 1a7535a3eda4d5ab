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
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// TagService defines the interface for tag business logic
type TagService interface {
	CreateTag(ctx context.Context, actorID uuid.UUID, req *dto.CreateTagRequest) (*dto.TagResponse, error)
	ListTags(ctx context.Context, projectID, actorID uuid.UUID) ([]*dto.TagResponse, error)
	UpdateTag(ctx context.Context, tagID, actorID uuid.UUID, req *dto.UpdateTagRequest) (*dto.TagResponse, error)
	DeleteTag(ctx context.Context, tagID, actorID uuid.UUID) error
}

// tagServiceImpl is the implementation of TagService
type tagServiceImpl struct {
	tagRepo     repository.TagRepository
	projectRepo repository.ProjectRepository
	gate        *access.Gate
	logger      *zap.Logger
}

// NewTagService creates a new instance of TagService
func NewTagService(
	tagRepo repository.TagRepository,
	projectRepo repository.ProjectRepository,
	gate *access.Gate,
	logger *zap.Logger,
) TagService {
	return &tagServiceImpl{
		tagRepo:     tagRepo,
		projectRepo: projectRepo,
		gate:        gate,
		logger:      logger,
	}
}

// CreateTag creates a project-scoped tag; members may create
func (s *tagServiceImpl) CreateTag(ctx context.Context, actorID uuid.UUID, req *dto.CreateTagRequest) (*dto.TagResponse, error) {
	if err := s.requireProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, req.ProjectID, actorID, domain.ProjectRoleMember); err != nil {
		return nil, err
	}

	tag := &domain.Tag{
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Color:     req.Color,
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create tag", err.Error())
	}
	s.logger.Info("Tag created",
		zap.String("tag_id", tag.ID.String()),
		zap.String("project_id", req.ProjectID.String()),
	)
	return dto.ToTagResponse(tag), nil
}

// ListTags lists a project's tags; any project member may look
func (s *tagServiceImpl) ListTags(ctx context.Context, projectID, actorID uuid.UUID) ([]*dto.TagResponse, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, projectID, actorID, domain.ProjectRoleViewer); err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list tags", err.Error())
	}
	responses := make([]*dto.TagResponse, len(tags))
	for i, t := range tags {
		responses[i] = dto.ToTagResponse(t)
	}
	return responses, nil
}

// UpdateTag renames or recolors a tag; members may edit
func (s *tagServiceImpl) UpdateTag(ctx context.Context, tagID, actorID uuid.UUID, req *dto.UpdateTagRequest) (*dto.TagResponse, error) {
	tag, err := s.authorizeTag(ctx, tagID, actorID, domain.ProjectRoleMember)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, response.NewValidationError("Tag name must not be empty", "")
		}
		tag.Name = *req.Name
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update tag", err.Error())
	}
	return dto.ToTagResponse(tag), nil
}

// DeleteTag removes a tag and every assignment of it. Tags are deleted for
// real, not archived; cards keep no trace of a deleted tag.
func (s *tagServiceImpl) DeleteTag(ctx context.Context, tagID, actorID uuid.UUID) error {
	if _, err := s.authorizeTag(ctx, tagID, actorID, domain.ProjectRoleMember); err != nil {
		return err
	}
	if err := s.tagRepo.Delete(ctx, tagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Tag not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete tag", err.Error())
	}
	s.logger.Info("Tag deleted", zap.String("tag_id", tagID.String()))
	return nil
}

// authorizeTag resolves the tag and checks the actor's role in its project
func (s *tagServiceImpl) authorizeTag(ctx context.Context, tagID, actorID uuid.UUID, required domain.ProjectRole) (*domain.Tag, error) {
	tag, err := s.tagRepo.FindByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Tag not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tag", err.Error())
	}
	if err := s.gate.Authorize(ctx, tag.ProjectID, actorID, required); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagServiceImpl) requireProject(ctx context.Context, projectID uuid.UUID) error {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Project not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}
	return nil
}
