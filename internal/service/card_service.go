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

// CardService defines the interface for card business logic
type CardService interface {
	CreateCard(ctx context.Context, actorID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error)
	GetCard(ctx context.Context, cardID, actorID uuid.UUID) (*dto.CardResponse, error)
	ListCards(ctx context.Context, columnID, actorID uuid.UUID) ([]*dto.CardResponse, error)
	UpdateCard(ctx context.Context, cardID, actorID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error)
	ReorderCard(ctx context.Context, cardID, actorID uuid.UUID, req *dto.ReorderRequest) (*dto.CardResponse, error)
	MoveCard(ctx context.Context, cardID, actorID uuid.UUID, req *dto.MoveCardRequest) (*dto.CardResponse, error)
	ArchiveCard(ctx context.Context, cardID, actorID uuid.UUID) error
	RestoreCard(ctx context.Context, cardID, actorID uuid.UUID) (*dto.CardResponse, error)
	AssignTag(ctx context.Context, cardID, actorID uuid.UUID, req *dto.CardTagRequest) (*dto.CardResponse, error)
	UnassignTag(ctx context.Context, cardID, tagID, actorID uuid.UUID) (*dto.CardResponse, error)
}

// cardServiceImpl is the implementation of CardService
type cardServiceImpl struct {
	cardRepo   repository.CardRepository
	columnRepo repository.ColumnRepository
	boardRepo  repository.BoardRepository
	tagRepo    repository.TagRepository
	gate       *access.Gate
	notifier   Notifier
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewCardService creates a new instance of CardService
func NewCardService(
	cardRepo repository.CardRepository,
	columnRepo repository.ColumnRepository,
	boardRepo repository.BoardRepository,
	tagRepo repository.TagRepository,
	gate *access.Gate,
	notifier Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) CardService {
	return &cardServiceImpl{
		cardRepo:   cardRepo,
		columnRepo: columnRepo,
		boardRepo:  boardRepo,
		tagRepo:    tagRepo,
		gate:       gate,
		notifier:   notifier,
		metrics:    m,
		logger:     logger,
	}
}

// CreateCard appends a card to a column; members may create
func (s *cardServiceImpl) CreateCard(ctx context.Context, actorID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error) {
	column, projectID, err := s.resolveColumn(ctx, req.ColumnID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, projectID, actorID, domain.ProjectRoleMember); err != nil {
		return nil, err
	}
	if column.IsArchived() {
		return nil, response.NewValidationError("Cannot add a card to an archived column", "")
	}
	if req.AssigneeID != nil {
		if err := s.gate.Authorize(ctx, projectID, *req.AssigneeID, domain.ProjectRoleViewer); err != nil {
			return nil, response.NewValidationError("Assignee is not a member of this project", "")
		}
	}

	card := &domain.Card{
		ColumnID:    req.ColumnID,
		CreatedBy:   actorID,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		AssigneeID:  req.AssigneeID,
	}
	if err := withReorderRetry(func() error {
		return s.cardRepo.Create(ctx, card)
	}); err != nil {
		if repository.IsSerializationFailure(err) {
			return nil, response.NewTxConflictError("Concurrent card creation detected, please retry", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create card", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCardCreated()
	}
	if req.AssigneeID != nil && *req.AssigneeID != actorID {
		s.notifier.CardAssigned(ctx, *req.AssigneeID, card)
	}
	s.logger.Info("Card created",
		zap.String("card_id", card.ID.String()),
		zap.String("column_id", req.ColumnID.String()),
		zap.Int("position", card.Position),
	)
	return dto.ToCardResponse(card), nil
}

// GetCard returns a card with its tags; any project member may look
func (s *cardServiceImpl) GetCard(ctx context.Context, cardID, actorID uuid.UUID) (*dto.CardResponse, error) {
	card, _, err := s.authorizeCard(ctx, cardID, actorID, domain.ProjectRoleViewer)
	if err != nil {
		return nil, err
	}
	return dto.ToCardResponse(card), nil
}

// ListCards lists the live cards of a column in display order
func (s *cardServiceImpl) ListCards(ctx context.Context, columnID, actorID uuid.UUID) ([]*dto.CardResponse, error) {
	_, projectID, err := s.resolveColumn(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, projectID, actorID, domain.ProjectRoleViewer); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.FindByColumnID(ctx, columnID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list cards", err.Error())
	}
	responses := make([]*dto.CardResponse, len(cards))
	for i, c := range cards {
		responses[i] = dto.ToCardResponse(c)
	}
	return responses, nil
}

// UpdateCard applies a guarded content update. The expected version must
// match the stored one; a stale expectation is rejected with CONFLICT and
// the stored card is left untouched.
func (s *cardServiceImpl) UpdateCard(ctx context.Context, cardID, actorID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error) {
	card, projectID, err := s.authorizeCard(ctx, cardID, actorID, domain.ProjectRoleMember)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, response.NewValidationError("Card title must not be empty", "")
	}
	if req.Duration != nil && *req.Duration < 0 {
		return nil, response.NewValidationError("Card duration must not be negative", "")
	}
	if req.AssigneeID != nil {
		if err := s.gate.Authorize(ctx, projectID, *req.AssigneeID, domain.ProjectRoleViewer); err != nil {
			return nil, response.NewValidationError("Assignee is not a member of this project", "")
		}
	}

	previousAssignee := card.AssigneeID
	updated, err := s.cardRepo.UpdateContent(ctx, cardID, repository.CardContent{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		AssigneeID:  req.AssigneeID,
	}, req.ExpectedVersion)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, response.NewConflictError("Card was modified by someone else, reload and retry", "")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Card not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update card", err.Error())
	}

	if req.AssigneeID != nil && *req.AssigneeID != actorID &&
		(previousAssignee == nil || *previousAssignee != *req.AssigneeID) {
		s.notifier.CardAssigned(ctx, *req.AssigneeID, updated)
	}
	return dto.ToCardResponse(updated), nil
}

// ReorderCard moves a card relative to its anchors within its column
func (s *cardServiceImpl) ReorderCard(ctx context.Context, cardID, actorID uuid.UUID, req *dto.ReorderRequest) (*dto.CardResponse, error) {
	card, _, err := s.authorizeCard(ctx, cardID, actorID, domain.ProjectRoleMember)
	if err != nil {
		return nil, err
	}
	if card.IsArchived() {
		return nil, response.NewValidationError("Archived cards cannot be reordered", "")
	}

	var moved *domain.Card
	err = withReorderRetry(func() error {
		var reorderErr error
		moved, reorderErr = s.cardRepo.Reorder(ctx, card.ColumnID, cardID, req.BeforeID, req.AfterID)
		return reorderErr
	})
	if err != nil {
		return nil, mapReorderError(err)
	}

	if s.metrics != nil {
		s.metrics.IncrementReorder("card")
	}
	return dto.ToCardResponse(moved), nil
}

// MoveCard reparents a card into another column on the same board,
// positioning it by the request's anchors or appending when none are given.
func (s *cardServiceImpl) MoveCard(ctx context.Context, cardID, actorID uuid.UUID, req *dto.MoveCardRequest) (*dto.CardResponse, error) {
	card, projectID, err := s.authorizeCard(ctx, cardID, actorID, domain.ProjectRoleMember)
	if err != nil {
		return nil, err
	}
	if card.IsArchived() {
		return nil, response.NewValidationError("Archived cards cannot be moved", "")
	}

	target, targetProjectID, err := s.resolveColumn(ctx, req.TargetColumnID)
	if err != nil {
		return nil, err
	}
	if targetProjectID != projectID {
		return nil, response.NewValidationError("Cards can only move within the same project", "")
	}
	if target.IsArchived() {
		return nil, response.NewValidationError("Cannot move a card into an archived column", "")
	}
	if target.ID == card.ColumnID {
		return s.ReorderCard(ctx, cardID, actorID, &dto.ReorderRequest{BeforeID: req.BeforeID, AfterID: req.AfterID})
	}

	var moved *domain.Card
	err = withReorderRetry(func() error {
		var moveErr error
		moved, moveErr = s.cardRepo.MoveToColumn(ctx, cardID, req.TargetColumnID, req.BeforeID, req.AfterID)
		return moveErr
	})
	if err != nil {
		return nil, mapReorderError(err)
	}

	if s.metrics != nil {
		s.metrics.IncrementReorder("card")
	}
	s.logger.Info("Card moved",
		zap.String("card_id", cardID.String()),
		zap.String("target_column_id", req.TargetColumnID.String()),
		zap.Int("position", moved.Position),
	)
	return dto.ToCardResponse(moved), nil
}

// ArchiveCard soft-deletes a single card
func (s *cardServiceImpl) ArchiveCard(ctx context.Context, cardID, actorID uuid.UUID) error {
	if _, _, err := s.authorizeCard(ctx, cardID, actorID, domain.ProjectRoleMember); err != nil {
		return err
	}
	if err := s.cardRepo.Archive(ctx, cardID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to archive card", err.Error())
	}
	if s.metrics != nil {
		s.metrics.IncrementLifecycle("card", "archive")
	}
	return nil
}

// RestoreCard brings an archived card back. If the card's column is still
// archived the card stays hidden from column listings until the column is
// restored too.
func (s *cardServiceImpl) RestoreCard(ctx context.Context, cardID, actorID uuid.UUID) (*dto.CardResponse, error) {
	if _, _, err := s.authorizeCard(ctx, cardID, actorID, domain.ProjectRoleMember); err != nil {
		return nil, err
	}
	if err := s.cardRepo.Restore(ctx, cardID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to restore card", err.Error())
	}
	if s.metrics != nil {
		s.metrics.IncrementLifecycle("card", "restore")
	}
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch card", err.Error())
	}
	return dto.ToCardResponse(card), nil
}

// AssignTag attaches a project tag to a card. The tag must belong to the
// card's project.
func (s *cardServiceImpl) AssignTag(ctx context.Context, cardID, actorID uuid.UUID, req *dto.CardTagRequest) (*dto.CardResponse, error) {
	card, projectID, err := s.authorizeCard(ctx, cardID, actorID, domain.ProjectRoleMember)
	if err != nil {
		return nil, err
	}
	tag, err := s.tagRepo.FindByID(ctx, req.TagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Tag not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tag", err.Error())
	}
	if tag.ProjectID != projectID {
		return nil, response.NewValidationError("Tag belongs to a different project", "")
	}
	for i := range card.Tags {
		if card.Tags[i].ID == req.TagID {
			return dto.ToCardResponse(card), nil
		}
	}

	if err := s.cardRepo.AddTag(ctx, cardID, req.TagID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to assign tag", err.Error())
	}
	card, err = s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch card", err.Error())
	}
	return dto.ToCardResponse(card), nil
}

// UnassignTag removes a tag assignment from a card
func (s *cardServiceImpl) UnassignTag(ctx context.Context, cardID, tagID, actorID uuid.UUID) (*dto.CardResponse, error) {
	if _, _, err := s.authorizeCard(ctx, cardID, actorID, domain.ProjectRoleMember); err != nil {
		return nil, err
	}
	if err := s.cardRepo.RemoveTag(ctx, cardID, tagID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to unassign tag", err.Error())
	}
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch card", err.Error())
	}
	return dto.ToCardResponse(card), nil
}

// authorizeCard resolves the card and the project that owns it, then checks
// the actor's role. A missing card reads as NOT_FOUND before any
// authorization answer leaks.
func (s *cardServiceImpl) authorizeCard(ctx context.Context, cardID, actorID uuid.UUID, required domain.ProjectRole) (*domain.Card, uuid.UUID, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, response.NewNotFoundError("Card not found", "")
		}
		return nil, uuid.Nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch card", err.Error())
	}
	_, projectID, err := s.resolveColumn(ctx, card.ColumnID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if err := s.gate.Authorize(ctx, projectID, actorID, required); err != nil {
		return nil, uuid.Nil, err
	}
	return card, projectID, nil
}

// resolveColumn walks column -> board to find the owning project
func (s *cardServiceImpl) resolveColumn(ctx context.Context, columnID uuid.UUID) (*domain.Column, uuid.UUID, error) {
	column, err := s.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, response.NewNotFoundError("Column not found", "")
		}
		return nil, uuid.Nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch column", err.Error())
	}
	board, err := s.boardRepo.FindByID(ctx, column.BoardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, response.NewNotFoundError("Board not found", "")
		}
		return nil, uuid.Nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}
	return column, board.ProjectID, nil
}
