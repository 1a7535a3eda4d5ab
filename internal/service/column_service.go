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

// ColumnService defines the interface for column business logic
type ColumnService interface {
	CreateColumn(ctx context.Context, actorID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error)
	GetColumn(ctx context.Context, columnID, actorID uuid.UUID) (*dto.ColumnResponse, error)
	ListColumns(ctx context.Context, boardID, actorID uuid.UUID) ([]*dto.ColumnResponse, error)
	UpdateColumn(ctx context.Context, columnID, actorID uuid.UUID, req *dto.UpdateColumnRequest) (*dto.ColumnResponse, error)
	ReorderColumn(ctx context.Context, columnID, actorID uuid.UUID, req *dto.ReorderRequest) (*dto.ColumnResponse, error)
	ArchiveColumn(ctx context.Context, columnID, actorID uuid.UUID) error
	RestoreColumn(ctx context.Context, columnID, actorID uuid.UUID) (*dto.ColumnResponse, error)
}

// columnServiceImpl is the implementation of ColumnService
type columnServiceImpl struct {
	columnRepo repository.ColumnRepository
	boardRepo  repository.BoardRepository
	gate       *access.Gate
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewColumnService creates a new instance of ColumnService
func NewColumnService(
	columnRepo repository.ColumnRepository,
	boardRepo repository.BoardRepository,
	gate *access.Gate,
	m *metrics.Metrics,
	logger *zap.Logger,
) ColumnService {
	return &columnServiceImpl{
		columnRepo: columnRepo,
		boardRepo:  boardRepo,
		gate:       gate,
		metrics:    m,
		logger:     logger,
	}
}

// CreateColumn appends a column to a board; members may create
func (s *columnServiceImpl) CreateColumn(ctx context.Context, actorID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error) {
	board, err := s.findBoard(ctx, req.BoardID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, board.ProjectID, actorID, domain.ProjectRoleMember); err != nil {
		return nil, err
	}
	if board.IsArchived() {
		return nil, response.NewValidationError("Cannot add a column to an archived board", "")
	}

	column := &domain.Column{
		BoardID: req.BoardID,
		Name:    req.Name,
	}
	if err := withReorderRetry(func() error {
		return s.columnRepo.Create(ctx, column)
	}); err != nil {
		if repository.IsSerializationFailure(err) {
			return nil, response.NewTxConflictError("Concurrent column creation detected, please retry", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create column", err.Error())
	}

	s.logger.Info("Column created",
		zap.String("column_id", column.ID.String()),
		zap.String("board_id", req.BoardID.String()),
		zap.Int("position", column.Position),
	)
	return dto.ToColumnResponse(column), nil
}

// GetColumn returns a column; any project member may look
func (s *columnServiceImpl) GetColumn(ctx context.Context, columnID, actorID uuid.UUID) (*dto.ColumnResponse, error) {
	column, _, err := s.authorizeColumn(ctx, columnID, actorID, domain.ProjectRoleViewer)
	if err != nil {
		return nil, err
	}
	return dto.ToColumnResponse(column), nil
}

// ListColumns lists the live columns of a board in display order
func (s *columnServiceImpl) ListColumns(ctx context.Context, boardID, actorID uuid.UUID) ([]*dto.ColumnResponse, error) {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, board.ProjectID, actorID, domain.ProjectRoleViewer); err != nil {
		return nil, err
	}

	columns, err := s.columnRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list columns", err.Error())
	}
	responses := make([]*dto.ColumnResponse, len(columns))
	for i, c := range columns {
		responses[i] = dto.ToColumnResponse(c)
	}
	return responses, nil
}

// UpdateColumn renames a column; members may edit
func (s *columnServiceImpl) UpdateColumn(ctx context.Context, columnID, actorID uuid.UUID, req *dto.UpdateColumnRequest) (*dto.ColumnResponse, error) {
	column, _, err := s.authorizeColumn(ctx, columnID, actorID, domain.ProjectRoleMember)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, response.NewValidationError("Column name must not be empty", "")
		}
		column.Name = *req.Name
	}
	if err := s.columnRepo.Update(ctx, column); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update column", err.Error())
	}
	return dto.ToColumnResponse(column), nil
}

// ReorderColumn moves a column relative to its anchors. The read-plan-write
// runs serializably in the repository; a serialization abort is retried
// once before surfacing TRANSACTION_CONFLICT.
func (s *columnServiceImpl) ReorderColumn(ctx context.Context, columnID, actorID uuid.UUID, req *dto.ReorderRequest) (*dto.ColumnResponse, error) {
	column, _, err := s.authorizeColumn(ctx, columnID, actorID, domain.ProjectRoleMember)
	if err != nil {
		return nil, err
	}
	if column.IsArchived() {
		return nil, response.NewValidationError("Archived columns cannot be reordered", "")
	}

	var moved *domain.Column
	err = withReorderRetry(func() error {
		var reorderErr error
		moved, reorderErr = s.columnRepo.Reorder(ctx, column.BoardID, columnID, req.BeforeID, req.AfterID)
		return reorderErr
	})
	if err != nil {
		return nil, mapReorderError(err)
	}

	if s.metrics != nil {
		s.metrics.IncrementReorder("column")
	}
	s.logger.Info("Column reordered",
		zap.String("column_id", columnID.String()),
		zap.Int("position", moved.Position),
	)
	return dto.ToColumnResponse(moved), nil
}

// ArchiveColumn soft-deletes the column and its live cards
func (s *columnServiceImpl) ArchiveColumn(ctx context.Context, columnID, actorID uuid.UUID) error {
	if _, _, err := s.authorizeColumn(ctx, columnID, actorID, domain.ProjectRoleMember); err != nil {
		return err
	}
	if err := s.columnRepo.Archive(ctx, columnID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to archive column", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementLifecycle("column", "archive")
	}
	s.logger.Info("Column archived", zap.String("column_id", columnID.String()))
	return nil
}

// RestoreColumn brings an archived column and its archived cards back
func (s *columnServiceImpl) RestoreColumn(ctx context.Context, columnID, actorID uuid.UUID) (*dto.ColumnResponse, error) {
	if _, _, err := s.authorizeColumn(ctx, columnID, actorID, domain.ProjectRoleMember); err != nil {
		return nil, err
	}
	if err := s.columnRepo.Restore(ctx, columnID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to restore column", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementLifecycle("column", "restore")
	}
	column, err := s.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch column", err.Error())
	}
	return dto.ToColumnResponse(column), nil
}

// authorizeColumn resolves the column and its board and checks the actor's
// role in the owning project. Existence first, then authorization.
func (s *columnServiceImpl) authorizeColumn(ctx context.Context, columnID, actorID uuid.UUID, required domain.ProjectRole) (*domain.Column, *domain.Board, error) {
	column, err := s.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewNotFoundError("Column not found", "")
		}
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch column", err.Error())
	}
	board, err := s.findBoard(ctx, column.BoardID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.gate.Authorize(ctx, board.ProjectID, actorID, required); err != nil {
		return nil, nil, err
	}
	return column, board, nil
}

func (s *columnServiceImpl) findBoard(ctx context.Context, boardID uuid.UUID) (*domain.Board, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}
	return board, nil
}
