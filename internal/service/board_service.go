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

// BoardService defines the interface for board business logic
type BoardService interface {
	CreateBoard(ctx context.Context, actorID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	GetBoard(ctx context.Context, boardID, actorID uuid.UUID) (*dto.BoardResponse, error)
	ListBoards(ctx context.Context, projectID, actorID uuid.UUID) ([]*dto.BoardResponse, error)
	UpdateBoard(ctx context.Context, boardID, actorID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	ArchiveBoard(ctx context.Context, boardID, actorID uuid.UUID) error
	RestoreBoard(ctx context.Context, boardID, actorID uuid.UUID) (*dto.BoardResponse, error)
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	boardRepo   repository.BoardRepository
	projectRepo repository.ProjectRepository
	gate        *access.Gate
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	projectRepo repository.ProjectRepository,
	gate *access.Gate,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		boardRepo:   boardRepo,
		projectRepo: projectRepo,
		gate:        gate,
		metrics:     m,
		logger:      logger,
	}
}

// CreateBoard creates a board in a project; members may create
func (s *boardServiceImpl) CreateBoard(ctx context.Context, actorID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}
	if err := s.gate.Authorize(ctx, req.ProjectID, actorID, domain.ProjectRoleMember); err != nil {
		return nil, err
	}

	board := &domain.Board{
		ProjectID:   req.ProjectID,
		CreatedBy:   actorID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create board", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementBoardCreated()
	}
	s.logger.Info("Board created",
		zap.String("board_id", board.ID.String()),
		zap.String("project_id", req.ProjectID.String()),
	)
	return dto.ToBoardResponse(board), nil
}

// GetBoard returns a board; any project member may look
func (s *boardServiceImpl) GetBoard(ctx context.Context, boardID, actorID uuid.UUID) (*dto.BoardResponse, error) {
	board, err := s.authorizeBoard(ctx, boardID, actorID, domain.ProjectRoleViewer)
	if err != nil {
		return nil, err
	}
	return dto.ToBoardResponse(board), nil
}

// ListBoards lists the live boards of a project
func (s *boardServiceImpl) ListBoards(ctx context.Context, projectID, actorID uuid.UUID) ([]*dto.BoardResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}
	if err := s.gate.Authorize(ctx, projectID, actorID, domain.ProjectRoleViewer); err != nil {
		return nil, err
	}

	boards, err := s.boardRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list boards", err.Error())
	}
	responses := make([]*dto.BoardResponse, len(boards))
	for i, b := range boards {
		responses[i] = dto.ToBoardResponse(b)
	}
	return responses, nil
}

// UpdateBoard updates board attributes; members may edit
func (s *boardServiceImpl) UpdateBoard(ctx context.Context, boardID, actorID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	board, err := s.authorizeBoard(ctx, boardID, actorID, domain.ProjectRoleMember)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, response.NewValidationError("Board name must not be empty", "")
		}
		board.Name = *req.Name
	}
	if req.Description != nil {
		board.Description = *req.Description
	}
	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update board", err.Error())
	}
	return dto.ToBoardResponse(board), nil
}

// ArchiveBoard soft-deletes the board and cascades to its columns and
// their cards. Archiving an archived board is a no-op for the board itself
// but still sweeps up any children that slipped back in.
func (s *boardServiceImpl) ArchiveBoard(ctx context.Context, boardID, actorID uuid.UUID) error {
	if _, err := s.authorizeBoard(ctx, boardID, actorID, domain.ProjectRoleMember); err != nil {
		return err
	}
	if err := s.boardRepo.Archive(ctx, boardID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to archive board", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementLifecycle("board", "archive")
	}
	s.logger.Info("Board archived", zap.String("board_id", boardID.String()))
	return nil
}

// RestoreBoard brings an archived board and its archived children back
func (s *boardServiceImpl) RestoreBoard(ctx context.Context, boardID, actorID uuid.UUID) (*dto.BoardResponse, error) {
	if _, err := s.authorizeBoard(ctx, boardID, actorID, domain.ProjectRoleMember); err != nil {
		return nil, err
	}
	if err := s.boardRepo.Restore(ctx, boardID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to restore board", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementLifecycle("board", "restore")
	}
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}
	return dto.ToBoardResponse(board), nil
}

// authorizeBoard resolves the board and checks the actor's role in its
// project. Existence comes first: a missing board is NOT_FOUND even for a
// non-member, an existing one is FORBIDDEN without sufficient role.
func (s *boardServiceImpl) authorizeBoard(ctx context.Context, boardID, actorID uuid.UUID, required domain.ProjectRole) (*domain.Board, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}
	if err := s.gate.Authorize(ctx, board.ProjectID, actorID, required); err != nil {
		return nil, err
	}
	return board, nil
}
