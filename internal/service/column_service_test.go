package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
)

// columnFixture wires a column service over mocks with one board, one
// column, and a role table.
type columnFixture struct {
	columnRepo *MockColumnRepository
	boardRepo  *MockBoardRepository
	board      *domain.Board
	column     *domain.Column
}

func newColumnFixture(roles map[uuid.UUID]domain.ProjectRole) (ColumnService, *columnFixture) {
	f := &columnFixture{
		columnRepo: &MockColumnRepository{},
		boardRepo:  &MockBoardRepository{},
		board: &domain.Board{
			BaseModel: domain.BaseModel{ID: uuid.New()},
			ProjectID: uuid.New(),
			Name:      "Sprint",
		},
	}
	f.column = &domain.Column{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		BoardID:   f.board.ID,
		Name:      "To Do",
		Position:  1000,
	}

	f.boardRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
		if id == f.board.ID {
			return f.board, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	f.columnRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
		if id == f.column.ID {
			return f.column, nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewColumnService(f.columnRepo, f.boardRepo, gateForRoles(roles), nil, zap.NewNop())
	return svc, f
}

func TestColumnService_CreateColumn(t *testing.T) {
	member := uuid.New()
	viewer := uuid.New()
	roles := map[uuid.UUID]domain.ProjectRole{
		member: domain.ProjectRoleMember,
		viewer: domain.ProjectRoleViewer,
	}

	t.Run("member creates a column", func(t *testing.T) {
		svc, f := newColumnFixture(roles)
		f.columnRepo.CreateFunc = func(ctx context.Context, column *domain.Column) error {
			column.ID = uuid.New()
			column.Position = 1000
			return nil
		}

		resp, err := svc.CreateColumn(context.Background(), member, &dto.CreateColumnRequest{
			BoardID: f.board.ID,
			Name:    "Doing",
		})
		require.NoError(t, err)
		assert.Equal(t, "Doing", resp.Name)
		assert.Equal(t, 1000, resp.Position)
	})

	t.Run("viewer is rejected before any write", func(t *testing.T) {
		svc, f := newColumnFixture(roles)
		created := false
		f.columnRepo.CreateFunc = func(ctx context.Context, column *domain.Column) error {
			created = true
			return nil
		}

		_, err := svc.CreateColumn(context.Background(), viewer, &dto.CreateColumnRequest{
			BoardID: f.board.ID,
			Name:    "Doing",
		})
		assertAppErrorCode(t, err, response.ErrCodeForbidden)
		assert.False(t, created)
	})

	t.Run("missing board wins over missing membership", func(t *testing.T) {
		svc, _ := newColumnFixture(roles)

		_, err := svc.CreateColumn(context.Background(), uuid.New(), &dto.CreateColumnRequest{
			BoardID: uuid.New(),
			Name:    "Doing",
		})
		assertAppErrorCode(t, err, response.ErrCodeNotFound)
	})

	t.Run("archived board rejects creation", func(t *testing.T) {
		svc, f := newColumnFixture(roles)
		now := time.Now().UTC()
		f.board.DeletedAt = &now

		_, err := svc.CreateColumn(context.Background(), member, &dto.CreateColumnRequest{
			BoardID: f.board.ID,
			Name:    "Doing",
		})
		assertAppErrorCode(t, err, response.ErrCodeValidation)
	})
}

func TestColumnService_ReorderColumn(t *testing.T) {
	member := uuid.New()
	roles := map[uuid.UUID]domain.ProjectRole{member: domain.ProjectRoleMember}
	anchor := uuid.New()

	t.Run("serialization abort is retried once and succeeds", func(t *testing.T) {
		svc, f := newColumnFixture(roles)
		attempts := 0
		f.columnRepo.ReorderFunc = func(ctx context.Context, boardID, columnID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Column, error) {
			attempts++
			if attempts == 1 {
				return nil, serializationFailure()
			}
			moved := *f.column
			moved.Position = 1500
			return &moved, nil
		}

		resp, err := svc.ReorderColumn(context.Background(), f.column.ID, member, &dto.ReorderRequest{AfterID: &anchor})
		require.NoError(t, err)
		assert.Equal(t, 1500, resp.Position)
		assert.Equal(t, 2, attempts)
	})

	t.Run("exhausted retries surface a transaction conflict", func(t *testing.T) {
		svc, f := newColumnFixture(roles)
		attempts := 0
		f.columnRepo.ReorderFunc = func(ctx context.Context, boardID, columnID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Column, error) {
			attempts++
			return nil, serializationFailure()
		}

		_, err := svc.ReorderColumn(context.Background(), f.column.ID, member, &dto.ReorderRequest{AfterID: &anchor})
		assertAppErrorCode(t, err, response.ErrCodeTxConflict)
		assert.Equal(t, 1+reorderRetryLimit, attempts)
	})

	t.Run("archived column cannot be reordered", func(t *testing.T) {
		svc, f := newColumnFixture(roles)
		now := time.Now().UTC()
		f.column.DeletedAt = &now

		_, err := svc.ReorderColumn(context.Background(), f.column.ID, member, &dto.ReorderRequest{AfterID: &anchor})
		assertAppErrorCode(t, err, response.ErrCodeValidation)
	})
}

func TestColumnService_UpdateColumn(t *testing.T) {
	member := uuid.New()
	roles := map[uuid.UUID]domain.ProjectRole{member: domain.ProjectRoleMember}

	t.Run("blank name is rejected", func(t *testing.T) {
		svc, f := newColumnFixture(roles)
		blank := "   "
		_, err := svc.UpdateColumn(context.Background(), f.column.ID, member, &dto.UpdateColumnRequest{Name: &blank})
		assertAppErrorCode(t, err, response.ErrCodeValidation)
	})

	t.Run("rename persists", func(t *testing.T) {
		svc, f := newColumnFixture(roles)
		var saved *domain.Column
		f.columnRepo.UpdateFunc = func(ctx context.Context, column *domain.Column) error {
			saved = column
			return nil
		}

		name := "In Review"
		resp, err := svc.UpdateColumn(context.Background(), f.column.ID, member, &dto.UpdateColumnRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "In Review", resp.Name)
		require.NotNil(t, saved)
		assert.Equal(t, "In Review", saved.Name)
	})
}

func TestColumnService_ArchiveAndRestore(t *testing.T) {
	member := uuid.New()
	viewer := uuid.New()
	roles := map[uuid.UUID]domain.ProjectRole{
		member: domain.ProjectRoleMember,
		viewer: domain.ProjectRoleViewer,
	}

	t.Run("member archives", func(t *testing.T) {
		svc, f := newColumnFixture(roles)
		archived := false
		f.columnRepo.ArchiveFunc = func(ctx context.Context, id uuid.UUID) error {
			archived = true
			return nil
		}
		require.NoError(t, svc.ArchiveColumn(context.Background(), f.column.ID, member))
		assert.True(t, archived)
	})

	t.Run("viewer cannot archive", func(t *testing.T) {
		svc, f := newColumnFixture(roles)
		err := svc.ArchiveColumn(context.Background(), f.column.ID, viewer)
		assertAppErrorCode(t, err, response.ErrCodeForbidden)
	})

	t.Run("restore returns the restored column", func(t *testing.T) {
		svc, f := newColumnFixture(roles)
		restored := false
		f.columnRepo.RestoreFunc = func(ctx context.Context, id uuid.UUID) error {
			restored = true
			f.column.DeletedAt = nil
			return nil
		}

		resp, err := svc.RestoreColumn(context.Background(), f.column.ID, member)
		require.NoError(t, err)
		assert.True(t, restored)
		assert.Nil(t, resp.DeletedAt)
	})
}
