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
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// cardFixture wires a card service over mocks with one board, two columns
// and one card in the first column.
type cardFixture struct {
	cardRepo   *MockCardRepository
	columnRepo *MockColumnRepository
	boardRepo  *MockBoardRepository
	tagRepo    *MockTagRepository
	notifier   *MockNotifier
	board      *domain.Board
	column     *domain.Column
	other      *domain.Column
	card       *domain.Card
}

func newCardFixture(roles map[uuid.UUID]domain.ProjectRole) (CardService, *cardFixture) {
	f := &cardFixture{
		cardRepo:   &MockCardRepository{},
		columnRepo: &MockColumnRepository{},
		boardRepo:  &MockBoardRepository{},
		tagRepo:    &MockTagRepository{},
		notifier:   &MockNotifier{},
		board: &domain.Board{
			BaseModel: domain.BaseModel{ID: uuid.New()},
			ProjectID: uuid.New(),
			Name:      "Sprint",
		},
	}
	f.column = &domain.Column{BaseModel: domain.BaseModel{ID: uuid.New()}, BoardID: f.board.ID, Name: "To Do", Position: 1000}
	f.other = &domain.Column{BaseModel: domain.BaseModel{ID: uuid.New()}, BoardID: f.board.ID, Name: "Done", Position: 2000}
	f.card = &domain.Card{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		ColumnID:  f.column.ID,
		CreatedBy: uuid.New(),
		Title:     "Ship it",
		Position:  1000,
		Version:   3,
	}

	f.boardRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
		if id == f.board.ID {
			return f.board, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	f.columnRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
		switch id {
		case f.column.ID:
			return f.column, nil
		case f.other.ID:
			return f.other, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	f.cardRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
		if id == f.card.ID {
			return f.card, nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewCardService(f.cardRepo, f.columnRepo, f.boardRepo, f.tagRepo, gateForRoles(roles), f.notifier, nil, zap.NewNop())
	return svc, f
}

func TestCardService_UpdateCard_VersionConflict(t *testing.T) {
	member := uuid.New()
	roles := map[uuid.UUID]domain.ProjectRole{member: domain.ProjectRoleMember}
	svc, f := newCardFixture(roles)

	f.cardRepo.UpdateContentFunc = func(ctx context.Context, id uuid.UUID, content repository.CardContent, expectedVersion int) (*domain.Card, error) {
		return nil, repository.ErrVersionConflict
	}

	_, err := svc.UpdateCard(context.Background(), f.card.ID, member, &dto.UpdateCardRequest{
		Title:           "Ship it harder",
		ExpectedVersion: 2,
	})
	assertAppErrorCode(t, err, response.ErrCodeConflict)
}

func TestCardService_UpdateCard_Validation(t *testing.T) {
	member := uuid.New()
	roles := map[uuid.UUID]domain.ProjectRole{member: domain.ProjectRoleMember}

	t.Run("blank title", func(t *testing.T) {
		svc, f := newCardFixture(roles)
		touched := false
		f.cardRepo.UpdateContentFunc = func(ctx context.Context, id uuid.UUID, content repository.CardContent, expectedVersion int) (*domain.Card, error) {
			touched = true
			return f.card, nil
		}

		_, err := svc.UpdateCard(context.Background(), f.card.ID, member, &dto.UpdateCardRequest{
			Title:           "   ",
			ExpectedVersion: 3,
		})
		assertAppErrorCode(t, err, response.ErrCodeValidation)
		assert.False(t, touched)
	})

	t.Run("negative duration", func(t *testing.T) {
		svc, f := newCardFixture(roles)
		negative := -1
		_, err := svc.UpdateCard(context.Background(), f.card.ID, member, &dto.UpdateCardRequest{
			Title:           "ok",
			Duration:        &negative,
			ExpectedVersion: 3,
		})
		assertAppErrorCode(t, err, response.ErrCodeValidation)
	})

	t.Run("assignee outside the project", func(t *testing.T) {
		svc, f := newCardFixture(roles)
		outsider := uuid.New()
		_, err := svc.UpdateCard(context.Background(), f.card.ID, member, &dto.UpdateCardRequest{
			Title:           "ok",
			AssigneeID:      &outsider,
			ExpectedVersion: 3,
		})
		assertAppErrorCode(t, err, response.ErrCodeValidation)
	})
}

func TestCardService_UpdateCard_AssignmentNotifications(t *testing.T) {
	member := uuid.New()
	teammate := uuid.New()
	roles := map[uuid.UUID]domain.ProjectRole{
		member:   domain.ProjectRoleMember,
		teammate: domain.ProjectRoleMember,
	}

	update := func(f *cardFixture) {
		f.cardRepo.UpdateContentFunc = func(ctx context.Context, id uuid.UUID, content repository.CardContent, expectedVersion int) (*domain.Card, error) {
			updated := *f.card
			updated.AssigneeID = content.AssigneeID
			updated.Version = expectedVersion + 1
			return &updated, nil
		}
	}

	t.Run("assigning a teammate notifies them", func(t *testing.T) {
		svc, f := newCardFixture(roles)
		update(f)

		_, err := svc.UpdateCard(context.Background(), f.card.ID, member, &dto.UpdateCardRequest{
			Title:           "Ship it",
			AssigneeID:      &teammate,
			ExpectedVersion: 3,
		})
		require.NoError(t, err)
		require.Len(t, f.notifier.Calls, 1)
		assert.Equal(t, "card_assigned", f.notifier.Calls[0].Event)
		assert.Equal(t, teammate, f.notifier.Calls[0].RecipientID)
	})

	t.Run("self-assignment stays quiet", func(t *testing.T) {
		svc, f := newCardFixture(roles)
		update(f)

		_, err := svc.UpdateCard(context.Background(), f.card.ID, member, &dto.UpdateCardRequest{
			Title:           "Ship it",
			AssigneeID:      &member,
			ExpectedVersion: 3,
		})
		require.NoError(t, err)
		assert.Empty(t, f.notifier.Calls)
	})

	t.Run("unchanged assignee stays quiet", func(t *testing.T) {
		svc, f := newCardFixture(roles)
		f.card.AssigneeID = &teammate
		update(f)

		_, err := svc.UpdateCard(context.Background(), f.card.ID, member, &dto.UpdateCardRequest{
			Title:           "Ship it",
			AssigneeID:      &teammate,
			ExpectedVersion: 3,
		})
		require.NoError(t, err)
		assert.Empty(t, f.notifier.Calls)
	})
}

func TestCardService_CreateCard(t *testing.T) {
	member := uuid.New()
	teammate := uuid.New()
	roles := map[uuid.UUID]domain.ProjectRole{
		member:   domain.ProjectRoleMember,
		teammate: domain.ProjectRoleViewer,
	}

	t.Run("assignee notified on creation", func(t *testing.T) {
		svc, f := newCardFixture(roles)
		f.cardRepo.CreateFunc = func(ctx context.Context, card *domain.Card) error {
			card.ID = uuid.New()
			card.Position = 1000
			card.Version = 1
			return nil
		}

		resp, err := svc.CreateCard(context.Background(), member, &dto.CreateCardRequest{
			ColumnID:   f.column.ID,
			Title:      "New task",
			AssigneeID: &teammate,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Version)
		require.Len(t, f.notifier.Calls, 1)
		assert.Equal(t, teammate, f.notifier.Calls[0].RecipientID)
	})

	t.Run("archived column rejects creation", func(t *testing.T) {
		svc, f := newCardFixture(roles)
		now := time.Now().UTC()
		f.column.DeletedAt = &now

		_, err := svc.CreateCard(context.Background(), member, &dto.CreateCardRequest{
			ColumnID: f.column.ID,
			Title:    "New task",
		})
		assertAppErrorCode(t, err, response.ErrCodeValidation)
	})

	t.Run("missing card reads as not found for non-members too", func(t *testing.T) {
		svc, _ := newCardFixture(roles)
		_, err := svc.GetCard(context.Background(), uuid.New(), uuid.New())
		assertAppErrorCode(t, err, response.ErrCodeNotFound)
	})
}

func TestCardService_MoveCard(t *testing.T) {
	member := uuid.New()
	roles := map[uuid.UUID]domain.ProjectRole{member: domain.ProjectRoleMember}

	t.Run("move to a column on another project is rejected", func(t *testing.T) {
		svc, f := newCardFixture(roles)
		foreignBoard := &domain.Board{BaseModel: domain.BaseModel{ID: uuid.New()}, ProjectID: uuid.New()}
		foreignColumn := &domain.Column{BaseModel: domain.BaseModel{ID: uuid.New()}, BoardID: foreignBoard.ID}

		baseColumnFind := f.columnRepo.FindByIDFunc
		f.columnRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
			if id == foreignColumn.ID {
				return foreignColumn, nil
			}
			return baseColumnFind(ctx, id)
		}
		baseBoardFind := f.boardRepo.FindByIDFunc
		f.boardRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			if id == foreignBoard.ID {
				return foreignBoard, nil
			}
			return baseBoardFind(ctx, id)
		}

		_, err := svc.MoveCard(context.Background(), f.card.ID, member, &dto.MoveCardRequest{
			TargetColumnID: foreignColumn.ID,
		})
		assertAppErrorCode(t, err, response.ErrCodeValidation)
	})

	t.Run("move into an archived column is rejected", func(t *testing.T) {
		svc, f := newCardFixture(roles)
		now := time.Now().UTC()
		f.other.DeletedAt = &now

		_, err := svc.MoveCard(context.Background(), f.card.ID, member, &dto.MoveCardRequest{
			TargetColumnID: f.other.ID,
		})
		assertAppErrorCode(t, err, response.ErrCodeValidation)
	})

	t.Run("same-column move degrades to a reorder", func(t *testing.T) {
		svc, f := newCardFixture(roles)
		anchor := uuid.New()
		reordered := false
		f.cardRepo.ReorderFunc = func(ctx context.Context, columnID, cardID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Card, error) {
			reordered = true
			assert.Equal(t, f.column.ID, columnID)
			return f.card, nil
		}

		_, err := svc.MoveCard(context.Background(), f.card.ID, member, &dto.MoveCardRequest{
			TargetColumnID: f.column.ID,
			AfterID:        &anchor,
		})
		require.NoError(t, err)
		assert.True(t, reordered)
	})

	t.Run("cross-column move reparents", func(t *testing.T) {
		svc, f := newCardFixture(roles)
		f.cardRepo.MoveToColumnFunc = func(ctx context.Context, cardID, targetColumnID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Card, error) {
			moved := *f.card
			moved.ColumnID = targetColumnID
			moved.Position = 3000
			return &moved, nil
		}

		resp, err := svc.MoveCard(context.Background(), f.card.ID, member, &dto.MoveCardRequest{
			TargetColumnID: f.other.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, f.other.ID, resp.ColumnID)
		assert.Equal(t, 3000, resp.Position)
	})
}

func TestCardService_AssignTag(t *testing.T) {
	member := uuid.New()
	roles := map[uuid.UUID]domain.ProjectRole{member: domain.ProjectRoleMember}

	t.Run("tag from another project is rejected", func(t *testing.T) {
		svc, f := newCardFixture(roles)
		foreignTag := &domain.Tag{BaseModel: domain.BaseModel{ID: uuid.New()}, ProjectID: uuid.New(), Name: "foreign"}
		f.tagRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
			return foreignTag, nil
		}

		_, err := svc.AssignTag(context.Background(), f.card.ID, member, &dto.CardTagRequest{TagID: foreignTag.ID})
		assertAppErrorCode(t, err, response.ErrCodeValidation)
	})

	t.Run("assignment is idempotent", func(t *testing.T) {
		svc, f := newCardFixture(roles)
		tag := domain.Tag{BaseModel: domain.BaseModel{ID: uuid.New()}, ProjectID: f.board.ProjectID, Name: "urgent"}
		f.card.Tags = []domain.Tag{tag}
		f.tagRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
			return &tag, nil
		}
		added := false
		f.cardRepo.AddTagFunc = func(ctx context.Context, cardID, tagID uuid.UUID) error {
			added = true
			return nil
		}

		resp, err := svc.AssignTag(context.Background(), f.card.ID, member, &dto.CardTagRequest{TagID: tag.ID})
		require.NoError(t, err)
		assert.False(t, added)
		require.Len(t, resp.Tags, 1)
	})

	t.Run("missing tag reads as not found", func(t *testing.T) {
		svc, f := newCardFixture(roles)
		_, err := svc.AssignTag(context.Background(), f.card.ID, member, &dto.CardTagRequest{TagID: uuid.New()})
		assertAppErrorCode(t, err, response.ErrCodeNotFound)
	})
}
