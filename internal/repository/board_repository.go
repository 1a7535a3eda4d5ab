package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Board, error)
	Update(ctx context.Context, board *domain.Board) error
	Archive(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

// boardRepositoryImpl is the GORM implementation of BoardRepository
type boardRepositoryImpl struct {
	db *gorm.DB
}

// NewBoardRepository creates a new instance of BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepositoryImpl{db: db}
}

// Create creates a new board
func (r *boardRepositoryImpl) Create(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// FindByID finds a board by ID. Archived boards are returned too; callers
// decide whether archival matters for the operation at hand.
func (r *boardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.WithContext(ctx).First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByProjectID lists the live boards of a project.
func (r *boardRepositoryImpl) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Board, error) {
	var boards []*domain.Board
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND deleted_at IS NULL", projectID).
		Order("created_at").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// Update persists board attribute changes.
func (r *boardRepositoryImpl) Update(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

// Archive soft-deletes the board and cascades level by level: the board's
// live columns, then those columns' live cards, all stamped in one
// transaction. Re-running the cascade only touches children that are still
// live, so a repeated archive converges instead of stamping twice.
func (r *boardRepositoryImpl) Archive(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Board{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Updates(map[string]interface{}{"deleted_at": now, "updated_at": now}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Card{}).
			Where("column_id IN (?)",
				tx.Session(&gorm.Session{NewDB: true}).Model(&domain.Column{}).Select("id").Where("board_id = ?", id)).
			Where("deleted_at IS NULL").
			Updates(map[string]interface{}{"deleted_at": now, "updated_at": now}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Column{}).
			Where("board_id = ? AND deleted_at IS NULL", id).
			Updates(map[string]interface{}{"deleted_at": now, "updated_at": now}).Error
	})
}

// Restore clears the archival timestamp on the board and on every archived
// column and card beneath it. Restore is unconditional for archived
// children; see DESIGN.md for the policy on independently archived ones.
func (r *boardRepositoryImpl) Restore(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Board{}).
			Where("id = ? AND deleted_at IS NOT NULL", id).
			Updates(map[string]interface{}{"deleted_at": nil, "updated_at": now}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Card{}).
			Where("column_id IN (?)",
				tx.Session(&gorm.Session{NewDB: true}).Model(&domain.Column{}).Select("id").Where("board_id = ?", id)).
			Where("deleted_at IS NOT NULL").
			Updates(map[string]interface{}{"deleted_at": nil, "updated_at": now}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Column{}).
			Where("board_id = ? AND deleted_at IS NOT NULL", id).
			Updates(map[string]interface{}{"deleted_at": nil, "updated_at": now}).Error
	})
}
