package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/ordering"
)

// ColumnRepository defines the interface for column data access. Creation
// and reordering run at serializable isolation: two concurrent writers on
// the same board must not both observe a free slot and take it.
type ColumnRepository interface {
	Create(ctx context.Context, column *domain.Column) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Column, error)
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error)
	Update(ctx context.Context, column *domain.Column) error
	Reorder(ctx context.Context, boardID, columnID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Column, error)
	Archive(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

// columnRepositoryImpl is the GORM implementation of ColumnRepository
type columnRepositoryImpl struct {
	db    *gorm.DB
	alloc *ordering.Allocator
}

// NewColumnRepository creates a new instance of ColumnRepository
func NewColumnRepository(db *gorm.DB, alloc *ordering.Allocator) ColumnRepository {
	return &columnRepositoryImpl{db: db, alloc: alloc}
}

var serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}

// Create inserts the column one gap past the current maximum position of
// its board. The read and the insert share one serializable transaction.
func (r *columnRepositoryImpl) Create(ctx context.Context, column *domain.Column) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		siblings, err := liveColumnSiblings(tx, column.BoardID)
		if err != nil {
			return err
		}
		column.Position = r.alloc.NextPosition(siblings)
		return tx.Create(column).Error
	}, serializable)
}

// FindByID finds a column by ID, archived or not.
func (r *columnRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	var column domain.Column
	if err := r.db.WithContext(ctx).First(&column, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// FindByBoardID lists the live columns of a board in display order.
func (r *columnRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error) {
	var columns []*domain.Column
	if err := r.db.WithContext(ctx).
		Where("board_id = ? AND deleted_at IS NULL", boardID).
		Order("position, id").
		Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

// Update persists column attribute changes.
func (r *columnRepositoryImpl) Update(ctx context.Context, column *domain.Column) error {
	return r.db.WithContext(ctx).Save(column).Error
}

// Reorder moves the column relative to its anchors. The whole
// read-plan-write sequence runs in one serializable transaction; the caller
// retries on IsSerializationFailure. Allocator validation errors propagate
// unchanged with no state touched.
func (r *columnRepositoryImpl) Reorder(ctx context.Context, boardID, columnID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Column, error) {
	var moved domain.Column
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		siblings, err := liveColumnSiblings(tx, boardID)
		if err != nil {
			return err
		}

		plan, err := r.alloc.PlanMove(siblings, columnID, beforeID, afterID)
		if err != nil {
			return err
		}
		if err := applyColumnPlan(tx, columnID, plan); err != nil {
			return err
		}
		return tx.First(&moved, "id = ?", columnID).Error
	}, serializable)
	if err != nil {
		return nil, err
	}
	return &moved, nil
}

// Archive soft-deletes the column and its live cards in one transaction.
func (r *columnRepositoryImpl) Archive(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Column{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Updates(map[string]interface{}{"deleted_at": now, "updated_at": now}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Card{}).
			Where("column_id = ? AND deleted_at IS NULL", id).
			Updates(map[string]interface{}{"deleted_at": now, "updated_at": now}).Error
	})
}

// Restore clears the archival timestamp on the column and on every archived
// card in it, in one transaction.
func (r *columnRepositoryImpl) Restore(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Column{}).
			Where("id = ? AND deleted_at IS NOT NULL", id).
			Updates(map[string]interface{}{"deleted_at": nil, "updated_at": now}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Card{}).
			Where("column_id = ? AND deleted_at IS NOT NULL", id).
			Updates(map[string]interface{}{"deleted_at": nil, "updated_at": now}).Error
	})
}

// liveColumnSiblings loads the live sibling set of a board ordered by
// (position, id) for the deterministic tie-break.
func liveColumnSiblings(tx *gorm.DB, boardID uuid.UUID) ([]ordering.Sibling, error) {
	var rows []domain.Column
	if err := tx.
		Where("board_id = ? AND deleted_at IS NULL", boardID).
		Order("position, id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	siblings := make([]ordering.Sibling, len(rows))
	for i, c := range rows {
		siblings[i] = ordering.Sibling{ID: c.ID, Position: c.Position}
	}
	return siblings, nil
}

// applyColumnPlan persists an ordering plan for columns.
func applyColumnPlan(tx *gorm.DB, columnID uuid.UUID, plan ordering.Plan) error {
	now := time.Now().UTC()
	if plan.Unchanged {
		return tx.Model(&domain.Column{}).
			Where("id = ?", columnID).
			Update("updated_at", now).Error
	}
	if plan.Renumbered == nil {
		return tx.Model(&domain.Column{}).
			Where("id = ?", columnID).
			Updates(map[string]interface{}{"position": plan.Position, "updated_at": now}).Error
	}
	for _, move := range plan.Renumbered {
		if err := tx.Model(&domain.Column{}).
			Where("id = ?", move.ID).
			Updates(map[string]interface{}{"position": move.Position, "updated_at": now}).Error; err != nil {
			return err
		}
	}
	return nil
}
