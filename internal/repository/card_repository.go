package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/ordering"
)

// CardContent is the mutable-content projection guarded by the version
// check.
type CardContent struct {
	Title       string
	Description string
	Duration    *int
	AssigneeID  *uuid.UUID
}

// CardRepository defines the interface for card data access
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	FindByColumnID(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content CardContent, expectedVersion int) (*domain.Card, error)
	Reorder(ctx context.Context, columnID, cardID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Card, error)
	MoveToColumn(ctx context.Context, cardID, targetColumnID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Card, error)
	Archive(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	AddTag(ctx context.Context, cardID, tagID uuid.UUID) error
	RemoveTag(ctx context.Context, cardID, tagID uuid.UUID) error
}

// cardRepositoryImpl is the GORM implementation of CardRepository
type cardRepositoryImpl struct {
	db    *gorm.DB
	alloc *ordering.Allocator
}

// NewCardRepository creates a new instance of CardRepository
func NewCardRepository(db *gorm.DB, alloc *ordering.Allocator) CardRepository {
	return &cardRepositoryImpl{db: db, alloc: alloc}
}

// Create inserts the card one gap past the current maximum position of its
// column, version 1.
func (r *cardRepositoryImpl) Create(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		siblings, err := liveCardSiblings(tx, card.ColumnID)
		if err != nil {
			return err
		}
		card.Position = r.alloc.NextPosition(siblings)
		card.Version = 1
		return tx.Create(card).Error
	}, serializable)
}

// FindByID finds a card by ID, archived or not, with its tags.
func (r *cardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var card domain.Card
	if err := r.db.WithContext(ctx).Preload("Tags").First(&card, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByColumnID lists the live cards of a column in display order.
func (r *cardRepositoryImpl) FindByColumnID(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error) {
	var cards []*domain.Card
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("column_id = ? AND deleted_at IS NULL", columnID).
		Order("position, id").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// UpdateContent applies a content change if and only if the stored version
// matches expectedVersion, incrementing the version by one in the same
// statement. Compare and write are a single conditional UPDATE, never two
// round trips. A stale version yields ErrVersionConflict and leaves the row
// untouched.
func (r *cardRepositoryImpl) UpdateContent(ctx context.Context, id uuid.UUID, content CardContent, expectedVersion int) (*domain.Card, error) {
	result := r.db.WithContext(ctx).Model(&domain.Card{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"title":       content.Title,
			"description": content.Description,
			"duration":    content.Duration,
			"assignee_id": content.AssigneeID,
			"version":     gorm.Expr("version + 1"),
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing card from a stale version.
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrVersionConflict
	}
	return r.FindByID(ctx, id)
}

// Reorder moves the card relative to its anchors within its column, in one
// serializable transaction.
func (r *cardRepositoryImpl) Reorder(ctx context.Context, columnID, cardID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Card, error) {
	var moved domain.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		siblings, err := liveCardSiblings(tx, columnID)
		if err != nil {
			return err
		}

		plan, err := r.alloc.PlanMove(siblings, cardID, beforeID, afterID)
		if err != nil {
			return err
		}
		if err := applyCardPlan(tx, cardID, nil, plan); err != nil {
			return err
		}
		return tx.First(&moved, "id = ?", cardID).Error
	}, serializable)
	if err != nil {
		return nil, err
	}
	return &moved, nil
}

// MoveToColumn reparents the card into targetColumnID and positions it
// there. Without anchors the card is appended; with anchors it is planned
// against the target column's sibling set as if it had just been appended.
func (r *cardRepositoryImpl) MoveToColumn(ctx context.Context, cardID, targetColumnID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Card, error) {
	var moved domain.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		siblings, err := liveCardSiblings(tx, targetColumnID)
		if err != nil {
			return err
		}

		if beforeID == nil && afterID == nil {
			position := r.alloc.NextPosition(siblings)
			if err := tx.Model(&domain.Card{}).
				Where("id = ?", cardID).
				Updates(map[string]interface{}{
					"column_id":  targetColumnID,
					"position":   position,
					"updated_at": time.Now().UTC(),
				}).Error; err != nil {
				return err
			}
			return tx.First(&moved, "id = ?", cardID).Error
		}

		// Plan against the target set with the mover virtually appended.
		entering := append(siblings, ordering.Sibling{ID: cardID, Position: r.alloc.NextPosition(siblings)})
		plan, err := r.alloc.PlanMove(entering, cardID, beforeID, afterID)
		if err != nil {
			return err
		}
		if err := applyCardPlan(tx, cardID, &targetColumnID, plan); err != nil {
			return err
		}
		return tx.First(&moved, "id = ?", cardID).Error
	}, serializable)
	if err != nil {
		return nil, err
	}
	return &moved, nil
}

// Archive soft-deletes a single card.
func (r *cardRepositoryImpl) Archive(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.Card{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{"deleted_at": now, "updated_at": now}).Error
}

// Restore clears a single card's archival timestamp.
func (r *cardRepositoryImpl) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.Card{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Updates(map[string]interface{}{"deleted_at": nil, "updated_at": time.Now().UTC()}).Error
}

// AddTag assigns a tag to a card.
func (r *cardRepositoryImpl) AddTag(ctx context.Context, cardID, tagID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO card_tags (card_id, tag_id) VALUES (?, ?)", cardID, tagID,
	).Error
}

// RemoveTag unassigns a tag from a card.
func (r *cardRepositoryImpl) RemoveTag(ctx context.Context, cardID, tagID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM card_tags WHERE card_id = ? AND tag_id = ?", cardID, tagID,
	).Error
}

// liveCardSiblings loads the live sibling set of a column ordered by
// (position, id).
func liveCardSiblings(tx *gorm.DB, columnID uuid.UUID) ([]ordering.Sibling, error) {
	var rows []domain.Card
	if err := tx.
		Where("column_id = ? AND deleted_at IS NULL", columnID).
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

// applyCardPlan persists an ordering plan for cards, optionally reparenting
// the mover into a new column.
func applyCardPlan(tx *gorm.DB, cardID uuid.UUID, targetColumnID *uuid.UUID, plan ordering.Plan) error {
	now := time.Now().UTC()
	moverUpdates := map[string]interface{}{"updated_at": now}
	if targetColumnID != nil {
		moverUpdates["column_id"] = *targetColumnID
	}

	if plan.Unchanged {
		return tx.Model(&domain.Card{}).Where("id = ?", cardID).Updates(moverUpdates).Error
	}
	if plan.Renumbered == nil {
		moverUpdates["position"] = plan.Position
		return tx.Model(&domain.Card{}).Where("id = ?", cardID).Updates(moverUpdates).Error
	}
	for _, move := range plan.Renumbered {
		updates := map[string]interface{}{"position": move.Position, "updated_at": now}
		if move.ID == cardID && targetColumnID != nil {
			updates["column_id"] = *targetColumnID
		}
		if err := tx.Model(&domain.Card{}).Where("id = ?", move.ID).Updates(updates).Error; err != nil {
			return err
		}
	}
	return nil
}
