package database

import (
	"fmt"

	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// AutoMigrate runs GORM auto-migration for all domain models.
// Tables, indexes and foreign key constraints come from the struct tags in
// the domain package. The many-to-many card_tags join table is created
// through the Card model's Tags association.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&domain.Project{},
		&domain.ProjectMember{},
		&domain.Board{},
		&domain.Column{},
		&domain.Card{},
		&domain.Tag{},
		&domain.Notification{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}
