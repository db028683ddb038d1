package database

import (
	"fmt"

	"github.com/juanbracho/girasoulresale/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Transaction{},
		&models.InventoryItem{},
		&models.Asset{},
		&models.Category{},
		&models.Condition{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
