package service

import (
	"path/filepath"
	"testing"

	"github.com/juanbracho/girasoulresale/internal/config"
	"github.com/juanbracho/girasoulresale/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a file-backed SQLite database in a temp dir. File-backed
// rather than :memory: so concurrent connections in the race tests see the
// same store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func testAppConfig() config.AppConfig {
	return config.AppConfig{
		EditWindowDays: 30,
		TaxRate:        0.083,
		AccountName:    "Business Checking",
	}
}

func newInventoryService(t *testing.T) (*InventoryService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewInventoryService(db, testAppConfig()), db
}

func newAssetService(t *testing.T) (*AssetService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewAssetService(db, testAppConfig()), db
}

func validItemInput() InventoryInput {
	return InventoryInput{
		Name:         "Vintage Denim Jacket",
		Description:  "Light wash denim jacket from the 90s",
		Category:     "Outerwear",
		CostOfItem:   "10.00",
		SellingPrice: "45.00",
		Location:     "Bin A1",
		Size:         "M",
		Condition:    "Excellent",
		Brand:        "Levi's",
	}
}
